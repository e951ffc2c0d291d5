package ws

// Hub menyimpan koneksi dashboard verifikasi dan menyiarkan event
// verifikasi_update yang dikirim controller ke seluruh client.

import (
	"log"

	"github.com/gorilla/websocket"
)

var HubInstance = NewHub()

func init() {
	go HubInstance.Run()
}

// Client mewakili satu koneksi WebSocket dashboard
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub mengelola semua koneksi client
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Println("ws: client terdaftar")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Println("ws: client terputus")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
