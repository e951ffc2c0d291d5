package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/puskesmas/kia-backend/config"
	"github.com/puskesmas/kia-backend/internal/routes"
	"github.com/puskesmas/kia-backend/pkg/storage/mariadb"
)

func main() {
	cfg := config.LoadConfig()
	db := mariadb.Connect()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	routes.Init(e, db)

	log.Printf("Server berjalan pada port %s...", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
