package workflow

import (
	"github.com/puskesmas/kia-backend/pkg/utils"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	PositionBidanPraktik     = "bidan_praktik"
	PositionBidanDesa        = "bidan_desa"
	PositionBidanKoordinator = "bidan_koordinator"
)

// Actor adalah varian tertutup dari aktor yang sudah terautentikasi.
// Policy melakukan type switch pada varian ini, bukan membandingkan
// string posisi di setiap call site.
type Actor interface {
	aktor()
}

// Admin mengelola master data (user, desa, tempat praktik) dan tidak
// memiliki hak apapun atas data klinis.
type Admin struct{}

// BidanPraktik memiliki tempat praktik dan membuat data klinis.
type BidanPraktik struct {
	UserID     int
	PracticeID int
}

// BidanDesa memverifikasi data dari tempat praktik di desanya.
type BidanDesa struct {
	UserID    int
	VillageID int
}

// BidanKoordinator memverifikasi lintas desa dan memegang akses rekapitulasi.
type BidanKoordinator struct {
	UserID int
}

func (Admin) aktor()            {}
func (BidanPraktik) aktor()     {}
func (BidanDesa) aktor()        {}
func (BidanKoordinator) aktor() {}

// ResolveActor menerjemahkan klaim JWT menjadi varian Actor.
func ResolveActor(claims *utils.Claims) (Actor, error) {
	if claims == nil {
		return nil, Forbiddenf("klaim tidak ditemukan")
	}
	if claims.Role == RoleAdmin {
		return Admin{}, nil
	}
	if claims.Role != RoleUser {
		return nil, Forbiddenf("role %q tidak dikenal", claims.Role)
	}
	switch claims.Position {
	case PositionBidanPraktik:
		return BidanPraktik{UserID: claims.UserID, PracticeID: claims.PracticeID}, nil
	case PositionBidanDesa:
		return BidanDesa{UserID: claims.UserID, VillageID: claims.VillageID}, nil
	case PositionBidanKoordinator:
		return BidanKoordinator{UserID: claims.UserID}, nil
	default:
		return nil, Forbiddenf("posisi %q tidak dikenal", claims.Position)
	}
}
