package services

import (
	"database/sql"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

// ListFilter adalah parameter list yang sama untuk semua jenis data klinis.
type ListFilter struct {
	Status    string
	Month     int
	Year      int
	VillageID int
	Search    string
	Limit     int
	Offset    int
}

func (f *ListFilter) normalize() {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// recordScope menghasilkan klausa WHERE tambahan sesuai varian aktor:
// bidan praktik hanya melihat data tempat praktiknya sendiri, bidan desa
// data desanya, bidan koordinator semua. Admin tidak punya akses klinis.
// Klausa mengasumsikan join Tempat_Praktik dengan alias tp.
func recordScope(actor workflow.Actor) (string, []interface{}, error) {
	switch a := actor.(type) {
	case workflow.BidanPraktik:
		return " AND tp.ID_User = ?", []interface{}{a.UserID}, nil
	case workflow.BidanDesa:
		return " AND tp.ID_Desa = ?", []interface{}{a.VillageID}, nil
	case workflow.BidanKoordinator:
		return "", nil, nil
	default:
		return "", nil, workflow.Forbiddenf("role ini tidak memiliki akses data klinis")
	}
}

// resolvePracticeID menentukan tempat praktik tujuan sebuah create.
// Jika request tidak menyebut practice_id, dipakai tempat praktik milik
// aktor; jika menyebut, kepemilikannya diverifikasi ke database.
func resolvePracticeID(db *sql.DB, actor workflow.Actor, requested int) (int, error) {
	bp, ok := actor.(workflow.BidanPraktik)
	if !ok {
		return 0, workflow.Forbiddenf("hanya bidan praktik yang memiliki tempat praktik")
	}
	if requested == 0 {
		if bp.PracticeID != 0 {
			return bp.PracticeID, nil
		}
		var id int
		err := db.QueryRow("SELECT ID_Tempat_Praktik FROM Tempat_Praktik WHERE ID_User = ?", bp.UserID).Scan(&id)
		if err == sql.ErrNoRows {
			return 0, workflow.Validationf("anda belum memiliki tempat praktik terdaftar")
		}
		if err != nil {
			return 0, err
		}
		return id, nil
	}

	var ownerID int
	err := db.QueryRow("SELECT ID_User FROM Tempat_Praktik WHERE ID_Tempat_Praktik = ?", requested).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return 0, workflow.Validationf("tempat praktik tidak ditemukan")
	}
	if err != nil {
		return 0, err
	}
	if ownerID != bp.UserID {
		return 0, workflow.Forbiddenf("tempat praktik bukan milik anda")
	}
	return requested, nil
}
