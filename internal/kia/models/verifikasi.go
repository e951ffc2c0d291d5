package models

import "time"

// Verifikasi adalah sub-bentuk yang sama persis di kelima jenis data klinis.
type Verifikasi struct {
	StatusVerifikasi string     `json:"status_verifikasi"`
	AlasanPenolakan  *string    `json:"alasan_penolakan,omitempty"`
	VerifiedBy       *int       `json:"verified_by,omitempty"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	RevisiKe         int        `json:"revisi_ke"`
}

// TempatPraktikRef adalah relasi tempat praktik yang ikut dimuat pada
// payload detail. Payload list boleh melewatkannya; kepemilikan tetap bisa
// diturunkan dari practice_id flat.
type TempatPraktikRef struct {
	PracticeID int    `json:"practice_id"`
	Nama       string `json:"nama"`
	UserID     int    `json:"user_id"`
	VillageID  int    `json:"village_id"`
}

// VerifyRequest adalah payload keputusan verifikasi.
type VerifyRequest struct {
	Status string `json:"status"`
	Alasan string `json:"alasan"`
}
