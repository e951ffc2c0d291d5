package models

import (
	"time"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

var alatKontrasepsiValid = map[string]bool{
	"PIL": true, "SUNTIK_1_BULAN": true, "SUNTIK_3_BULAN": true,
	"IMPLANT": true, "IUD": true, "KONDOM": true, "MOW": true, "MOP": true,
}

// KeluargaBerencana adalah satu kunjungan layanan KB.
type KeluargaBerencana struct {
	ID                  int               `json:"id"`
	PasienID            int               `json:"pasien_id"`
	NamaPasien          string            `json:"nama_pasien,omitempty"`
	PracticeID          int               `json:"practice_id"`
	TempatPraktik       *TempatPraktikRef `json:"practice_place,omitempty"`
	TanggalKunjungan    time.Time         `json:"tanggal_kunjungan"`
	AlatKontrasepsi     string            `json:"alat_kontrasepsi"`
	JumlahAnakLaki      int               `json:"jumlah_anak_laki"`
	JumlahAnakPerempuan int               `json:"jumlah_anak_perempuan"`
	AT                  bool              `json:"at"`
	Keterangan          string            `json:"keterangan,omitempty"`
	Verifikasi
}

// KBRequest adalah payload create/update layanan KB.
type KBRequest struct {
	PasienID            int    `json:"pasien_id"`
	PracticeID          int    `json:"practice_id,omitempty"`
	TanggalKunjungan    string `json:"tanggal_kunjungan"`
	AlatKontrasepsi     string `json:"alat_kontrasepsi"`
	JumlahAnakLaki      int    `json:"jumlah_anak_laki"`
	JumlahAnakPerempuan int    `json:"jumlah_anak_perempuan"`
	AT                  bool   `json:"at"`
	Keterangan          string `json:"keterangan"`
}

func (r *KBRequest) Validate() error {
	if r.PasienID == 0 {
		return workflow.Validationf("pasien_id wajib diisi")
	}
	if r.TanggalKunjungan == "" {
		return workflow.Validationf("tanggal_kunjungan wajib diisi")
	}
	if _, err := time.Parse("2006-01-02", r.TanggalKunjungan); err != nil {
		return workflow.Validationf("format tanggal_kunjungan tidak valid, gunakan YYYY-MM-DD")
	}
	if !alatKontrasepsiValid[r.AlatKontrasepsi] {
		return workflow.Validationf("alat_kontrasepsi tidak dikenal")
	}
	if r.JumlahAnakLaki < 0 || r.JumlahAnakPerempuan < 0 {
		return workflow.Validationf("jumlah anak tidak boleh negatif")
	}
	return nil
}
