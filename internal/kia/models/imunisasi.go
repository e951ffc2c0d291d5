package models

import (
	"time"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

var jenisImunisasiValid = map[string]bool{
	"HB_0": true, "BCG": true,
	"POLIO_1": true, "POLIO_2": true, "POLIO_3": true, "POLIO_4": true,
	"DPT_HB_HIB_1": true, "DPT_HB_HIB_2": true, "DPT_HB_HIB_3": true,
	"CAMPAK": true, "IPV": true,
	"DPT_HB_HIB_LANJUTAN": true, "CAMPAK_LANJUTAN": true,
}

// Imunisasi adalah satu pemberian vaksin pada bayi/balita.
type Imunisasi struct {
	ID             int               `json:"id"`
	PasienID       int               `json:"pasien_id"`
	NamaPasien     string            `json:"nama_pasien,omitempty"`
	PracticeID     int               `json:"practice_id"`
	TempatPraktik  *TempatPraktikRef `json:"practice_place,omitempty"`
	TglImunisasi   time.Time         `json:"tgl_imunisasi"`
	JenisImunisasi string            `json:"jenis_imunisasi"`
	BeratBadan     float64           `json:"berat_badan"`
	SuhuBadan      *float64          `json:"suhu_badan,omitempty"`
	NamaOrangtua   string            `json:"nama_orangtua"`
	Catatan        string            `json:"catatan,omitempty"`
	Verifikasi
}

// ImunisasiRequest adalah payload create/update imunisasi.
type ImunisasiRequest struct {
	PasienID       int      `json:"pasien_id"`
	PracticeID     int      `json:"practice_id,omitempty"`
	TglImunisasi   string   `json:"tgl_imunisasi"`
	JenisImunisasi string   `json:"jenis_imunisasi"`
	BeratBadan     float64  `json:"berat_badan"`
	SuhuBadan      *float64 `json:"suhu_badan"`
	NamaOrangtua   string   `json:"nama_orangtua"`
	Catatan        string   `json:"catatan"`
}

func (r *ImunisasiRequest) Validate() error {
	if r.PasienID == 0 {
		return workflow.Validationf("pasien_id wajib diisi")
	}
	if r.TglImunisasi == "" {
		return workflow.Validationf("tgl_imunisasi wajib diisi")
	}
	if _, err := time.Parse("2006-01-02", r.TglImunisasi); err != nil {
		return workflow.Validationf("format tgl_imunisasi tidak valid, gunakan YYYY-MM-DD")
	}
	if !jenisImunisasiValid[r.JenisImunisasi] {
		return workflow.Validationf("jenis_imunisasi tidak dikenal")
	}
	if r.BeratBadan <= 0 {
		return workflow.Validationf("berat_badan wajib diisi (kg)")
	}
	if r.NamaOrangtua == "" {
		return workflow.Validationf("nama_orangtua wajib diisi")
	}
	return nil
}
