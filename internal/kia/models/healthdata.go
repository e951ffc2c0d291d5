package models

import (
	"time"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

var jenisDataValid = map[string]bool{
	"ibu_hamil": true, "ibu_bersalin": true, "ibu_nifas": true,
	"bayi": true, "balita": true,
}

// HealthData adalah jenis data kesehatan generik lama. Tidak terikat ke
// master pasien (nama dan umur diisi bebas) dan memakai policy warisan:
// edit boleh selagi PENDING, verifikasi hanya oleh bidan desa.
type HealthData struct {
	ID             int               `json:"id"`
	NamaPasien     string            `json:"nama_pasien"`
	UmurPasien     int               `json:"umur_pasien"`
	JenisData      string            `json:"jenis_data"`
	PracticeID     int               `json:"practice_id"`
	TempatPraktik  *TempatPraktikRef `json:"practice_place,omitempty"`
	TanggalPeriksa time.Time         `json:"tanggal_periksa"`
	Catatan        string            `json:"catatan,omitempty"`
	Verifikasi
}

// HealthDataRequest adalah payload create/update data kesehatan generik.
type HealthDataRequest struct {
	NamaPasien     string `json:"nama_pasien"`
	UmurPasien     int    `json:"umur_pasien"`
	JenisData      string `json:"jenis_data"`
	PracticeID     int    `json:"practice_id,omitempty"`
	TanggalPeriksa string `json:"tanggal_periksa"`
	Catatan        string `json:"catatan"`
}

func (r *HealthDataRequest) Validate() error {
	if r.NamaPasien == "" {
		return workflow.Validationf("nama_pasien wajib diisi")
	}
	if r.UmurPasien < 0 {
		return workflow.Validationf("umur_pasien tidak boleh negatif")
	}
	if !jenisDataValid[r.JenisData] {
		return workflow.Validationf("jenis_data tidak dikenal")
	}
	if r.TanggalPeriksa == "" {
		return workflow.Validationf("tanggal_periksa wajib diisi")
	}
	if _, err := time.Parse("2006-01-02", r.TanggalPeriksa); err != nil {
		return workflow.Validationf("format tanggal_periksa tidak valid, gunakan YYYY-MM-DD")
	}
	return nil
}
