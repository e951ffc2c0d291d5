package models

import (
	"regexp"
	"time"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

var (
	gpaPattern = regexp.MustCompile(`^G\d+P\d+A\d+$`)
	tdPattern  = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)
)

var jenisKunjunganValid = map[string]bool{
	"K1": true, "K2": true, "K3": true, "K4": true, "K5": true, "K6": true,
}

var statusTTValid = map[string]bool{
	"TT1": true, "TT2": true, "TT3": true, "TT4": true, "TT5": true,
}

var restiValid = map[string]bool{
	"RENDAH": true, "SEDANG": true, "TINGGI": true,
}

var golonganDarahValid = map[string]bool{
	"A": true, "B": true, "AB": true, "O": true,
}

// CeklabReport adalah panel laboratorium opsional pada pemeriksaan kehamilan.
type CeklabReport struct {
	GolonganDarah string   `json:"golongan_darah,omitempty"`
	HB            *float64 `json:"hb,omitempty"`
	HIV           *bool    `json:"hiv,omitempty"`
	HBsAg         *bool    `json:"hbsag,omitempty"`
	Sifilis       *bool    `json:"sifilis,omitempty"`
}

// PemeriksaanKehamilan adalah satu kunjungan ANC.
type PemeriksaanKehamilan struct {
	ID             int               `json:"id"`
	PasienID       int               `json:"pasien_id"`
	NamaPasien     string            `json:"nama_pasien,omitempty"`
	PracticeID     int               `json:"practice_id"`
	TempatPraktik  *TempatPraktikRef `json:"practice_place,omitempty"`
	Tanggal        time.Time         `json:"tanggal"`
	GPA            string            `json:"gpa"`
	UmurKehamilan  int               `json:"umur_kehamilan"`
	JenisKunjungan string            `json:"jenis_kunjungan"`
	StatusTT       string            `json:"status_tt"`
	Resti          string            `json:"resti"`
	TD             string            `json:"td"`
	Lila           *float64          `json:"lila,omitempty"`
	BB             *float64          `json:"bb,omitempty"`
	Catatan        string            `json:"catatan,omitempty"`
	Ceklab         *CeklabReport     `json:"ceklab_report,omitempty"`
	Verifikasi
}

// KehamilanRequest adalah payload create/update dari bidan praktik.
// practice_id opsional: jika kosong dipakai tempat praktik milik aktor.
type KehamilanRequest struct {
	PasienID       int           `json:"pasien_id"`
	PracticeID     int           `json:"practice_id,omitempty"`
	Tanggal        string        `json:"tanggal"`
	GPA            string        `json:"gpa"`
	UmurKehamilan  int           `json:"umur_kehamilan"`
	JenisKunjungan string        `json:"jenis_kunjungan"`
	StatusTT       string        `json:"status_tt"`
	Resti          string        `json:"resti"`
	TD             string        `json:"td"`
	Lila           *float64      `json:"lila"`
	BB             *float64      `json:"bb"`
	Catatan        string        `json:"catatan"`
	Ceklab         *CeklabReport `json:"ceklab_report"`
}

// Validate memeriksa field wajib dan format payload pemeriksaan kehamilan.
func (r *KehamilanRequest) Validate() error {
	if r.PasienID == 0 {
		return workflow.Validationf("pasien_id wajib diisi")
	}
	if r.Tanggal == "" {
		return workflow.Validationf("tanggal wajib diisi")
	}
	if _, err := time.Parse("2006-01-02", r.Tanggal); err != nil {
		return workflow.Validationf("format tanggal tidak valid, gunakan YYYY-MM-DD")
	}
	if !gpaPattern.MatchString(r.GPA) {
		return workflow.Validationf("gpa harus berformat GxPxAx, contoh G2P1A0")
	}
	if r.UmurKehamilan < 1 || r.UmurKehamilan > 45 {
		return workflow.Validationf("umur_kehamilan harus antara 1 dan 45 minggu")
	}
	if !jenisKunjunganValid[r.JenisKunjungan] {
		return workflow.Validationf("jenis_kunjungan harus salah satu dari K1-K6")
	}
	if !statusTTValid[r.StatusTT] {
		return workflow.Validationf("status_tt harus salah satu dari TT1-TT5")
	}
	if !restiValid[r.Resti] {
		return workflow.Validationf("resti harus RENDAH, SEDANG, atau TINGGI")
	}
	if !tdPattern.MatchString(r.TD) {
		return workflow.Validationf("td harus berformat sistole/diastole, contoh 120/80")
	}
	if r.Ceklab != nil && r.Ceklab.GolonganDarah != "" && !golonganDarahValid[r.Ceklab.GolonganDarah] {
		return workflow.Validationf("golongan_darah harus A, B, AB, atau O")
	}
	return nil
}
