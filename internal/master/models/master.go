package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

// Desa adalah wilayah kerja satu bidan desa.
type Desa struct {
	ID   int    `json:"id_desa"`
	Nama string `json:"nama_desa"`
}

type DesaRequest struct {
	Nama string `json:"nama_desa"`
}

func (r DesaRequest) Validate() error {
	if strings.TrimSpace(r.Nama) == "" {
		return workflow.Validationf("nama desa wajib diisi")
	}
	return nil
}

// TempatPraktik adalah tempat praktik mandiri seorang bidan praktik,
// terikat ke satu desa.
type TempatPraktik struct {
	ID        int    `json:"id_tempat_praktik"`
	Nama      string `json:"nama"`
	Alamat    string `json:"alamat"`
	UserID    int    `json:"id_user"`
	VillageID int    `json:"id_desa"`
	NamaDesa  string `json:"nama_desa,omitempty"`
	NamaBidan string `json:"nama_bidan,omitempty"`
}

type TempatPraktikRequest struct {
	Nama      string `json:"nama"`
	Alamat    string `json:"alamat"`
	UserID    int    `json:"id_user"`
	VillageID int    `json:"id_desa"`
}

func (r TempatPraktikRequest) Validate() error {
	if strings.TrimSpace(r.Nama) == "" {
		return workflow.Validationf("nama tempat praktik wajib diisi")
	}
	if r.UserID <= 0 {
		return workflow.Validationf("id_user pemilik wajib diisi")
	}
	if r.VillageID <= 0 {
		return workflow.Validationf("id_desa wajib diisi")
	}
	return nil
}

var nikPattern = regexp.MustCompile(`^\d{16}$`)

// Pasien adalah ibu atau anak yang tercatat di puskesmas.
type Pasien struct {
	ID           int        `json:"id_pasien"`
	NIK          string     `json:"nik"`
	Nama         string     `json:"nama"`
	TanggalLahir time.Time  `json:"tanggal_lahir"`
	Alamat       string     `json:"alamat"`
	NoTelepon    string     `json:"no_telepon,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type PasienRequest struct {
	NIK          string    `json:"nik"`
	Nama         string    `json:"nama"`
	TanggalLahir time.Time `json:"tanggal_lahir"`
	Alamat       string    `json:"alamat"`
	NoTelepon    string    `json:"no_telepon"`
}

func (r PasienRequest) Validate() error {
	if !nikPattern.MatchString(r.NIK) {
		return workflow.Validationf("NIK harus 16 digit angka")
	}
	if strings.TrimSpace(r.Nama) == "" {
		return workflow.Validationf("nama pasien wajib diisi")
	}
	if r.TanggalLahir.IsZero() {
		return workflow.Validationf("tanggal lahir wajib diisi")
	}
	if r.TanggalLahir.After(time.Now()) {
		return workflow.Validationf("tanggal lahir tidak boleh di masa depan")
	}
	return nil
}
