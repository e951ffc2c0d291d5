package models

import (
	"time"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

// KeadaanIbu adalah kondisi ibu pasca persalinan. Sub-record ini tidak punya
// identitas sendiri; hidupnya mengikuti record persalinan induknya.
type KeadaanIbu struct {
	Hidup      bool `json:"hidup"`
	Baik       bool `json:"baik"`
	HAP        bool `json:"hap"`
	PartusLama bool `json:"partus_lama"`
	PreEklamsi bool `json:"pre_eklamsi"`
}

// KeadaanBayi adalah kondisi bayi yang dilahirkan.
type KeadaanBayi struct {
	BB             float64 `json:"bb"`
	PB             float64 `json:"pb"`
	JenisKelamin   string  `json:"jenis_kelamin"`
	Hidup          bool    `json:"hidup"`
	Asfiksia       bool    `json:"asfiksia"`
	RDS            bool    `json:"rds"`
	CacatBawaan    bool    `json:"cacat_bawaan"`
	KeteranganCacat string `json:"keterangan_cacat,omitempty"`
}

// Persalinan adalah satu catatan partus.
type Persalinan struct {
	ID            int               `json:"id"`
	PasienID      int               `json:"pasien_id"`
	NamaPasien    string            `json:"nama_pasien,omitempty"`
	PracticeID    int               `json:"practice_id"`
	TempatPraktik *TempatPraktikRef `json:"practice_place,omitempty"`
	TanggalPartus time.Time         `json:"tanggal_partus"`
	Gravida       int               `json:"gravida"`
	Para          int               `json:"para"`
	Abortus       int               `json:"abortus"`
	VitK          bool              `json:"vit_k"`
	HB0           bool              `json:"hb_0"`
	VitABufas     bool              `json:"vit_a_bufas"`
	KeadaanIbu    KeadaanIbu        `json:"keadaan_ibu"`
	KeadaanBayi   KeadaanBayi       `json:"keadaan_bayi"`
	Catatan       string            `json:"catatan,omitempty"`
	Verifikasi
}

// PersalinanRequest adalah payload create/update persalinan. Kedua
// sub-record kondisi wajib ada.
type PersalinanRequest struct {
	PasienID      int          `json:"pasien_id"`
	PracticeID    int          `json:"practice_id,omitempty"`
	TanggalPartus string       `json:"tanggal_partus"`
	Gravida       int          `json:"gravida"`
	Para          int          `json:"para"`
	Abortus       int          `json:"abortus"`
	VitK          bool         `json:"vit_k"`
	HB0           bool         `json:"hb_0"`
	VitABufas     bool         `json:"vit_a_bufas"`
	KeadaanIbu    *KeadaanIbu  `json:"keadaan_ibu"`
	KeadaanBayi   *KeadaanBayi `json:"keadaan_bayi"`
	Catatan       string       `json:"catatan"`
}

func (r *PersalinanRequest) Validate() error {
	if r.PasienID == 0 {
		return workflow.Validationf("pasien_id wajib diisi")
	}
	if r.TanggalPartus == "" {
		return workflow.Validationf("tanggal_partus wajib diisi")
	}
	if _, err := time.Parse("2006-01-02", r.TanggalPartus); err != nil {
		return workflow.Validationf("format tanggal_partus tidak valid, gunakan YYYY-MM-DD")
	}
	if r.Gravida < 1 {
		return workflow.Validationf("gravida minimal 1")
	}
	if r.Para < 0 || r.Abortus < 0 {
		return workflow.Validationf("para dan abortus tidak boleh negatif")
	}
	if r.KeadaanIbu == nil {
		return workflow.Validationf("keadaan_ibu wajib diisi")
	}
	if r.KeadaanBayi == nil {
		return workflow.Validationf("keadaan_bayi wajib diisi")
	}
	if r.KeadaanBayi.BB <= 0 {
		return workflow.Validationf("berat badan bayi wajib diisi (gram)")
	}
	if r.KeadaanBayi.PB <= 0 {
		return workflow.Validationf("panjang badan bayi wajib diisi (cm)")
	}
	if r.KeadaanBayi.JenisKelamin != "LAKI_LAKI" && r.KeadaanBayi.JenisKelamin != "PEREMPUAN" {
		return workflow.Validationf("jenis_kelamin bayi harus LAKI_LAKI atau PEREMPUAN")
	}
	if r.KeadaanBayi.CacatBawaan && r.KeadaanBayi.KeteranganCacat == "" {
		return workflow.Validationf("keterangan_cacat wajib diisi jika ada cacat bawaan")
	}
	return nil
}
