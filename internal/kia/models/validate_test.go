package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

func validKehamilan() KehamilanRequest {
	return KehamilanRequest{
		PasienID:       1,
		Tanggal:        "2025-08-01",
		GPA:            "G2P1A0",
		UmurKehamilan:  24,
		JenisKunjungan: "K1",
		StatusTT:       "TT2",
		Resti:          "RENDAH",
		TD:             "120/80",
	}
}

func TestKehamilanValidate(t *testing.T) {
	r := validKehamilan()
	require.NoError(t, r.Validate())

	cases := []struct {
		name   string
		mutate func(*KehamilanRequest)
	}{
		{"pasien kosong", func(r *KehamilanRequest) { r.PasienID = 0 }},
		{"tanggal kosong", func(r *KehamilanRequest) { r.Tanggal = "" }},
		{"tanggal salah format", func(r *KehamilanRequest) { r.Tanggal = "01-08-2025" }},
		{"gpa salah format", func(r *KehamilanRequest) { r.GPA = "2-1-0" }},
		{"umur kehamilan nol", func(r *KehamilanRequest) { r.UmurKehamilan = 0 }},
		{"jenis kunjungan asing", func(r *KehamilanRequest) { r.JenisKunjungan = "K9" }},
		{"status tt asing", func(r *KehamilanRequest) { r.StatusTT = "TT9" }},
		{"resti asing", func(r *KehamilanRequest) { r.Resti = "EKSTREM" }},
		{"td tanpa garis miring", func(r *KehamilanRequest) { r.TD = "12080" }},
		{"td bukan angka", func(r *KehamilanRequest) { r.TD = "abc/def" }},
		{"golongan darah asing", func(r *KehamilanRequest) {
			r.Ceklab = &CeklabReport{GolonganDarah: "C"}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validKehamilan()
			tc.mutate(&r)
			assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)
		})
	}
}

func validPersalinan() PersalinanRequest {
	return PersalinanRequest{
		PasienID:      1,
		TanggalPartus: "2025-08-01",
		Gravida:       2,
		Para:          1,
		Abortus:       0,
		KeadaanIbu:    &KeadaanIbu{Hidup: true, Baik: true},
		KeadaanBayi:   &KeadaanBayi{BB: 3200, PB: 49, JenisKelamin: "PEREMPUAN", Hidup: true},
	}
}

func TestPersalinanValidate(t *testing.T) {
	r := validPersalinan()
	require.NoError(t, r.Validate())

	// Kedua sub-record kondisi wajib ada.
	r = validPersalinan()
	r.KeadaanIbu = nil
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)

	r = validPersalinan()
	r.KeadaanBayi = nil
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)

	r = validPersalinan()
	r.KeadaanBayi.JenisKelamin = "X"
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)

	// Keterangan cacat wajib saat cacat bawaan dicentang.
	r = validPersalinan()
	r.KeadaanBayi.CacatBawaan = true
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)
	r.KeadaanBayi.KeteranganCacat = "polidaktili"
	require.NoError(t, r.Validate())
}

func TestKBValidate(t *testing.T) {
	r := KBRequest{
		PasienID:         1,
		TanggalKunjungan: "2025-08-01",
		AlatKontrasepsi:  "IUD",
	}
	require.NoError(t, r.Validate())

	r.AlatKontrasepsi = "HERBAL"
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)

	r.AlatKontrasepsi = "PIL"
	r.JumlahAnakLaki = -1
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)
}

func TestImunisasiValidate(t *testing.T) {
	r := ImunisasiRequest{
		PasienID:       1,
		TglImunisasi:   "2025-08-01",
		JenisImunisasi: "BCG",
		BeratBadan:     4.5,
		NamaOrangtua:   "Ibu Siti",
	}
	require.NoError(t, r.Validate())

	r.JenisImunisasi = "VAR"
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)

	r.JenisImunisasi = "BCG"
	r.BeratBadan = 0
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)

	r.BeratBadan = 4.5
	r.NamaOrangtua = ""
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)
}

func TestHealthDataValidate(t *testing.T) {
	r := HealthDataRequest{
		NamaPasien:     "Siti",
		UmurPasien:     27,
		JenisData:      "ibu_hamil",
		TanggalPeriksa: "2025-08-01",
	}
	require.NoError(t, r.Validate())

	r.JenisData = "lansia"
	assert.ErrorIs(t, r.Validate(), workflow.ErrValidation)
}
