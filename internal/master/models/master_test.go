package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

func TestPasienRequestValidate(t *testing.T) {
	valid := PasienRequest{
		NIK:          "3515126708900001",
		Nama:         "Siti Aminah",
		TanggalLahir: time.Date(1990, 8, 27, 0, 0, 0, 0, time.UTC),
		Alamat:       "Dusun Krajan RT 02",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*PasienRequest)
	}{
		{"nik terlalu pendek", func(r *PasienRequest) { r.NIK = "12345" }},
		{"nik mengandung huruf", func(r *PasienRequest) { r.NIK = "35151267089000AB" }},
		{"nama kosong", func(r *PasienRequest) { r.Nama = "   " }},
		{"tanggal lahir kosong", func(r *PasienRequest) { r.TanggalLahir = time.Time{} }},
		{"tanggal lahir di masa depan", func(r *PasienRequest) { r.TanggalLahir = time.Now().Add(48 * time.Hour) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), workflow.ErrValidation)
		})
	}
}

func TestDesaRequestValidate(t *testing.T) {
	assert.NoError(t, DesaRequest{Nama: "Sumberrejo"}.Validate())
	assert.ErrorIs(t, DesaRequest{Nama: "  "}.Validate(), workflow.ErrValidation)
}

func TestTempatPraktikRequestValidate(t *testing.T) {
	valid := TempatPraktikRequest{Nama: "BPM Hj. Sri", Alamat: "Jl. Raya 10", UserID: 4, VillageID: 2}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*TempatPraktikRequest)
	}{
		{"nama kosong", func(r *TempatPraktikRequest) { r.Nama = "" }},
		{"tanpa pemilik", func(r *TempatPraktikRequest) { r.UserID = 0 }},
		{"tanpa desa", func(r *TempatPraktikRequest) { r.VillageID = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), workflow.ErrValidation)
		})
	}
}
