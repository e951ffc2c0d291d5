package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

func TestExportExcelGuards(t *testing.T) {
	s := NewRekapService(nil)
	koordinator := workflow.BidanKoordinator{UserID: 9}

	t.Run("bukan koordinator ditolak", func(t *testing.T) {
		_, _, err := s.ExportExcel(workflow.BidanPraktik{UserID: 1, PracticeID: 1}, "imunisasi", RekapFilter{})
		assert.ErrorIs(t, err, workflow.ErrForbidden)

		_, _, err = s.ExportExcel(workflow.BidanDesa{UserID: 2, VillageID: 1}, "imunisasi", RekapFilter{})
		assert.ErrorIs(t, err, workflow.ErrForbidden)
	})

	t.Run("modul tidak dikenal", func(t *testing.T) {
		_, _, err := s.ExportExcel(koordinator, "laporan-aneh", RekapFilter{})
		assert.ErrorIs(t, err, workflow.ErrValidation)
	})
}

func TestRekapGuard(t *testing.T) {
	s := NewRekapService(nil)
	_, err := s.Rekap(workflow.BidanPraktik{UserID: 1, PracticeID: 1}, RekapFilter{})
	assert.ErrorIs(t, err, workflow.ErrForbidden)
}

func TestBuildExcel(t *testing.T) {
	headers := []string{"No", "Nama Pasien", "Tanggal"}
	data := [][]interface{}{
		{"Siti Aminah", "2025-03-01"},
		{"Dewi Lestari", "2025-03-04"},
	}

	content, err := buildExcel("Imunisasi", headers, data)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Imunisasi", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Siti Aminah", got)

	no, err := f.GetCellValue("Imunisasi", "A3")
	require.NoError(t, err)
	assert.Equal(t, "2", no)

	header, err := f.GetCellValue("Imunisasi", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Tanggal", header)
}
