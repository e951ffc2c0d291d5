package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

// exportQuery mendeskripsikan satu modul yang bisa diekspor: header kolom
// dan query yang mengembalikan baris APPROVED sesuai urutan header.
type exportQuery struct {
	Sheet   string
	Headers []string
	Query   string
	DateCol string
}

var exportQueries = map[string]exportQuery{
	"pemeriksaan-kehamilan": {
		Sheet:   "Pemeriksaan Kehamilan",
		Headers: []string{"No", "Nama Pasien", "Tanggal", "GPA", "Umur Kehamilan (mgg)", "Kunjungan", "Status TT", "Resiko", "TD", "Lila (cm)", "BB (kg)", "Tempat Praktik", "Desa"},
		Query: `
			SELECT p.Nama, pk.Tanggal, pk.GPA, pk.Umur_Kehamilan, pk.Jenis_Kunjungan,
				pk.Status_TT, pk.Resti, pk.TD, pk.Lila, pk.BB, tp.Nama, d.Nama_Desa
			FROM Pemeriksaan_Kehamilan pk
			JOIN Pasien p ON pk.ID_Pasien = p.ID_Pasien
			JOIN Tempat_Praktik tp ON pk.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
			JOIN Desa d ON tp.ID_Desa = d.ID_Desa
			WHERE pk.Status_Verifikasi = 'APPROVED'`,
		DateCol: "pk.Tanggal",
	},
	"persalinan": {
		Sheet:   "Persalinan",
		Headers: []string{"No", "Nama Pasien", "Tanggal Partus", "Gravida", "Para", "Abortus", "BB Bayi (gr)", "PB Bayi (cm)", "Jenis Kelamin Bayi", "Tempat Praktik", "Desa"},
		Query: `
			SELECT p.Nama, ps.Tanggal_Partus, ps.Gravida, ps.Para, ps.Abortus,
				ps.Bayi_BB, ps.Bayi_PB, ps.Bayi_Jenis_Kelamin, tp.Nama, d.Nama_Desa
			FROM Persalinan ps
			JOIN Pasien p ON ps.ID_Pasien = p.ID_Pasien
			JOIN Tempat_Praktik tp ON ps.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
			JOIN Desa d ON tp.ID_Desa = d.ID_Desa
			WHERE ps.Status_Verifikasi = 'APPROVED'`,
		DateCol: "ps.Tanggal_Partus",
	},
	"keluarga-berencana": {
		Sheet:   "Keluarga Berencana",
		Headers: []string{"No", "Nama Pasien", "Tanggal Kunjungan", "Alat Kontrasepsi", "Anak Laki", "Anak Perempuan", "Tempat Praktik", "Desa"},
		Query: `
			SELECT p.Nama, kb.Tanggal_Kunjungan, kb.Alat_Kontrasepsi,
				kb.Jumlah_Anak_Laki, kb.Jumlah_Anak_Perempuan, tp.Nama, d.Nama_Desa
			FROM Keluarga_Berencana kb
			JOIN Pasien p ON kb.ID_Pasien = p.ID_Pasien
			JOIN Tempat_Praktik tp ON kb.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
			JOIN Desa d ON tp.ID_Desa = d.ID_Desa
			WHERE kb.Status_Verifikasi = 'APPROVED'`,
		DateCol: "kb.Tanggal_Kunjungan",
	},
	"imunisasi": {
		Sheet:   "Imunisasi",
		Headers: []string{"No", "Nama Pasien", "Tanggal Imunisasi", "Jenis Imunisasi", "Berat Badan (kg)", "Nama Orangtua", "Tempat Praktik", "Desa"},
		Query: `
			SELECT p.Nama, im.Tgl_Imunisasi, im.Jenis_Imunisasi,
				im.Berat_Badan, im.Nama_Orangtua, tp.Nama, d.Nama_Desa
			FROM Imunisasi im
			JOIN Pasien p ON im.ID_Pasien = p.ID_Pasien
			JOIN Tempat_Praktik tp ON im.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
			JOIN Desa d ON tp.ID_Desa = d.ID_Desa
			WHERE im.Status_Verifikasi = 'APPROVED'`,
		DateCol: "im.Tgl_Imunisasi",
	},
}

// ExportExcel membuat file Excel berisi catatan APPROVED untuk satu modul.
// Hanya bidan koordinator yang boleh mengunduh laporan.
func (s *RekapService) ExportExcel(actor workflow.Actor, module string, filter RekapFilter) ([]byte, string, error) {
	if !workflow.CanExport(actor) {
		return nil, "", workflow.Forbiddenf("export laporan hanya untuk bidan koordinator")
	}
	eq, ok := exportQueries[module]
	if !ok {
		return nil, "", workflow.Validationf("modul laporan tidak dikenal: %s", module)
	}

	query := eq.Query
	var args []interface{}
	if filter.Month != 0 {
		query += " AND MONTH(" + eq.DateCol + ") = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND YEAR(" + eq.DateCol + ") = ?"
		args = append(args, filter.Year)
	}
	if filter.VillageID != 0 {
		query += " AND d.ID_Desa = ?"
		args = append(args, filter.VillageID)
	}
	query += " ORDER BY " + eq.DateCol

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	data, err := collectRows(rows, len(eq.Headers)-1)
	if err != nil {
		return nil, "", err
	}

	content, err := buildExcel(eq.Sheet, eq.Headers, data)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("laporan_%s_%s.xlsx", module, time.Now().Format("20060102"))
	return content, filename, nil
}

// collectRows membaca semua kolom secara generik; kolom tanggal
// diformat ulang agar mudah dibaca.
func collectRows(rows *sql.Rows, width int) ([][]interface{}, error) {
	var data [][]interface{}
	for rows.Next() {
		raw := make([]interface{}, width)
		ptrs := make([]interface{}, width)
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]interface{}, width)
		for i, v := range raw {
			switch val := v.(type) {
			case time.Time:
				row[i] = val.Format("2006-01-02")
			case []byte:
				row[i] = string(val)
			case nil:
				row[i] = ""
			default:
				row[i] = val
			}
		}
		data = append(data, row)
	}
	return data, rows.Err()
}

func buildExcel(sheet string, headers []string, data [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	for rowIdx, row := range data {
		// Kolom pertama adalah nomor urut.
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, rowIdx+1); err != nil {
			f.Close()
			return nil, err
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+2, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
