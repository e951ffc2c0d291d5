package services

import (
	"database/sql"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

// RekapFilter membatasi rekapitulasi pada periode dan desa tertentu.
type RekapFilter struct {
	Month     int
	Year      int
	VillageID int
}

// RekapRow adalah jumlah catatan APPROVED per jenis layanan.
type RekapRow struct {
	Module string `json:"module"`
	Total  int    `json:"total"`
}

// Rekapitulasi juga memuat rincian per desa untuk modul kehamilan
// sebagai indikator cakupan KIA.
type Rekapitulasi struct {
	PerModule []RekapRow     `json:"per_module"`
	PerDesa   []RekapDesaRow `json:"per_desa"`
}

type RekapDesaRow struct {
	VillageID int    `json:"id_desa"`
	NamaDesa  string `json:"nama_desa"`
	Total     int    `json:"total"`
}

type RekapService struct {
	DB *sql.DB
}

func NewRekapService(db *sql.DB) *RekapService {
	return &RekapService{DB: db}
}

// moduleTables memetakan nama modul laporan ke tabel dan kolom tanggalnya.
var moduleTables = []struct {
	Module  string
	Table   string
	DateCol string
}{
	{"pemeriksaan-kehamilan", "Pemeriksaan_Kehamilan", "Tanggal"},
	{"persalinan", "Persalinan", "Tanggal_Partus"},
	{"keluarga-berencana", "Keluarga_Berencana", "Tanggal_Kunjungan"},
	{"imunisasi", "Imunisasi", "Tgl_Imunisasi"},
}

// Rekap menghitung jumlah catatan APPROVED per modul. Hanya bidan
// koordinator yang boleh melihat rekapitulasi lintas desa.
func (s *RekapService) Rekap(actor workflow.Actor, filter RekapFilter) (*Rekapitulasi, error) {
	if !workflow.CanExport(actor) {
		return nil, workflow.Forbiddenf("rekapitulasi hanya untuk bidan koordinator")
	}

	rekap := &Rekapitulasi{}
	for _, mt := range moduleTables {
		query := "SELECT COUNT(*) FROM " + mt.Table + " t" +
			" JOIN Tempat_Praktik tp ON t.ID_Tempat_Praktik = tp.ID_Tempat_Praktik" +
			" WHERE t.Status_Verifikasi = 'APPROVED'"
		var args []interface{}
		if filter.Month != 0 {
			query += " AND MONTH(t." + mt.DateCol + ") = ?"
			args = append(args, filter.Month)
		}
		if filter.Year != 0 {
			query += " AND YEAR(t." + mt.DateCol + ") = ?"
			args = append(args, filter.Year)
		}
		if filter.VillageID != 0 {
			query += " AND tp.ID_Desa = ?"
			args = append(args, filter.VillageID)
		}

		var total int
		if err := s.DB.QueryRow(query, args...).Scan(&total); err != nil {
			return nil, err
		}
		rekap.PerModule = append(rekap.PerModule, RekapRow{Module: mt.Module, Total: total})
	}

	perDesa, err := s.rekapPerDesa(filter)
	if err != nil {
		return nil, err
	}
	rekap.PerDesa = perDesa
	return rekap, nil
}

func (s *RekapService) rekapPerDesa(filter RekapFilter) ([]RekapDesaRow, error) {
	query := `
		SELECT d.ID_Desa, d.Nama_Desa, COUNT(pk.ID_Pemeriksaan)
		FROM Desa d
		LEFT JOIN Tempat_Praktik tp ON tp.ID_Desa = d.ID_Desa
		LEFT JOIN Pemeriksaan_Kehamilan pk
			ON pk.ID_Tempat_Praktik = tp.ID_Tempat_Praktik
			AND pk.Status_Verifikasi = 'APPROVED'
	`
	var args []interface{}
	if filter.Month != 0 {
		query += " AND MONTH(pk.Tanggal) = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND YEAR(pk.Tanggal) = ?"
		args = append(args, filter.Year)
	}
	if filter.VillageID != 0 {
		query += " WHERE d.ID_Desa = ?"
		args = append(args, filter.VillageID)
	}
	query += " GROUP BY d.ID_Desa, d.Nama_Desa ORDER BY d.Nama_Desa"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RekapDesaRow
	for rows.Next() {
		var r RekapDesaRow
		if err := rows.Scan(&r.VillageID, &r.NamaDesa, &r.Total); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
