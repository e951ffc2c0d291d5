package services

import (
	"database/sql"
	"time"

	"github.com/puskesmas/kia-backend/internal/master/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type PasienService struct {
	DB *sql.DB
}

func NewPasienService(db *sql.DB) *PasienService {
	return &PasienService{DB: db}
}

func (s *PasienService) List(search string) ([]models.Pasien, error) {
	query := "SELECT ID_Pasien, NIK, Nama, Tanggal_Lahir, Alamat, No_Telepon, Created_At FROM Pasien"
	var args []interface{}
	if search != "" {
		query += " WHERE Nama LIKE ? OR NIK LIKE ?"
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	query += " ORDER BY Nama"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Pasien
	for rows.Next() {
		var p models.Pasien
		var telepon sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.NIK, &p.Nama, &p.TanggalLahir, &p.Alamat, &telepon, &createdAt); err != nil {
			return nil, err
		}
		if telepon.Valid {
			p.NoTelepon = telepon.String
		}
		if createdAt.Valid {
			p.CreatedAt = &createdAt.Time
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *PasienService) GetByID(id int) (*models.Pasien, error) {
	var p models.Pasien
	var telepon sql.NullString
	var createdAt sql.NullTime
	err := s.DB.QueryRow(
		"SELECT ID_Pasien, NIK, Nama, Tanggal_Lahir, Alamat, No_Telepon, Created_At FROM Pasien WHERE ID_Pasien = ?",
		id).Scan(&p.ID, &p.NIK, &p.Nama, &p.TanggalLahir, &p.Alamat, &telepon, &createdAt)
	if err == sql.ErrNoRows {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if telepon.Valid {
		p.NoTelepon = telepon.String
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.Time
	}
	return &p, nil
}

func (s *PasienService) Create(req models.PasienRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	var dup int
	err := s.DB.QueryRow("SELECT ID_Pasien FROM Pasien WHERE NIK = ?", req.NIK).Scan(&dup)
	if err == nil {
		return 0, workflow.Conflictf("NIK sudah terdaftar")
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	result, err := s.DB.Exec(
		"INSERT INTO Pasien (NIK, Nama, Tanggal_Lahir, Alamat, No_Telepon, Created_At) VALUES (?, ?, ?, ?, ?, ?)",
		req.NIK, req.Nama, req.TanggalLahir, req.Alamat, req.NoTelepon, time.Now())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *PasienService) Update(id int, req models.PasienRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var dup int
	err := s.DB.QueryRow("SELECT ID_Pasien FROM Pasien WHERE NIK = ? AND ID_Pasien <> ?", req.NIK, id).Scan(&dup)
	if err == nil {
		return workflow.Conflictf("NIK sudah terdaftar pada pasien lain")
	}
	if err != sql.ErrNoRows {
		return err
	}

	result, err := s.DB.Exec(
		"UPDATE Pasien SET NIK = ?, Nama = ?, Tanggal_Lahir = ?, Alamat = ?, No_Telepon = ? WHERE ID_Pasien = ?",
		req.NIK, req.Nama, req.TanggalLahir, req.Alamat, req.NoTelepon, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return workflow.ErrNotFound
	}
	return nil
}

// Delete menghapus pasien beserta seluruh catatan klinisnya dalam satu
// transaksi agar tidak ada catatan yatim.
func (s *PasienService) Delete(id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"Pemeriksaan_Kehamilan", "Persalinan", "Keluarga_Berencana", "Imunisasi"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE ID_Pasien = ?", id); err != nil {
			return err
		}
	}

	result, err := tx.Exec("DELETE FROM Pasien WHERE ID_Pasien = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return workflow.ErrNotFound
	}
	return tx.Commit()
}
