package services

import (
	"database/sql"

	"github.com/puskesmas/kia-backend/internal/master/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type TempatPraktikService struct {
	DB *sql.DB
}

func NewTempatPraktikService(db *sql.DB) *TempatPraktikService {
	return &TempatPraktikService{DB: db}
}

// validateOwner memastikan ID_User pemilik adalah bidan praktik aktif.
func (s *TempatPraktikService) validateOwner(userID int) error {
	var position, status string
	err := s.DB.QueryRow("SELECT Position, Status FROM Users WHERE ID_User = ?", userID).
		Scan(&position, &status)
	if err == sql.ErrNoRows {
		return workflow.Validationf("user pemilik tidak ditemukan")
	}
	if err != nil {
		return err
	}
	if position != workflow.PositionBidanPraktik {
		return workflow.Validationf("pemilik tempat praktik harus bidan praktik")
	}
	if status != "ACTIVE" {
		return workflow.Validationf("user pemilik tidak aktif")
	}
	return nil
}

func (s *TempatPraktikService) List(villageID int) ([]models.TempatPraktik, error) {
	query := `
		SELECT tp.ID_Tempat_Praktik, tp.Nama, tp.Alamat, tp.ID_User, tp.ID_Desa,
			d.Nama_Desa, u.Nama
		FROM Tempat_Praktik tp
		JOIN Desa d ON tp.ID_Desa = d.ID_Desa
		JOIN Users u ON tp.ID_User = u.ID_User
	`
	var args []interface{}
	if villageID != 0 {
		query += " WHERE tp.ID_Desa = ?"
		args = append(args, villageID)
	}
	query += " ORDER BY tp.Nama"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.TempatPraktik
	for rows.Next() {
		var tp models.TempatPraktik
		if err := rows.Scan(&tp.ID, &tp.Nama, &tp.Alamat, &tp.UserID, &tp.VillageID,
			&tp.NamaDesa, &tp.NamaBidan); err != nil {
			return nil, err
		}
		result = append(result, tp)
	}
	return result, rows.Err()
}

func (s *TempatPraktikService) GetByID(id int) (*models.TempatPraktik, error) {
	query := `
		SELECT tp.ID_Tempat_Praktik, tp.Nama, tp.Alamat, tp.ID_User, tp.ID_Desa,
			d.Nama_Desa, u.Nama
		FROM Tempat_Praktik tp
		JOIN Desa d ON tp.ID_Desa = d.ID_Desa
		JOIN Users u ON tp.ID_User = u.ID_User
		WHERE tp.ID_Tempat_Praktik = ?
	`
	var tp models.TempatPraktik
	err := s.DB.QueryRow(query, id).Scan(&tp.ID, &tp.Nama, &tp.Alamat, &tp.UserID, &tp.VillageID,
		&tp.NamaDesa, &tp.NamaBidan)
	if err == sql.ErrNoRows {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func (s *TempatPraktikService) Create(req models.TempatPraktikRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if err := s.validateOwner(req.UserID); err != nil {
		return 0, err
	}

	var exists int
	err := s.DB.QueryRow("SELECT ID_Desa FROM Desa WHERE ID_Desa = ?", req.VillageID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, workflow.Validationf("desa tidak ditemukan")
	}
	if err != nil {
		return 0, err
	}

	result, err := s.DB.Exec(
		"INSERT INTO Tempat_Praktik (Nama, Alamat, ID_User, ID_Desa) VALUES (?, ?, ?, ?)",
		req.Nama, req.Alamat, req.UserID, req.VillageID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *TempatPraktikService) Update(id int, req models.TempatPraktikRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.validateOwner(req.UserID); err != nil {
		return err
	}

	result, err := s.DB.Exec(
		"UPDATE Tempat_Praktik SET Nama = ?, Alamat = ?, ID_User = ?, ID_Desa = ? WHERE ID_Tempat_Praktik = ?",
		req.Nama, req.Alamat, req.UserID, req.VillageID, id)
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

// Delete menolak menghapus tempat praktik yang masih punya catatan klinis.
func (s *TempatPraktikService) Delete(id int) error {
	tables := []string{"Pemeriksaan_Kehamilan", "Persalinan", "Keluarga_Berencana", "Imunisasi", "Health_Data"}
	for _, table := range tables {
		var used int
		err := s.DB.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE ID_Tempat_Praktik = ?", id).Scan(&used)
		if err != nil {
			return err
		}
		if used > 0 {
			return workflow.Conflictf("tempat praktik masih memiliki catatan klinis")
		}
	}

	result, err := s.DB.Exec("DELETE FROM Tempat_Praktik WHERE ID_Tempat_Praktik = ?", id)
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
