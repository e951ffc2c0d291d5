package services

import (
	"database/sql"

	"github.com/puskesmas/kia-backend/internal/master/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type DesaService struct {
	DB *sql.DB
}

func NewDesaService(db *sql.DB) *DesaService {
	return &DesaService{DB: db}
}

func (s *DesaService) List() ([]models.Desa, error) {
	rows, err := s.DB.Query("SELECT ID_Desa, Nama_Desa FROM Desa ORDER BY Nama_Desa")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Desa
	for rows.Next() {
		var d models.Desa
		if err := rows.Scan(&d.ID, &d.Nama); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (s *DesaService) Create(req models.DesaRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	result, err := s.DB.Exec("INSERT INTO Desa (Nama_Desa) VALUES (?)", req.Nama)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *DesaService) Update(id int, req models.DesaRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	result, err := s.DB.Exec("UPDATE Desa SET Nama_Desa = ? WHERE ID_Desa = ?", req.Nama, id)
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

// Delete menolak menghapus desa yang masih dipakai tempat praktik.
func (s *DesaService) Delete(id int) error {
	var used int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM Tempat_Praktik WHERE ID_Desa = ?", id).Scan(&used)
	if err != nil {
		return err
	}
	if used > 0 {
		return workflow.Conflictf("desa masih digunakan oleh %d tempat praktik", used)
	}

	result, err := s.DB.Exec("DELETE FROM Desa WHERE ID_Desa = ?", id)
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
