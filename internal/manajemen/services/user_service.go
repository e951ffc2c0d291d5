package services

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/puskesmas/kia-backend/internal/manajemen/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

type UserService struct {
	DB *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) List() ([]models.User, error) {
	query := `
		SELECT ID_User, Username, Nama, Role, Position, ID_Desa, Status, Created_At
		FROM Users ORDER BY Nama
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		var position sql.NullString
		var villageID sql.NullInt64
		var createdAt sql.NullTime
		if err := rows.Scan(&u.ID, &u.Username, &u.Nama, &u.Role, &position, &villageID, &u.Status, &createdAt); err != nil {
			return nil, err
		}
		if position.Valid {
			u.Position = position.String
		}
		if villageID.Valid {
			v := int(villageID.Int64)
			u.VillageID = &v
		}
		if createdAt.Valid {
			u.CreatedAt = &createdAt.Time
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (s *UserService) AddUser(req models.UserRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if len(req.Password) < 8 {
		return 0, workflow.Validationf("password minimal 8 karakter")
	}

	var dup int
	err := s.DB.QueryRow("SELECT ID_User FROM Users WHERE Username = ?", req.Username).Scan(&dup)
	if err == nil {
		return 0, workflow.Conflictf("username sudah digunakan")
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	result, err := s.DB.Exec(`
		INSERT INTO Users (Username, Password, Nama, Role, Position, ID_Desa, Status, Created_At)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, 'ACTIVE', ?)
	`, req.Username, string(hashed), req.Nama, req.Role, req.Position, req.VillageID, time.Now())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateUser memperbarui profil tanpa menyentuh password.
func (s *UserService) UpdateUser(id int, req models.UserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var dup int
	err := s.DB.QueryRow("SELECT ID_User FROM Users WHERE Username = ? AND ID_User <> ?", req.Username, id).Scan(&dup)
	if err == nil {
		return workflow.Conflictf("username sudah digunakan")
	}
	if err != sql.ErrNoRows {
		return err
	}

	result, err := s.DB.Exec(`
		UPDATE Users SET Username = ?, Nama = ?, Role = ?, Position = NULLIF(?, ''), ID_Desa = ?
		WHERE ID_User = ?
	`, req.Username, req.Nama, req.Role, req.Position, req.VillageID, id)
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

// SetStatus mengaktifkan atau menonaktifkan akun. User nonaktif ditolak
// saat login tetapi datanya tetap utuh.
func (s *UserService) SetStatus(id int, active bool) error {
	status := models.StatusInactive
	if active {
		status = models.StatusActive
	}
	result, err := s.DB.Exec("UPDATE Users SET Status = ? WHERE ID_User = ?", status, id)
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

func (s *UserService) ChangePassword(userID int, req models.ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return workflow.Validationf("password baru minimal 8 karakter")
	}

	var hashed string
	err := s.DB.QueryRow("SELECT Password FROM Users WHERE ID_User = ?", userID).Scan(&hashed)
	if err == sql.ErrNoRows {
		return workflow.ErrNotFound
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(req.OldPassword)) != nil {
		return workflow.Forbiddenf("password lama salah")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec("UPDATE Users SET Password = ? WHERE ID_User = ?", string(newHash), userID)
	return err
}

// ResetPassword dipakai admin, tanpa verifikasi password lama.
func (s *UserService) ResetPassword(userID int, req models.ResetPasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return workflow.Validationf("password baru minimal 8 karakter")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	result, err := s.DB.Exec("UPDATE Users SET Password = ? WHERE ID_User = ?", string(newHash), userID)
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
