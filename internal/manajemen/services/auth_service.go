package services

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/puskesmas/kia-backend/internal/manajemen/models"
	"github.com/puskesmas/kia-backend/internal/workflow"
	"github.com/puskesmas/kia-backend/pkg/utils"
)

type AuthService struct {
	DB *sql.DB
}

func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{DB: db}
}

// Login memverifikasi kredensial dan menerbitkan JWT yang memuat role,
// position, desa, dan tempat praktik milik user.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	var u models.User
	var hashed string
	var position sql.NullString
	var villageID sql.NullInt64

	err := s.DB.QueryRow(`
		SELECT ID_User, Username, Password, Nama, Role, Position, ID_Desa, Status
		FROM Users WHERE Username = ?
	`, req.Username).Scan(&u.ID, &u.Username, &hashed, &u.Nama, &u.Role, &position, &villageID, &u.Status)
	if err == sql.ErrNoRows {
		return nil, workflow.Forbiddenf("username atau password salah")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(req.Password)) != nil {
		return nil, workflow.Forbiddenf("username atau password salah")
	}
	if u.Status != models.StatusActive {
		return nil, workflow.Forbiddenf("akun dinonaktifkan, hubungi admin")
	}

	if position.Valid {
		u.Position = position.String
	}
	desaID := 0
	if villageID.Valid {
		desaID = int(villageID.Int64)
		u.VillageID = &desaID
	}

	// Tempat praktik hanya relevan untuk bidan praktik.
	practiceID := 0
	if u.Position == workflow.PositionBidanPraktik {
		err := s.DB.QueryRow("SELECT ID_Tempat_Praktik FROM Tempat_Praktik WHERE ID_User = ?", u.ID).Scan(&practiceID)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
	}

	token, err := utils.GenerateJWTToken(u.ID, u.Role, u.Position, desaID, practiceID, u.Username, time.Now().Add(12*time.Hour))
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: u}, nil
}
