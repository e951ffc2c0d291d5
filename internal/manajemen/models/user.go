package models

import (
	"strings"
	"time"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type User struct {
	ID        int        `json:"id_user"`
	Username  string     `json:"username"`
	Nama      string     `json:"nama"`
	Role      string     `json:"role"`
	Position  string     `json:"position,omitempty"`
	VillageID *int       `json:"id_desa,omitempty"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type UserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Nama      string `json:"nama"`
	Role      string `json:"role"`
	Position  string `json:"position"`
	VillageID *int   `json:"id_desa"`
}

func (r UserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return workflow.Validationf("username wajib diisi")
	}
	if strings.TrimSpace(r.Nama) == "" {
		return workflow.Validationf("nama wajib diisi")
	}
	switch r.Role {
	case workflow.RoleAdmin:
		if r.Position != "" {
			return workflow.Validationf("admin tidak memiliki position")
		}
	case workflow.RoleUser:
		switch r.Position {
		case workflow.PositionBidanPraktik, workflow.PositionBidanKoordinator:
		case workflow.PositionBidanDesa:
			if r.VillageID == nil || *r.VillageID <= 0 {
				return workflow.Validationf("bidan desa wajib memiliki id_desa")
			}
		default:
			return workflow.Validationf("position tidak dikenal: %s", r.Position)
		}
	default:
		return workflow.Validationf("role tidak dikenal: %s", r.Role)
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}
