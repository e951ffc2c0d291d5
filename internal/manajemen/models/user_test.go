package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puskesmas/kia-backend/internal/workflow"
)

func TestUserRequestValidate(t *testing.T) {
	desa := 3

	t.Run("admin tanpa position", func(t *testing.T) {
		req := UserRequest{Username: "admin1", Nama: "Admin Satu", Role: workflow.RoleAdmin}
		require.NoError(t, req.Validate())
	})

	t.Run("admin dengan position ditolak", func(t *testing.T) {
		req := UserRequest{Username: "admin1", Nama: "Admin Satu", Role: workflow.RoleAdmin, Position: workflow.PositionBidanPraktik}
		assert.ErrorIs(t, req.Validate(), workflow.ErrValidation)
	})

	t.Run("bidan praktik", func(t *testing.T) {
		req := UserRequest{Username: "bd.sri", Nama: "Sri", Role: workflow.RoleUser, Position: workflow.PositionBidanPraktik}
		require.NoError(t, req.Validate())
	})

	t.Run("bidan desa wajib punya desa", func(t *testing.T) {
		req := UserRequest{Username: "bd.rina", Nama: "Rina", Role: workflow.RoleUser, Position: workflow.PositionBidanDesa}
		assert.ErrorIs(t, req.Validate(), workflow.ErrValidation)

		req.VillageID = &desa
		assert.NoError(t, req.Validate())
	})

	t.Run("bidan koordinator", func(t *testing.T) {
		req := UserRequest{Username: "bd.koor", Nama: "Koordinator", Role: workflow.RoleUser, Position: workflow.PositionBidanKoordinator}
		require.NoError(t, req.Validate())
	})

	t.Run("role tidak dikenal", func(t *testing.T) {
		req := UserRequest{Username: "x", Nama: "X", Role: "SUPERVISOR"}
		assert.ErrorIs(t, req.Validate(), workflow.ErrValidation)
	})

	t.Run("position tidak dikenal", func(t *testing.T) {
		req := UserRequest{Username: "x", Nama: "X", Role: workflow.RoleUser, Position: "perawat"}
		assert.ErrorIs(t, req.Validate(), workflow.ErrValidation)
	})
}
