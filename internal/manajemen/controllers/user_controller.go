package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/manajemen/models"
	"github.com/puskesmas/kia-backend/internal/manajemen/services"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{Service: service}
}

func (uc *UserController) ListUsers(c echo.Context) error {
	data, err := uc.Service.List()
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data user berhasil diambil", data)
}

func (uc *UserController) AddUser(c echo.Context) error {
	var req models.UserRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := uc.Service.AddUser(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "User berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (uc *UserController) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.UserRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := uc.Service.UpdateUser(id, req); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "User berhasil diperbarui", nil)
}

func (uc *UserController) ActivateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := uc.Service.SetStatus(id, true); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "User berhasil diaktifkan", nil)
}

func (uc *UserController) DeactivateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := uc.Service.SetStatus(id, false); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "User berhasil dinonaktifkan", nil)
}

// ChangePassword mengganti password milik user yang sedang login.
func (uc *UserController) ChangePassword(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := uc.Service.ChangePassword(claims.UserID, req); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Password berhasil diganti", nil)
}

// ResetPassword dipakai admin untuk mereset password user lain.
func (uc *UserController) ResetPassword(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := uc.Service.ResetPassword(id, req); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Password berhasil direset", nil)
}
