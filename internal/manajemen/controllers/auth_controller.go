package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/manajemen/models"
	"github.com/puskesmas/kia-backend/internal/manajemen/services"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if req.Username == "" || req.Password == "" {
		return respondJSON(c, http.StatusBadRequest, "Username dan password wajib diisi", nil)
	}
	resp, err := ac.Service.Login(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Login berhasil", resp)
}
