package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/master/models"
	"github.com/puskesmas/kia-backend/internal/master/services"
)

type PasienController struct {
	Service *services.PasienService
}

func NewPasienController(service *services.PasienService) *PasienController {
	return &PasienController{Service: service}
}

func (pc *PasienController) ListPasien(c echo.Context) error {
	data, err := pc.Service.List(c.QueryParam("search"))
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data pasien berhasil diambil", data)
}

func (pc *PasienController) DetailPasien(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := pc.Service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Detail pasien berhasil diambil", data)
}

func (pc *PasienController) CreatePasien(c echo.Context) error {
	var req models.PasienRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := pc.Service.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Pasien berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (pc *PasienController) UpdatePasien(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.PasienRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := pc.Service.Update(id, req); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Pasien berhasil diperbarui", nil)
}

func (pc *PasienController) DeletePasien(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := pc.Service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Pasien beserta catatan klinisnya berhasil dihapus", nil)
}
