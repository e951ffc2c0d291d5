package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/master/models"
	"github.com/puskesmas/kia-backend/internal/master/services"
)

type DesaController struct {
	Service *services.DesaService
}

func NewDesaController(service *services.DesaService) *DesaController {
	return &DesaController{Service: service}
}

func (dc *DesaController) ListDesa(c echo.Context) error {
	data, err := dc.Service.List()
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data desa berhasil diambil", data)
}

func (dc *DesaController) CreateDesa(c echo.Context) error {
	var req models.DesaRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := dc.Service.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Desa berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (dc *DesaController) UpdateDesa(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.DesaRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := dc.Service.Update(id, req); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Desa berhasil diperbarui", nil)
}

func (dc *DesaController) DeleteDesa(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := dc.Service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Desa berhasil dihapus", nil)
}
