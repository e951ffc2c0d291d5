package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/master/models"
	"github.com/puskesmas/kia-backend/internal/master/services"
)

type TempatPraktikController struct {
	Service *services.TempatPraktikService
}

func NewTempatPraktikController(service *services.TempatPraktikService) *TempatPraktikController {
	return &TempatPraktikController{Service: service}
}

func (tc *TempatPraktikController) ListTempatPraktik(c echo.Context) error {
	villageID, _ := strconv.Atoi(c.QueryParam("village_id"))
	data, err := tc.Service.List(villageID)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data tempat praktik berhasil diambil", data)
}

func (tc *TempatPraktikController) DetailTempatPraktik(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := tc.Service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Detail tempat praktik berhasil diambil", data)
}

func (tc *TempatPraktikController) CreateTempatPraktik(c echo.Context) error {
	var req models.TempatPraktikRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := tc.Service.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Tempat praktik berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (tc *TempatPraktikController) UpdateTempatPraktik(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.TempatPraktikRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := tc.Service.Update(id, req); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Tempat praktik berhasil diperbarui", nil)
}

func (tc *TempatPraktikController) DeleteTempatPraktik(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := tc.Service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Tempat praktik berhasil dihapus", nil)
}
