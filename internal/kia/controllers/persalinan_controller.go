package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/kia/services"
)

type PersalinanController struct {
	Service *services.PersalinanService
}

func NewPersalinanController(service *services.PersalinanService) *PersalinanController {
	return &PersalinanController{Service: service}
}

func (pc *PersalinanController) ListPersalinan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := pc.Service.List(actor, parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data persalinan berhasil diambil", data)
}

func (pc *PersalinanController) DetailPersalinan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := pc.Service.GetByID(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Detail persalinan berhasil diambil", data)
}

func (pc *PersalinanController) CreatePersalinan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.PersalinanRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := pc.Service.Create(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("persalinan", "created", id)
	return respondJSON(c, http.StatusOK, "Data persalinan berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (pc *PersalinanController) UpdatePersalinan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.PersalinanRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := pc.Service.Update(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("persalinan", "updated", int64(id))
	return respondJSON(c, http.StatusOK, "Data persalinan berhasil diperbarui", nil)
}

func (pc *PersalinanController) DeletePersalinan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := pc.Service.Delete(actor, id); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data persalinan berhasil dihapus", nil)
}

func (pc *PersalinanController) VerifyPersalinan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := pc.Service.Verify(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("persalinan", "verified", int64(id))
	return respondJSON(c, http.StatusOK, "Verifikasi persalinan berhasil disimpan", nil)
}
