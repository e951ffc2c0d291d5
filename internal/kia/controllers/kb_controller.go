package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/kia/services"
)

type KBController struct {
	Service *services.KBService
}

func NewKBController(service *services.KBService) *KBController {
	return &KBController{Service: service}
}

func (kc *KBController) ListKB(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := kc.Service.List(actor, parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data keluarga berencana berhasil diambil", data)
}

func (kc *KBController) DetailKB(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := kc.Service.GetByID(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Detail keluarga berencana berhasil diambil", data)
}

func (kc *KBController) CreateKB(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.KBRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := kc.Service.Create(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("keluarga-berencana", "created", id)
	return respondJSON(c, http.StatusOK, "Data keluarga berencana berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (kc *KBController) UpdateKB(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.KBRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := kc.Service.Update(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("keluarga-berencana", "updated", int64(id))
	return respondJSON(c, http.StatusOK, "Data keluarga berencana berhasil diperbarui", nil)
}

func (kc *KBController) DeleteKB(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := kc.Service.Delete(actor, id); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data keluarga berencana berhasil dihapus", nil)
}

func (kc *KBController) VerifyKB(c echo.Context) error {
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
	if err := kc.Service.Verify(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("keluarga-berencana", "verified", int64(id))
	return respondJSON(c, http.StatusOK, "Verifikasi keluarga berencana berhasil disimpan", nil)
}
