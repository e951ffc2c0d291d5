package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/kia/services"
)

type ImunisasiController struct {
	Service *services.ImunisasiService
}

func NewImunisasiController(service *services.ImunisasiService) *ImunisasiController {
	return &ImunisasiController{Service: service}
}

func (ic *ImunisasiController) ListImunisasi(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := ic.Service.List(actor, parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data imunisasi berhasil diambil", data)
}

func (ic *ImunisasiController) DetailImunisasi(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := ic.Service.GetByID(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Detail imunisasi berhasil diambil", data)
}

func (ic *ImunisasiController) CreateImunisasi(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.ImunisasiRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := ic.Service.Create(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("imunisasi", "created", id)
	return respondJSON(c, http.StatusOK, "Data imunisasi berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (ic *ImunisasiController) UpdateImunisasi(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.ImunisasiRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := ic.Service.Update(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("imunisasi", "updated", int64(id))
	return respondJSON(c, http.StatusOK, "Data imunisasi berhasil diperbarui", nil)
}

func (ic *ImunisasiController) DeleteImunisasi(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := ic.Service.Delete(actor, id); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data imunisasi berhasil dihapus", nil)
}

func (ic *ImunisasiController) VerifyImunisasi(c echo.Context) error {
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
	if err := ic.Service.Verify(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("imunisasi", "verified", int64(id))
	return respondJSON(c, http.StatusOK, "Verifikasi imunisasi berhasil disimpan", nil)
}
