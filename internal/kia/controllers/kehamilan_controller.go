package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/kia/services"
)

type KehamilanController struct {
	Service *services.KehamilanService
}

func NewKehamilanController(service *services.KehamilanService) *KehamilanController {
	return &KehamilanController{Service: service}
}

// ListKehamilan menangani GET /pemeriksaan-kehamilan dengan filter status,
// periode, desa, dan pencarian nama pasien.
func (kc *KehamilanController) ListKehamilan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := kc.Service.List(actor, parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data pemeriksaan kehamilan berhasil diambil", data)
}

func (kc *KehamilanController) DetailKehamilan(c echo.Context) error {
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
	return respondJSON(c, http.StatusOK, "Detail pemeriksaan kehamilan berhasil diambil", data)
}

func (kc *KehamilanController) CreateKehamilan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.KehamilanRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := kc.Service.Create(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("pemeriksaan-kehamilan", "created", id)
	return respondJSON(c, http.StatusOK, "Data pemeriksaan kehamilan berhasil ditambahkan", map[string]interface{}{"id": id})
}

// UpdateKehamilan melayani edit maupun revisi setelah penolakan.
func (kc *KehamilanController) UpdateKehamilan(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.KehamilanRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := kc.Service.Update(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("pemeriksaan-kehamilan", "updated", int64(id))
	return respondJSON(c, http.StatusOK, "Data pemeriksaan kehamilan berhasil diperbarui", nil)
}

func (kc *KehamilanController) DeleteKehamilan(c echo.Context) error {
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
	return respondJSON(c, http.StatusOK, "Data pemeriksaan kehamilan berhasil dihapus", nil)
}

func (kc *KehamilanController) VerifyKehamilan(c echo.Context) error {
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
	broadcastVerifikasi("pemeriksaan-kehamilan", "verified", int64(id))
	return respondJSON(c, http.StatusOK, "Verifikasi pemeriksaan kehamilan berhasil disimpan", nil)
}
