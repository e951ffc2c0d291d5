package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/kia/models"
	"github.com/puskesmas/kia-backend/internal/kia/services"
	"github.com/puskesmas/kia-backend/internal/workflow"
)

// HealthDataController membungkus modul data kesehatan lama. Endpoint
// approve/reject terpisah dipertahankan demi kompatibilitas dashboard lama,
// keduanya diteruskan ke Verify yang sama.
type HealthDataController struct {
	Service *services.HealthDataService
}

func NewHealthDataController(service *services.HealthDataService) *HealthDataController {
	return &HealthDataController{Service: service}
}

func (hc *HealthDataController) ListHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := hc.Service.List(actor, parseListFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data kesehatan berhasil diambil", data)
}

// ListRejectedHealthData mengembalikan antrean revisi milik aktor.
func (hc *HealthDataController) ListRejectedHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := hc.Service.ListRejected(actor)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data kesehatan yang ditolak berhasil diambil", data)
}

func (hc *HealthDataController) DetailHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := hc.Service.GetByID(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Detail data kesehatan berhasil diambil", data)
}

func (hc *HealthDataController) CreateHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.HealthDataRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	id, err := hc.Service.Create(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("health-data", "created", id)
	return respondJSON(c, http.StatusOK, "Data kesehatan berhasil ditambahkan", map[string]interface{}{"id": id})
}

func (hc *HealthDataController) UpdateHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req models.HealthDataRequest
	if err := c.Bind(&req); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := hc.Service.Update(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("health-data", "updated", int64(id))
	return respondJSON(c, http.StatusOK, "Data kesehatan berhasil diperbarui", nil)
}

func (hc *HealthDataController) DeleteHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := hc.Service.Delete(actor, id); err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Data kesehatan berhasil dihapus", nil)
}

func (hc *HealthDataController) VerifyHealthData(c echo.Context) error {
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
	if err := hc.Service.Verify(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("health-data", "verified", int64(id))
	return respondJSON(c, http.StatusOK, "Verifikasi data kesehatan berhasil disimpan", nil)
}

// ApproveHealthData melayani endpoint approve lama tanpa body.
func (hc *HealthDataController) ApproveHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	req := models.VerifyRequest{Status: string(workflow.StatusApproved)}
	if err := hc.Service.Verify(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("health-data", "verified", int64(id))
	return respondJSON(c, http.StatusOK, "Data kesehatan berhasil disetujui", nil)
}

// RejectHealthData melayani endpoint reject lama dengan alasan di body.
func (hc *HealthDataController) RejectHealthData(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		Alasan string `json:"alasan_penolakan"`
	}
	if err := c.Bind(&body); err != nil {
		return respondJSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	req := models.VerifyRequest{Status: string(workflow.StatusRejected), Alasan: body.Alasan}
	if err := hc.Service.Verify(actor, id, req); err != nil {
		return respondError(c, err)
	}
	broadcastVerifikasi("health-data", "verified", int64(id))
	return respondJSON(c, http.StatusOK, "Data kesehatan berhasil ditolak", nil)
}
