package controllers

import (
	"encoding/json"
	"strconv"

	"github.com/labstack/echo/v4"

	common "github.com/puskesmas/kia-backend/internal/common/middlewares"
	"github.com/puskesmas/kia-backend/internal/kia/services"
	"github.com/puskesmas/kia-backend/internal/workflow"
	jwtUtils "github.com/puskesmas/kia-backend/pkg/utils"
	"github.com/puskesmas/kia-backend/ws"
)

func respondJSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// respondError memetakan error bertipe dari workflow/service ke kode HTTP.
func respondError(c echo.Context, err error) error {
	return respondJSON(c, workflow.HTTPStatus(err), err.Error(), nil)
}

// currentActor menurunkan varian Actor dari klaim JWT di context.
func currentActor(c echo.Context) (workflow.Actor, error) {
	claims, ok := c.Get(string(common.ContextKeyClaims)).(*jwtUtils.Claims)
	if !ok {
		return nil, workflow.Forbiddenf("klaim tidak ditemukan")
	}
	return workflow.ResolveActor(claims)
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, workflow.Validationf("id harus berupa angka positif")
	}
	return id, nil
}

func parseListFilter(c echo.Context) services.ListFilter {
	var f services.ListFilter
	f.Status = c.QueryParam("status_verifikasi")
	f.Search = c.QueryParam("search")
	if v, err := strconv.Atoi(c.QueryParam("month")); err == nil {
		f.Month = v
	}
	if v, err := strconv.Atoi(c.QueryParam("year")); err == nil {
		f.Year = v
	}
	if v, err := strconv.Atoi(c.QueryParam("village_id")); err == nil {
		f.VillageID = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		f.Offset = v
	}
	return f
}

// broadcastVerifikasi mengirim event antrean verifikasi ke dashboard yang
// terhubung lewat WebSocket. Best-effort: hub drop client yang lambat.
func broadcastVerifikasi(module string, event string, id int64) {
	payload := map[string]interface{}{
		"type": "verifikasi_update",
		"data": map[string]interface{}{
			"module": module,
			"event":  event,
			"id":     id,
		},
	}
	msg, _ := json.Marshal(payload)
	ws.HubInstance.Broadcast <- msg
}
