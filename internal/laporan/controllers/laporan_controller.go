package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	common "github.com/puskesmas/kia-backend/internal/common/middlewares"
	"github.com/puskesmas/kia-backend/internal/laporan/services"
	"github.com/puskesmas/kia-backend/internal/workflow"
	"github.com/puskesmas/kia-backend/pkg/utils"
)

type LaporanController struct {
	Service *services.RekapService
}

func NewLaporanController(service *services.RekapService) *LaporanController {
	return &LaporanController{Service: service}
}

func respondJSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func respondError(c echo.Context, err error) error {
	return respondJSON(c, workflow.HTTPStatus(err), err.Error(), nil)
}

func currentActor(c echo.Context) (workflow.Actor, error) {
	claims, ok := c.Get(string(common.ContextKeyClaims)).(*utils.Claims)
	if !ok {
		return nil, workflow.Forbiddenf("klaim tidak ditemukan")
	}
	return workflow.ResolveActor(claims)
}

func parseRekapFilter(c echo.Context) services.RekapFilter {
	var f services.RekapFilter
	if v, err := strconv.Atoi(c.QueryParam("month")); err == nil {
		f.Month = v
	}
	if v, err := strconv.Atoi(c.QueryParam("year")); err == nil {
		f.Year = v
	}
	if v, err := strconv.Atoi(c.QueryParam("village_id")); err == nil {
		f.VillageID = v
	}
	return f
}

// Rekapitulasi menampilkan jumlah catatan APPROVED per modul dan per desa.
func (lc *LaporanController) Rekapitulasi(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := lc.Service.Rekap(actor, parseRekapFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondJSON(c, http.StatusOK, "Rekapitulasi berhasil diambil", data)
}

// ExportExcel mengirim file xlsx berisi catatan APPROVED modul terpilih.
func (lc *LaporanController) ExportExcel(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return respondError(c, err)
	}
	module := c.Param("module")
	content, filename, err := lc.Service.ExportExcel(actor, module, parseRekapFilter(c))
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
