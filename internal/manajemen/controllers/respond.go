package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	common "github.com/puskesmas/kia-backend/internal/common/middlewares"
	"github.com/puskesmas/kia-backend/internal/workflow"
	"github.com/puskesmas/kia-backend/pkg/utils"
)

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

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, workflow.Validationf("id harus berupa angka positif")
	}
	return id, nil
}

func currentClaims(c echo.Context) (*utils.Claims, error) {
	claims, ok := c.Get(string(common.ContextKeyClaims)).(*utils.Claims)
	if !ok || claims == nil {
		return nil, workflow.Forbiddenf("klaim tidak ditemukan")
	}
	return claims, nil
}
