package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/workflow"
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
