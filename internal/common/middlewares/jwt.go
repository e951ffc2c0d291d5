package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/pkg/utils"
)

// Definisikan tipe kustom untuk context key
type contextKey string

const (
	ContextKeyClaims contextKey = "claims"
)

// JWTMiddleware memvalidasi header Authorization dan menyimpan klaim ke context.
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Authorization header missing",
					"data":    nil,
				})
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Invalid authorization header",
					"data":    nil,
				})
			}
			claims, err := utils.ValidateJWTToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Invalid token: " + err.Error(),
					"data":    nil,
				})
			}

			c.Set(string(ContextKeyClaims), claims)
			return next(c)
		}
	}
}

// RequireAdmin membatasi endpoint master data untuk role ADMIN saja.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawClaims := c.Get(string(ContextKeyClaims))
			claims, ok := rawClaims.(*utils.Claims)
			if !ok || claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Missing or invalid JWT claims",
					"data":    nil,
				})
			}
			if claims.Role != "ADMIN" {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"status":  http.StatusForbidden,
					"message": "Anda tidak memiliki hak akses",
					"data":    nil,
				})
			}
			return next(c)
		}
	}
}

// RequirePosition membatasi endpoint untuk posisi bidan tertentu.
func RequirePosition(positions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawClaims := c.Get(string(ContextKeyClaims))
			claims, ok := rawClaims.(*utils.Claims)
			if !ok || claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Missing or invalid JWT claims",
					"data":    nil,
				})
			}
			for _, p := range positions {
				if claims.Position == p {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"status":  http.StatusForbidden,
				"message": "Anda tidak memiliki hak akses",
				"data":    nil,
			})
		}
	}
}
