package workflow

import (
	"errors"
	"fmt"
	"net/http"
)

// Error sentinel untuk seluruh operasi workflow. Controller memetakan error
// ini ke kode HTTP lewat HTTPStatus, bukan dengan membandingkan string pesan.
var (
	ErrForbidden     = errors.New("anda tidak memiliki hak akses")
	ErrValidation    = errors.New("data tidak valid")
	ErrStateConflict = errors.New("status data tidak mengizinkan operasi ini")
	ErrNotFound      = errors.New("data tidak ditemukan")
)

// Forbiddenf membungkus ErrForbidden dengan pesan tambahan.
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// Validationf membungkus ErrValidation dengan pesan tambahan.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflictf membungkus ErrStateConflict dengan pesan tambahan.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrStateConflict, fmt.Sprintf(format, args...))
}

// HTTPStatus memetakan error workflow ke kode HTTP. Error lain dianggap
// kegagalan storage/transport dan dijawab 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStateConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
