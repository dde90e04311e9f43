package httperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Machine-readable error kinds surfaced in every error payload.
const (
	KindUnauthenticated = "unauthenticated"
	KindForbidden       = "forbidden"
	KindValidation      = "validation"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindInternal        = "internal"
)

func newError(status int, kind, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, map[string]string{
		"message": message,
		"kind":    kind,
	})
}

func Unauthenticated(message string) *echo.HTTPError {
	return newError(http.StatusUnauthorized, KindUnauthenticated, message)
}

func Forbidden(message string) *echo.HTTPError {
	return newError(http.StatusForbidden, KindForbidden, message)
}

func Validation(message string) *echo.HTTPError {
	return newError(http.StatusBadRequest, KindValidation, message)
}

func NotFound(message string) *echo.HTTPError {
	return newError(http.StatusNotFound, KindNotFound, message)
}

func Conflict(message string) *echo.HTTPError {
	return newError(http.StatusConflict, KindConflict, message)
}

// Internal deliberately carries a generic message; the cause belongs in the
// server log, never in the response.
func Internal() *echo.HTTPError {
	return newError(http.StatusInternalServerError, KindInternal, "internal server error")
}
