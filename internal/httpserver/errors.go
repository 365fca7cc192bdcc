package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/service"
)

// fail logs err under op and converts it to the HTTP error the client sees.
// Unclassified errors become a bare 500.
func fail(l *slog.Logger, op string, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrSearchDisabled):
		l.Warn(op+"_error", "status", http.StatusServiceUnavailable, "reason", "search disabled")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	if status == http.StatusInternalServerError {
		l.Error(op+"_error", "status", status, "error", err)
		return echo.NewHTTPError(status, "internal error")
	}
	msg := service.PublicMessage(err)
	l.Warn(op+"_error", "status", status, "reason", msg, "error", err)
	return echo.NewHTTPError(status, msg)
}

func badBody(l *slog.Logger, op string, err error) error {
	l.Warn(op+"_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
}
