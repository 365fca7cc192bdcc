package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_store/pkg/db"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

type HealthHTTP struct {
	DB *gorm.DB
}

func (h *HealthHTTP) Live(c echo.Context) error { return c.NoContent(http.StatusOK) }

func (h *HealthHTTP) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if h.DB != nil {
		if err := db.Ping(ctx, h.DB); err != nil {
			logging.FromContext(ctx).Warn("ready_error", "status", http.StatusServiceUnavailable, "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
	}
	return c.NoContent(http.StatusOK)
}

func (h *HealthHTTP) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
