package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/service"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

type AdminHTTP struct {
	Svc    *service.AdminService
	Orders *service.OrderService
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		return fail(l, "admin_stats", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		return fail(l, "admin_orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return fail(l, "admin_users", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.order_status")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_order_status", err)
	}
	o, err := h.Orders.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return fail(l, "update_order_status", err)
	}
	l.Info("order_status_updated", "order_id", o.ID, "status", o.Status)
	return c.JSON(http.StatusOK, o)
}

func (h *AdminHTTP) RefreshSnapshot(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.refresh_snapshot")

	tc, err := h.Svc.RefreshSnapshot(ctx)
	if err != nil {
		return fail(l, "refresh_snapshot", err)
	}
	return c.JSON(http.StatusOK, tc)
}
