package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/service"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_order", err)
	}
	resp, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return fail(l, "create_order", err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.ListOrders(ctx, c.QueryParam("username"))
	if err != nil {
		return fail(l, "list_orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}
