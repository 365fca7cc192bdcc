package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/service"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	items, err := h.Svc.List(ctx, c.QueryParam("userName"))
	if err != nil {
		return fail(l, "get_cart", err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddToCart answers 201 for a new line and 200 when it merged into an existing one.
func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "add_to_cart", err)
	}
	in := service.AddCartItem{
		UserName:  req.UserName,
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}

	item, created, err := h.Svc.Add(ctx, in)
	if err != nil {
		return fail(l, "add_to_cart", err)
	}
	if created {
		return c.JSON(http.StatusCreated, item)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var req transport.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_cart", err)
	}
	qty := 0
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	item, err := h.Svc.UpdateQuantity(ctx, c.Param("id"), qty)
	if err != nil {
		return fail(l, "update_cart", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) DeleteCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete")

	if err := h.Svc.Remove(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_cart_item", err)
	}
	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}
