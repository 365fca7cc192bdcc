package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/service"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	items, err := h.Svc.List(ctx, c.QueryParam("username"))
	if err != nil {
		return fail(l, "get_wishlist", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHTTP) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	var req transport.AddWishlistRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "add_to_wishlist", err)
	}
	item, created, err := h.Svc.Add(ctx, service.AddWishlistItem(req))
	if err != nil {
		return fail(l, "add_to_wishlist", err)
	}
	if created {
		return c.JSON(http.StatusCreated, item)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *WishlistHTTP) DeleteWishlistItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.delete")

	if err := h.Svc.Remove(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_wishlist_item", err)
	}
	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}
