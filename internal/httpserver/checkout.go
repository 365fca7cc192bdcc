package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/checkout"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

type CheckoutHTTP struct {
	Emails checkout.EmailChecker
	Now    func() time.Time
}

func (h *CheckoutHTTP) ValidateShipping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.shipping")

	var f checkout.ShippingForm
	if err := c.Bind(&f); err != nil {
		return badBody(l, "checkout_shipping", err)
	}
	return h.respond(c, l.With("step", checkout.StepShipping.String()), checkout.ValidateShipping(ctx, f, h.Emails))
}

func (h *CheckoutHTTP) ValidatePayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.payment")

	var f checkout.PaymentForm
	if err := c.Bind(&f); err != nil {
		return badBody(l, "checkout_payment", err)
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return h.respond(c, l.With("step", checkout.StepPayment.String()), checkout.ValidatePayment(f, now()))
}

func (h *CheckoutHTTP) respond(c echo.Context, l *slog.Logger, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, transport.CheckoutValidationResponse{Valid: true})
	}
	var fe checkout.FieldErrors
	if errors.As(err, &fe) {
		l.Warn("checkout_validation_failed", "status", http.StatusBadRequest, "fields", len(fe))
		return c.JSON(http.StatusBadRequest, transport.CheckoutValidationResponse{Errors: fe})
	}
	l.Error("checkout_validation_error", "status", http.StatusInternalServerError, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
