package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shoe_store/internal/pricing"
)

type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepReview
	StepOrderPlaced
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "SHIPPING"
	case StepPayment:
		return "PAYMENT"
	case StepReview:
		return "REVIEW"
	case StepOrderPlaced:
		return "ORDER_PLACED"
	}
	return "UNKNOWN"
}

var (
	ErrNotAtReview   = errors.New("checkout: order can only be placed from the review step")
	ErrAlreadyPlaced = errors.New("checkout: order already placed")
	ErrEmptyCart     = errors.New("checkout: cart is empty")
)

type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
}

// Order is what gets submitted; payment details are never part of it.
type Order struct {
	Username string
	Items    []Item
	Subtotal float64
	Shipping ShippingForm
}

type Receipt struct {
	ID                   string `json:"id"`
	OrderNumber          string `json:"orderNumber"`
	ExpectedDeliveryText string `json:"expectedDeliveryText"`
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, o Order) (Receipt, error)
}

// Session walks one shopper through SHIPPING -> PAYMENT -> REVIEW. It holds no
// shared state; dropping it abandons the checkout.
type Session struct {
	Username string
	Shipping ShippingForm
	Payment  PaymentForm
	Receipt  *Receipt

	step   Step
	emails EmailChecker
	now    func() time.Time
}

func NewSession(username string, emails EmailChecker) *Session {
	return &Session{Username: username, emails: emails, now: time.Now}
}

func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

func (s *Session) Step() Step { return s.step }

// Next validates the current step and advances on success.
func (s *Session) Next(ctx context.Context) error {
	switch s.step {
	case StepShipping:
		if err := ValidateShipping(ctx, s.Shipping, s.emails); err != nil {
			return err
		}
		s.step = StepPayment
	case StepPayment:
		if err := ValidatePayment(s.Payment, s.now()); err != nil {
			return err
		}
		s.step = StepReview
	case StepReview:
		return ErrNotAtReview
	case StepOrderPlaced:
		return ErrAlreadyPlaced
	}
	return nil
}

// Back moves one step backwards without validation.
func (s *Session) Back() {
	switch s.step {
	case StepPayment:
		s.step = StepShipping
	case StepReview:
		s.step = StepPayment
	}
}

func (s *Session) PlaceOrder(ctx context.Context, items []Item, placer OrderPlacer) (Receipt, error) {
	switch s.step {
	case StepOrderPlaced:
		return Receipt{}, ErrAlreadyPlaced
	case StepReview:
	default:
		return Receipt{}, ErrNotAtReview
	}
	if err := ValidateShipping(ctx, s.Shipping, s.emails); err != nil {
		return Receipt{}, err
	}
	if err := ValidatePayment(s.Payment, s.now()); err != nil {
		return Receipt{}, err
	}
	if len(items) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{Price: decimal.NewFromFloat(it.Price), Quantity: it.Quantity})
	}
	subtotal, _ := pricing.Subtotal(lines).Round(2).Float64()

	r, err := placer.PlaceOrder(ctx, Order{
		Username: s.Username,
		Items:    items,
		Subtotal: subtotal,
		Shipping: s.Shipping,
	})
	if err != nil {
		return Receipt{}, err
	}
	s.step = StepOrderPlaced
	s.Receipt = &r
	return r, nil
}
