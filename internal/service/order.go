package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shoe_store/internal/checkout"
	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/pricing"
	"github.com/Skotchmaster/shoe_store/internal/repo"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/events"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
	"github.com/Skotchmaster/shoe_store/pkg/metrics"
)

const MaxOrderResults = 500

type OrderService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Metrics *metrics.Metrics

	// TrustClientSubtotal prices the order from the submitted subtotal instead
	// of the catalog.
	TrustClientSubtotal bool
	Now                 func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OrderService) CreateOrder(ctx context.Context, in transport.CreateOrderRequest) (*transport.CreateOrderResponse, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if in.Subtotal == nil {
		return nil, fmt.Errorf("%w: subtotal required", ErrValidation)
	}
	if *in.Subtotal < 0 {
		return nil, fmt.Errorf("%w: subtotal must not be negative", ErrValidation)
	}

	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}
	subtotal := decimal.NewFromFloat(*in.Subtotal)
	if !s.TrustClientSubtotal {
		items, subtotal, err = s.repriceItems(ctx, items)
		if err != nil {
			return nil, err
		}
		if !subtotal.IsPositive() {
			return nil, fmt.Errorf("%w: order subtotal must be positive", ErrValidation)
		}
	}
	totals := pricing.ComputeTotals(subtotal)

	now := s.now()
	number, err := pricing.NewOrderNumber(now)
	if err != nil {
		return nil, fmt.Errorf("order number: %w", err)
	}

	o := &models.Order{
		OrderNumber:          number,
		Username:             username,
		Items:                items,
		Totals:               toModelTotals(totals),
		Shipping:             models.ShippingAddress(in.Shipping),
		Status:               models.StatusProcessing,
		ExpectedDeliveryText: models.ExpectedDeliveryText,
	}
	if err := s.Repo.CreateOrder(ctx, o); err != nil {
		if repo.IsDuplicate(err) {
			l.Warn("order_number_conflict", "order_number", number)
			return nil, fmt.Errorf("%w: order number already exists", ErrConflict)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	if _, err := s.Repo.ClearCart(ctx, username); err != nil {
		l.Warn("clear_cart_error", "user", username, "error", err)
	}
	s.Metrics.ObserveOrder(o.Totals.Total)
	publish(ctx, s.Events, events.TopicOrders, username, "order_created", map[string]any{
		"id":          o.ID,
		"orderNumber": o.OrderNumber,
		"username":    username,
		"total":       o.Totals.Total,
		"items":       len(o.Items),
	})
	l.Info("order_created", "order_number", o.OrderNumber, "user", username, "total", o.Totals.Total)

	return &transport.CreateOrderResponse{
		ID:                   o.ID.String(),
		OrderNumber:          o.OrderNumber,
		ExpectedDeliveryText: o.ExpectedDeliveryText,
	}, nil
}

// normalizeItems applies the line defaults (price 0, quantity 1) and rejects
// negative prices and quantities below one.
func normalizeItems(in []transport.OrderItemRequest) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(in))
	for i, it := range in {
		item := models.OrderItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      it.Name,
			Quantity:  1,
			Size:      it.Size,
			Color:     it.Color,
			Image:     it.Image,
		}
		if it.Price != nil {
			if *it.Price < 0 {
				return nil, fmt.Errorf("%w: items[%d].price must not be negative", ErrValidation, i)
			}
			item.Price = *it.Price
		}
		if it.Quantity != nil {
			if *it.Quantity < 1 {
				return nil, fmt.Errorf("%w: items[%d].quantity must be at least 1", ErrValidation, i)
			}
			item.Quantity = *it.Quantity
		}
		out = append(out, item)
	}
	return out, nil
}

// repriceItems replaces submitted prices with catalog prices. Lines whose
// product no longer exists keep the submitted price.
func (s *OrderService) repriceItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if id, err := uuid.Parse(it.ProductID); err == nil {
			ids = append(ids, id)
		}
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("load products: %w", err)
	}

	lines := make([]pricing.Line, 0, len(items))
	for i, it := range items {
		if id, err := uuid.Parse(it.ProductID); err == nil {
			if p, ok := products[id]; ok {
				items[i].Price = p.Price
				if items[i].Name == "" {
					items[i].Name = p.Name
				}
			}
		}
		lines = append(lines, pricing.Line{Price: decimal.NewFromFloat(items[i].Price), Quantity: items[i].Quantity})
	}
	return items, pricing.Subtotal(lines).Round(2), nil
}

func toModelTotals(t pricing.Totals) models.Totals {
	f := func(d decimal.Decimal) float64 {
		v, _ := d.Round(2).Float64()
		return v
	}
	return models.Totals{
		Subtotal: f(t.Subtotal),
		Shipping: f(t.Shipping),
		Tax:      f(t.Tax),
		Total:    f(t.Total),
	}
}

// ListOrders returns one customer's orders. The full listing is admin-only,
// see AdminService.ListOrders.
func (s *OrderService) ListOrders(ctx context.Context, username string) ([]models.Order, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	orders, err := s.Repo.ListOrders(ctx, username, MaxOrderResults)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, rawID, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}
	id, err := parseID(rawID, "order")
	if err != nil {
		return nil, err
	}
	o, err := s.Repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	publish(ctx, s.Events, events.TopicOrders, o.Username, "order_status_changed", map[string]any{
		"id":     o.ID,
		"status": o.Status,
	})
	return o, nil
}

// PlaceOrder submits a reviewed checkout session.
func (s *OrderService) PlaceOrder(ctx context.Context, o checkout.Order) (checkout.Receipt, error) {
	req := transport.CreateOrderRequest{
		Username: o.Username,
		Subtotal: &o.Subtotal,
		Shipping: transport.ShippingRequest(o.Shipping),
	}
	for _, it := range o.Items {
		price, qty := it.Price, it.Quantity
		req.Items = append(req.Items, transport.OrderItemRequest{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     &price,
			Quantity:  &qty,
			Size:      it.Size,
			Color:     it.Color,
			Image:     it.Image,
		})
	}
	resp, err := s.CreateOrder(ctx, req)
	if err != nil {
		return checkout.Receipt{}, err
	}
	return checkout.Receipt(*resp), nil
}
