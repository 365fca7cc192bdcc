package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/repo"
	"github.com/Skotchmaster/shoe_store/pkg/events"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
	"github.com/Skotchmaster/shoe_store/pkg/metrics"
)

type CartService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Metrics *metrics.Metrics
}

type AddCartItem struct {
	UserName  string
	ProductID string
	Size      string
	Color     string
	Quantity  int
}

func (s *CartService) List(ctx context.Context, userName string) ([]models.CartItem, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, fmt.Errorf("%w: userName required", ErrValidation)
	}
	items, err := s.Repo.ListCart(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return items, nil
}

// Add snapshots the product's name, price and image into a new line or adds the
// quantity to the matching line. The bool reports whether a line was created.
func (s *CartService) Add(ctx context.Context, in AddCartItem) (*models.CartItem, bool, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	in.UserName = strings.TrimSpace(in.UserName)
	if in.UserName == "" {
		return nil, false, fmt.Errorf("%w: userName required", ErrValidation)
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, false, fmt.Errorf("%w: productId required", ErrValidation)
	}
	if in.Quantity < 0 {
		return nil, false, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	pid, err := parseID(in.ProductID, "product")
	if err != nil {
		return nil, false, err
	}
	p, err := s.Repo.GetProduct(ctx, pid)
	if err != nil {
		return nil, false, notFoundOr(err, "product")
	}

	item := &models.CartItem{
		UserName:  in.UserName,
		ProductID: p.ID,
		Size:      strings.TrimSpace(in.Size),
		Color:     strings.TrimSpace(in.Color),
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  in.Quantity,
	}
	created, err := s.Repo.AddToCart(ctx, item)
	if err != nil {
		l.Error("cart_add_error", "user", in.UserName, "product_id", pid, "error", err)
		return nil, false, fmt.Errorf("add to cart: %w", err)
	}

	s.Metrics.ObserveCartAdd()
	publish(ctx, s.Events, events.TopicCart, in.UserName, "cart_item_added", map[string]any{
		"userName":     item.UserName,
		"productId":    item.ProductID,
		"quantity":     in.Quantity,
		"lineQuantity": item.Quantity,
	})
	return item, created, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, rawID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	id, err := parseID(rawID, "cart item")
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.UpdateCartQuantity(ctx, id, quantity)
	if err != nil {
		return nil, notFoundOr(err, "cart item")
	}
	publish(ctx, s.Events, events.TopicCart, item.UserName, "cart_item_updated", map[string]any{
		"id":       item.ID,
		"quantity": item.Quantity,
	})
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "cart item")
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteCartItem(ctx, id); err != nil {
		return notFoundOr(err, "cart item")
	}
	publish(ctx, s.Events, events.TopicCart, id.String(), "cart_item_removed", map[string]any{"id": id})
	return nil
}

func (s *CartService) Clear(ctx context.Context, userName string) error {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return fmt.Errorf("%w: userName required", ErrValidation)
	}
	if _, err := s.Repo.ClearCart(ctx, userName); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
