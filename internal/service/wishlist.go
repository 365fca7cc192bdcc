package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/repo"
)

const MaxWishlistResults = 200

type WishlistService struct {
	Repo *repo.GormRepo
}

type AddWishlistItem struct {
	Username  string
	ProductID string
	Size      string
	Color     string
}

// List returns an empty list, not an error, when no username is given.
func (s *WishlistService) List(ctx context.Context, username string) ([]models.WishlistItem, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return []models.WishlistItem{}, nil
	}
	items, err := s.Repo.ListWishlist(ctx, username, MaxWishlistResults)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

func (s *WishlistService) Add(ctx context.Context, in AddWishlistItem) (*models.WishlistItem, bool, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || strings.TrimSpace(in.ProductID) == "" {
		return nil, false, fmt.Errorf("%w: username and productId required", ErrValidation)
	}
	pid, err := parseID(in.ProductID, "product")
	if err != nil {
		return nil, false, err
	}
	p, err := s.Repo.GetProduct(ctx, pid)
	if err != nil {
		return nil, false, notFoundOr(err, "product")
	}

	item := &models.WishlistItem{
		Username:  in.Username,
		ProductID: p.ID,
		Size:      strings.TrimSpace(in.Size),
		Color:     strings.TrimSpace(in.Color),
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
	}
	created, err := s.Repo.AddToWishlist(ctx, item)
	if err != nil {
		return nil, false, fmt.Errorf("add to wishlist: %w", err)
	}
	return item, created, nil
}

func (s *WishlistService) Remove(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "wishlist item")
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteWishlistItem(ctx, id); err != nil {
		return notFoundOr(err, "wishlist item")
	}
	return nil
}
