package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/repo"
	"github.com/Skotchmaster/shoe_store/internal/search"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/events"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

const MaxProductResults = 200

var ErrSearchDisabled = search.ErrDisabled

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  search.Indexer
	Events events.Publisher
}

func (s *CatalogService) List(ctx context.Context, f transport.ProductFilter) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx, f, MaxProductResults)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := parseID(rawID, "product")
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product")
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, in transport.ProductInput) (*models.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	p := &models.Product{Gender: models.GenderUnisex, InStock: true}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.afterWrite(ctx, "product_created", p)
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, rawID string, in transport.ProductInput) (*models.Product, error) {
	p, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.afterWrite(ctx, "product_updated", p)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "product")
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFoundOr(err, "product")
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("search_delete_error", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, id.String(), "product_deleted", map[string]any{"productId": id})
	return nil
}

func (s *CatalogService) Search(ctx context.Context, q string, page, size int) (*transport.SearchResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: q required", ErrValidation)
	}
	if s.Index == nil {
		return nil, ErrSearchDisabled
	}
	res, err := s.Index.Search(ctx, q, page, size)
	if err != nil {
		if errors.Is(err, search.ErrDisabled) {
			return nil, ErrSearchDisabled
		}
		return nil, fmt.Errorf("search products: %w", err)
	}
	return res, nil
}

// Reindex pushes the whole catalog into the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	items, err := s.Repo.AllProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("reindex: %w", err)
	}
	for _, p := range items {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			return 0, fmt.Errorf("reindex %s: %w", p.ID, err)
		}
	}
	return len(items), nil
}

func (s *CatalogService) afterWrite(ctx context.Context, eventType string, p *models.Product) {
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, *p); err != nil {
			logging.FromContext(ctx).Warn("search_index_error", "product_id", p.ID, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, p.ID.String(), eventType, map[string]any{
		"productId": p.ID,
		"name":      p.Name,
		"price":     p.Price,
		"quantity":  p.Quantity,
	})
}

func applyProductInput(p *models.Product, in transport.ProductInput) error {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		if *in.OriginalPrice < 0 {
			return fmt.Errorf("%w: originalPrice must be >= 0", ErrValidation)
		}
		p.OriginalPrice = in.OriginalPrice
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Sizes != nil {
		p.Sizes = []string(in.Sizes)
	}
	if in.Colors != nil {
		p.Colors = []string(in.Colors)
	}
	if in.Features != nil {
		p.Features = []string(in.Features)
	}
	if in.Category != nil {
		p.Category = []string(in.Category)
	}
	if in.Brand != nil {
		p.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*in.Gender))
		switch g {
		case models.GenderMen, models.GenderWomen, models.GenderUnisex:
			p.Gender = g
		default:
			return fmt.Errorf("%w: gender must be one of men, women, unisex", ErrValidation)
		}
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
		}
		p.Quantity = *in.Quantity
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Reviews != nil {
		p.ReviewCount = *in.Reviews
	}
	return nil
}
