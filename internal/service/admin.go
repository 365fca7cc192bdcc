package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shoe_store/internal/cache"
	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/repo"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

const MaxAdminResults = 500

type AdminService struct {
	Repo  *repo.GormRepo
	Users *repo.AccountStore
	Cache cache.StatsCache
}

func (s *AdminService) cache() cache.StatsCache {
	if s.Cache == nil {
		return cache.Nop{}
	}
	return s.Cache
}

// Stats counts products live. Orders, users and revenue come from the latest
// snapshot when there is one.
func (s *AdminService) Stats(ctx context.Context) (*transport.StatsResponse, error) {
	l := logging.FromContext(ctx).With("svc", "admin.stats")

	if cached, ok, err := s.cache().Get(ctx); err != nil {
		l.Warn("stats_cache_error", "error", err)
	} else if ok {
		return cached, nil
	}

	products, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	out := transport.StatsResponse{Products: products}

	snap, err := s.Repo.LatestSnapshot(ctx)
	switch {
	case err == nil:
		out.Orders, out.Users, out.Revenue = snap.TotalOrders, snap.TotalUsers, snap.TotalRevenue
	case repo.IsNotFound(err):
		live, err := s.compute(ctx)
		if err != nil {
			return nil, err
		}
		out.Orders, out.Users, out.Revenue = live.TotalOrders, live.TotalUsers, live.TotalRevenue
	default:
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	out.Revenue = roundCents(out.Revenue)

	if err := s.cache().Set(ctx, out); err != nil {
		l.Warn("stats_cache_error", "error", err)
	}
	return &out, nil
}

func (s *AdminService) compute(ctx context.Context) (*models.TotalCount, error) {
	orders, err := s.Repo.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	revenue, err := s.Repo.SumRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	return &models.TotalCount{TotalOrders: orders, TotalUsers: users, TotalRevenue: roundCents(revenue)}, nil
}

// RefreshSnapshot stores fresh totals and drops the cached stats.
func (s *AdminService) RefreshSnapshot(ctx context.Context) (*models.TotalCount, error) {
	tc, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveSnapshot(ctx, tc); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	if err := s.cache().Invalidate(ctx); err != nil {
		logging.FromContext(ctx).Warn("stats_cache_error", "error", err)
	}
	return tc, nil
}

func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.Repo.ListOrders(ctx, "", MaxAdminResults)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]transport.PublicUser, error) {
	accs, err := s.Users.List(ctx, MaxAdminResults)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]transport.PublicUser, 0, len(accs))
	for i := range accs {
		out = append(out, publicUser(&accs[i]))
	}
	return out, nil
}

func roundCents(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
