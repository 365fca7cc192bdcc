// Package rollup periodically refreshes the admin dashboard snapshot and prunes
// dead refresh tokens.
package rollup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/pkg/metrics"
)

type SnapshotRefresher interface {
	RefreshSnapshot(ctx context.Context) (*models.TotalCount, error)
}

type TokenPruner interface {
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Scheduler struct {
	Snapshots SnapshotRefresher
	Tokens    TokenPruner
	Metrics   *metrics.Metrics
	Log       *slog.Logger
	Timeout   time.Duration

	cron *cron.Cron
}

// Start runs one rollup immediately, then on every tick of schedule.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	if s.Log == nil {
		s.Log = slog.Default()
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("rollup schedule %q: %w", schedule, err)
	}
	s.cron = c

	s.RunOnce(ctx)
	c.Start()
	s.Log.Info("rollup_started", "schedule", schedule)
	return nil
}

// Stop halts scheduling and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) RunOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.Timeout)
	defer cancel()

	if s.Snapshots != nil {
		tc, err := s.Snapshots.RefreshSnapshot(ctx)
		s.Metrics.ObserveRollup(err == nil)
		if err != nil {
			s.Log.Error("rollup_error", "error", err)
		} else {
			s.Log.Info("rollup_done", "orders", tc.TotalOrders, "users", tc.TotalUsers, "revenue", tc.TotalRevenue)
		}
	}

	if s.Tokens != nil {
		n, err := s.Tokens.DeleteExpiredRefreshTokens(ctx, time.Now().UTC())
		if err != nil {
			s.Log.Warn("prune_tokens_error", "error", err)
		} else if n > 0 {
			s.Log.Info("pruned_refresh_tokens", "count", n)
		}
	}
}
