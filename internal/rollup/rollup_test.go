package rollup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/pkg/metrics"
)

type fakeRefresher struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRefresher) RefreshSnapshot(context.Context) (*models.TotalCount, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &models.TotalCount{TotalOrders: 3, TotalUsers: 2, TotalRevenue: 10}, nil
}

type fakePruner struct{ calls atomic.Int32 }

func (f *fakePruner) DeleteExpiredRefreshTokens(context.Context, time.Time) (int64, error) {
	f.calls.Add(1)
	return 1, nil
}

func TestRunOnce_RecordsOutcome(t *testing.T) {
	m := metrics.New()
	ok := &fakeRefresher{}
	pr := &fakePruner{}
	s := &Scheduler{Snapshots: ok, Tokens: pr, Metrics: m, Timeout: time.Second}
	require.NoError(t, s.Start(context.Background(), "@every 1h"))
	s.Stop(context.Background())

	assert.EqualValues(t, 1, ok.calls.Load())
	assert.EqualValues(t, 1, pr.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RollupRuns.WithLabelValues("true")))

	bad := &fakeRefresher{err: errors.New("db down")}
	s = &Scheduler{Snapshots: bad, Metrics: m, Timeout: time.Second}
	require.NoError(t, s.Start(context.Background(), "@every 1h"))
	s.Stop(context.Background())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RollupRuns.WithLabelValues("false")))
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := &Scheduler{Snapshots: &fakeRefresher{}}
	require.Error(t, s.Start(context.Background(), "every now and then"))
}

func TestStart_RunsOnSchedule(t *testing.T) {
	f := &fakeRefresher{}
	s := &Scheduler{Snapshots: f}
	require.NoError(t, s.Start(context.Background(), "@every 1s"))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return f.calls.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)
}
