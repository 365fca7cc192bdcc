package pricing

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		subtotal string
		tax      string
		total    string
	}{
		{"100", "8", "117.99"},
		{"0", "0", "9.99"},
		{"59.99", "4.8", "74.78"},
		{"19.99", "1.6", "31.58"},
		{"123.45", "9.88", "143.32"},
	}
	for _, tc := range cases {
		t.Run(tc.subtotal, func(t *testing.T) {
			got := ComputeTotals(decimal.RequireFromString(tc.subtotal))
			assert.True(t, got.Shipping.Equal(FlatShipping))
			assert.Equal(t, tc.tax, got.Tax.String())
			assert.Equal(t, tc.total, got.Total.String())
		})
	}
}

func TestComputeTotals_Invariant(t *testing.T) {
	for cents := int64(0); cents < 50000; cents += 137 {
		sub := decimal.New(cents, -2)
		got := ComputeTotals(sub)
		want := sub.Add(decimal.RequireFromString("9.99")).Add(sub.Mul(decimal.RequireFromString("0.08")).Round(2)).Round(2)
		require.True(t, got.Total.Equal(want), "subtotal %s", sub)
	}
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{Price: decimal.RequireFromString("19.99"), Quantity: 2},
		{Price: decimal.RequireFromString("5.01"), Quantity: 1},
	}
	assert.Equal(t, "44.99", Subtotal(lines).String())
	assert.True(t, Subtotal(nil).IsZero())
}

var orderNumberRe = regexp.MustCompile(`^ORD-\d+-[A-Z0-9]{5}$`)

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.UnixMilli(1767225600000)
	n, err := NewOrderNumber(now)
	require.NoError(t, err)
	assert.Regexp(t, orderNumberRe, n)
	assert.Contains(t, n, "ORD-1767225600000-")
}

func TestNewOrderNumber_UniqueUnderConcurrency(t *testing.T) {
	const workers, perWorker = 8, 250
	now := time.Now()

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				n, err := NewOrderNumber(now)
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				seen[n] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	// all draws share one millisecond, so allow a single birthday collision
	// among 36^5 suffixes; the unique index rejects it at insert time.
	assert.GreaterOrEqual(t, len(seen), workers*perWorker-1)
}

func TestNewOrderNumber_RandomFailure(t *testing.T) {
	_, err := newOrderNumber(time.Now(), iotest.ErrReader(errors.New("no entropy")))
	assert.ErrorContains(t, err, "no entropy")
}
