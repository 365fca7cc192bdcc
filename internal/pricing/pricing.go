package pricing

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

var (
	FlatShipping = decimal.RequireFromString("9.99")
	TaxRate      = decimal.RequireFromString("0.08")
)

type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals applies the flat shipping fee and 8% tax. Tax and total are
// rounded to cents.
func ComputeTotals(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Shipping: FlatShipping,
		Tax:      tax,
		Total:    subtotal.Add(FlatShipping).Add(tax).Round(2),
	}
}

type Line struct {
	Price    decimal.Decimal
	Quantity int
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

const (
	orderSuffixLen = 5
	base36         = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewOrderNumber formats ORD-<unix millis>-<5 random base36 chars>.
func NewOrderNumber(now time.Time) (string, error) {
	return newOrderNumber(now, rand.Reader)
}

func newOrderNumber(now time.Time, src io.Reader) (string, error) {
	suffix := make([]byte, orderSuffixLen)
	max := big.NewInt(int64(len(base36)))
	for i := range suffix {
		n, err := rand.Int(src, max)
		if err != nil {
			return "", fmt.Errorf("order number: %w", err)
		}
		suffix[i] = base36[n.Int64()]
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix), nil
}
