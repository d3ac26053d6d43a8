package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lascala/internal/pricing"
)

func TestNewQuote(t *testing.T) {
	q := pricing.NewQuote(1250, 2400, pricing.DefaultFeeRate)
	assert.Equal(t, "1250", q.Price.String())
	assert.Equal(t, "250", q.Fee.String())
	assert.Equal(t, "1000", q.Payout.String())
	assert.Equal(t, "2400", q.Retail.String())
}

func TestNewQuote_RoundsToCents(t *testing.T) {
	q := pricing.NewQuote(99.99, 0, pricing.DefaultFeeRate)
	assert.Equal(t, "20", q.Fee.String())
	assert.Equal(t, "79.99", q.Payout.String())
	assert.True(t, q.Fee.Add(q.Payout).Equal(q.Price))
}

func TestSavingsPercent(t *testing.T) {
	pct, ok := pricing.SavingsPercent(500, 1000)
	assert.True(t, ok)
	assert.Equal(t, 50, pct)

	pct, _ = pricing.SavingsPercent(875, 1000)
	assert.Equal(t, 13, pct)

	_, ok = pricing.SavingsPercent(500, 0)
	assert.False(t, ok)

	pct, _ = pricing.SavingsPercent(1200, 1000)
	assert.Equal(t, -20, pct)
}

func TestParseRate(t *testing.T) {
	assert.True(t, pricing.ParseRate("0.15").Equal(decimal.RequireFromString("0.15")))
	assert.True(t, pricing.ParseRate("abc").Equal(pricing.DefaultFeeRate))
	assert.True(t, pricing.ParseRate("1.5").Equal(pricing.DefaultFeeRate))
	assert.True(t, pricing.ParseRate("-0.1").Equal(pricing.DefaultFeeRate))
}
