// Package pricing holds the marketplace money math: seller fees, payouts
// and savings against retail.
package pricing

import "github.com/shopspring/decimal"

// DefaultFeeRate is the marketplace commission on pre-owned sales.
var DefaultFeeRate = decimal.RequireFromString("0.20")

// Quote is the seller-facing breakdown of a listing price.
type Quote struct {
	Price  decimal.Decimal `json:"price"`
	Fee    decimal.Decimal `json:"fee"`
	Payout decimal.Decimal `json:"payout"`
	Retail decimal.Decimal `json:"retail"`
}

// NewQuote computes fee and payout for a listing price, rounded to cents.
// The payout is derived from the rounded fee so fee + payout == price.
func NewQuote(price, retail float64, rate decimal.Decimal) Quote {
	p := decimal.NewFromFloat(price).Round(2)
	fee := p.Mul(rate).Round(2)
	return Quote{
		Price:  p,
		Fee:    fee,
		Payout: p.Sub(fee),
		Retail: decimal.NewFromFloat(retail).Round(2),
	}
}

// SavingsPercent is the whole-number discount of price against retail,
// rounding halves up. ok is false when there is no retail price to compare.
func SavingsPercent(price, retail float64) (int, bool) {
	if retail <= 0 {
		return 0, false
	}
	r := decimal.NewFromFloat(retail)
	pct := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(price).Div(r)).Mul(decimal.NewFromInt(100))
	return int(pct.Add(decimal.RequireFromString("0.5")).Floor().IntPart()), true
}

// ParseRate reads a fee rate such as "0.20"; invalid or out-of-range input
// falls back to DefaultFeeRate.
func ParseRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return DefaultFeeRate
	}
	return d
}
