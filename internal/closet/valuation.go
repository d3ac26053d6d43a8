// Package closet values a user's owned pieces and matches them against
// buyers' want-to-buy offers.
package closet

import "lascala/internal/domain"

// DefaultMultiplier applies to unknown or missing conditions.
const DefaultMultiplier = 0.50

var multipliers = map[string]float64{
	domain.ConditionNewWithTags: 0.85,
	domain.ConditionLikeNew:     0.75,
	domain.ConditionExcellent:   0.65,
	domain.ConditionGood:        0.50,
}

// Multiplier is the share of retail a piece in this condition resells for.
func Multiplier(condition string) float64 {
	if m, ok := multipliers[condition]; ok {
		return m
	}
	return DefaultMultiplier
}

// Valuation holds the closet totals in dollars.
type Valuation struct {
	RetailValue        float64 `json:"retail_value"`
	EstimatedResale    float64 `json:"estimated_resale"`
	TotalPurchasePrice float64 `json:"total_purchase_price"`
}

// Add returns the field-wise sum of two valuations.
func (v Valuation) Add(o Valuation) Valuation {
	return Valuation{
		RetailValue:        v.RetailValue + o.RetailValue,
		EstimatedResale:    v.EstimatedResale + o.EstimatedResale,
		TotalPurchasePrice: v.TotalPurchasePrice + o.TotalPurchasePrice,
	}
}

// Value sums retail, estimated resale and purchase totals over items.
// A missing retail or purchase price counts as zero. Summation order can
// move the result by floating-point rounding only.
func Value(items []domain.ClosetItem) Valuation {
	var v Valuation
	for _, it := range items {
		retail := deref(it.RetailPrice)
		v.RetailValue += retail
		v.EstimatedResale += retail * Multiplier(it.Condition)
		v.TotalPurchasePrice += deref(it.PurchasePrice)
	}
	return v
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
