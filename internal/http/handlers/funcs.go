package handlers

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"lascala/internal/domain"
	"lascala/internal/inventory"
	"lascala/internal/pricing"
)

// templateFuncs are registered on the html engine.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":          money,
		"moneyPtr":       moneyPtr,
		"conditionLabel": domain.ConditionLabel,
		"conditions":     func() []domain.ConditionInfo { return domain.Conditions },
		"fulfillment":    inventory.FulfillmentNote,
		"savings": func(price, retail float64) int {
			pct, _ := pricing.SavingsPercent(price, retail)
			return pct
		},
		"categoryLabel": categoryLabel,
	}
}

// money renders whole dollars with thousands separators; cents only when present.
func money(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	whole := d.Truncate(0)
	s := groupThousands(whole.Abs().String())
	if whole.IsNegative() {
		s = "-" + s
	}
	if frac := d.Sub(whole).Abs(); !frac.IsZero() {
		s += "." + strings.TrimPrefix(frac.StringFixed(2), "0.")
	}
	return "$" + s
}

func moneyPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return money(*v)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func categoryLabel(c inventory.Category) string {
	switch c {
	case inventory.RetailAndPreowned:
		return "New & pre-owned"
	case inventory.Retail:
		return "New"
	case inventory.PreownedOnly:
		return "Pre-owned only"
	case inventory.Unavailable:
		return "Sold out"
	}
	return fmt.Sprint(c)
}
