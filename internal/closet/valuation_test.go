package closet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"lascala/internal/closet"
	"lascala/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func price(v float64) *float64 { return &v }

func TestValue_Empty(t *testing.T) {
	assert.Equal(t, closet.Valuation{}, closet.Value(nil))
	assert.Equal(t, closet.Valuation{}, closet.Value([]domain.ClosetItem{}))
}

func TestValue_SingleLikeNew(t *testing.T) {
	v := closet.Value([]domain.ClosetItem{{
		RetailPrice:   price(1000),
		Condition:     domain.ConditionLikeNew,
		PurchasePrice: price(600),
	}})
	assert.Equal(t, 1000.0, v.RetailValue)
	assert.Equal(t, 750.0, v.EstimatedResale)
	assert.Equal(t, 600.0, v.TotalPurchasePrice)
}

func TestValue_UnknownConditionAndMissingPurchase(t *testing.T) {
	v := closet.Value([]domain.ClosetItem{{
		RetailPrice: price(1240),
		Condition:   "unknown_value",
	}})
	assert.Equal(t, 0.0, v.TotalPurchasePrice)
	assert.Equal(t, 1240*0.50, v.EstimatedResale)
}

func TestValue_MissingRetail(t *testing.T) {
	v := closet.Value([]domain.ClosetItem{{Condition: domain.ConditionNewWithTags, PurchasePrice: price(80)}})
	assert.Equal(t, 0.0, v.RetailValue)
	assert.Equal(t, 0.0, v.EstimatedResale)
	assert.Equal(t, 80.0, v.TotalPurchasePrice)
}

func TestMultiplier(t *testing.T) {
	assert.Equal(t, 0.85, closet.Multiplier(domain.ConditionNewWithTags))
	assert.Equal(t, 0.75, closet.Multiplier(domain.ConditionLikeNew))
	assert.Equal(t, 0.65, closet.Multiplier(domain.ConditionExcellent))
	assert.Equal(t, 0.50, closet.Multiplier(domain.ConditionGood))
	assert.Equal(t, closet.DefaultMultiplier, closet.Multiplier(""))
}

func TestValue_Additive(t *testing.T) {
	a := []domain.ClosetItem{
		{RetailPrice: price(2400), Condition: domain.ConditionExcellent, PurchasePrice: price(1500)},
		{RetailPrice: price(890), Condition: domain.ConditionGood},
	}
	b := []domain.ClosetItem{
		{RetailPrice: price(3100), Condition: domain.ConditionNewWithTags, PurchasePrice: price(2900)},
		{Condition: "mystery", PurchasePrice: price(45.5)},
	}
	whole := closet.Value(append(append([]domain.ClosetItem{}, a...), b...))
	parts := closet.Value(a).Add(closet.Value(b))

	assert.InDelta(t, parts.RetailValue, whole.RetailValue, 1e-9)
	assert.InDelta(t, parts.EstimatedResale, whole.EstimatedResale, 1e-9)
	assert.InDelta(t, parts.TotalPurchasePrice, whole.TotalPurchasePrice, 1e-9)
}

func TestValue_OrderIndependent(t *testing.T) {
	items := []domain.ClosetItem{
		{RetailPrice: price(1200), Condition: domain.ConditionLikeNew, PurchasePrice: price(700)},
		{RetailPrice: price(450), Condition: domain.ConditionExcellent},
		{RetailPrice: price(2890), Condition: domain.ConditionGood, PurchasePrice: price(1000)},
	}
	reversed := []domain.ClosetItem{items[2], items[1], items[0]}
	x, y := closet.Value(items), closet.Value(reversed)
	assert.InDelta(t, x.EstimatedResale, y.EstimatedResale, 1e-9)
	assert.InDelta(t, x.RetailValue, y.RetailValue, 1e-9)
}

func TestMatchOffers(t *testing.T) {
	items := []domain.ClosetItem{
		{ProductID: "p1", Size: "48"},
		{ProductID: "p2", Size: "50"},
	}
	offers := []domain.WTBOffer{
		{ID: "o1", UserID: "buyer", ProductID: "p1", Size: "48", Status: domain.OfferActive},
		{ID: "o2", UserID: "buyer", ProductID: "p1", Size: "50", Status: domain.OfferActive},
		{ID: "o3", UserID: "me", ProductID: "p2", Size: "50", Status: domain.OfferActive},
		{ID: "o4", UserID: "buyer", ProductID: "p2", Size: "50", Status: "filled"},
		{ID: "o5", UserID: "other", ProductID: "p2", Size: "50", Status: domain.OfferActive},
	}
	got := closet.MatchOffers("me", items, offers)
	ids := make([]string, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"o1", "o5"}, ids)
	assert.Empty(t, closet.MatchOffers("me", nil, offers))
}

func TestMatchOffersHonoursConditionMinimum(t *testing.T) {
	items := []domain.ClosetItem{
		{ProductID: "p1", Size: "48", Condition: domain.ConditionGood},
		{ProductID: "p1", Size: "48", Condition: domain.ConditionExcellent},
		{ProductID: "p2", Size: "50", Condition: domain.ConditionGood},
	}
	offers := []domain.WTBOffer{
		{ID: "o1", UserID: "buyer", ProductID: "p1", Size: "48", ConditionMinimum: domain.ConditionExcellent, Status: domain.OfferActive},
		{ID: "o2", UserID: "buyer", ProductID: "p1", Size: "48", ConditionMinimum: domain.ConditionNewWithTags, Status: domain.OfferActive},
		{ID: "o3", UserID: "buyer", ProductID: "p2", Size: "50", ConditionMinimum: domain.ConditionLikeNew, Status: domain.OfferActive},
		{ID: "o4", UserID: "buyer", ProductID: "p2", Size: "50", ConditionMinimum: domain.ConditionGood, Status: domain.OfferActive},
	}
	got := closet.MatchOffers("me", items, offers)
	ids := make([]string, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"o1", "o4"}, ids)
}
