package closet

import "lascala/internal/domain"

// MatchOffers returns the active offers from other users that want a
// product and size the closet holds in at least the offer's minimum
// condition. Offer order is preserved.
func MatchOffers(userID string, items []domain.ClosetItem, offers []domain.WTBOffer) []domain.WTBOffer {
	if len(items) == 0 {
		return nil
	}
	type key struct{ product, size string }
	best := make(map[key]int, len(items))
	for _, it := range items {
		k := key{it.ProductID, it.Size}
		r := domain.ConditionRank(it.Condition)
		if cur, ok := best[k]; !ok || r > cur {
			best[k] = r
		}
	}
	var out []domain.WTBOffer
	for _, o := range offers {
		if o.Status != domain.OfferActive || o.UserID == userID {
			continue
		}
		r, ok := best[key{o.ProductID, o.Size}]
		if ok && r >= domain.ConditionRank(o.ConditionMinimum) {
			out = append(out, o)
		}
	}
	return out
}
