package inventory

import "lascala/internal/domain"

// AllSizes is the listing filter value that disables size filtering.
const AllSizes = "all"

// FilterListings keeps listings for size, or all of them for AllSizes or "".
func FilterListings(listings []domain.Listing, size string) []domain.Listing {
	if size == "" || size == AllSizes {
		return listings
	}
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Size == size {
			out = append(out, l)
		}
	}
	return out
}

// SizesWithListings returns the distinct listing sizes in first-seen order.
func SizesWithListings(listings []domain.Listing) []string {
	seen := make(map[string]bool, len(listings))
	var out []string
	for _, l := range listings {
		if seen[l.Size] {
			continue
		}
		seen[l.Size] = true
		out = append(out, l.Size)
	}
	return out
}
