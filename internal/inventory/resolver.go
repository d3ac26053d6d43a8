// Package inventory turns a product's raw stock rows and pre-owned listings
// into the per-size availability view shown on the product page.
package inventory

import "lascala/internal/domain"

// Category describes which purchase paths exist for one size.
type Category string

const (
	RetailAndPreowned Category = "retail_and_preowned"
	Retail            Category = "retail"
	PreownedOnly      Category = "preowned_only"
	Unavailable       Category = "unavailable"
)

// SizeOffers is the resolved state of one declared size: at most one retail
// slot plus the active pre-owned listings for that size.
type SizeOffers struct {
	Size     string               `json:"size"`
	Retail   *domain.InventoryRow `json:"retail"`
	Preowned []domain.Listing     `json:"preowned"`
	Category Category             `json:"category"`
}

// View maps every declared size to its offers. Order keeps the declared
// size order for rendering.
type View struct {
	Order  []string              `json:"order"`
	Offers map[string]SizeOffers `json:"offers"`
}

// Get returns the offers for size; ok is false for undeclared sizes.
func (v View) Get(size string) (SizeOffers, bool) {
	o, ok := v.Offers[size]
	return o, ok
}

// Sizes returns the offers in declared order.
func (v View) Sizes() []SizeOffers {
	out := make([]SizeOffers, 0, len(v.Order))
	for _, s := range v.Order {
		out = append(out, v.Offers[s])
	}
	return out
}

// Resolve builds the per-size view for one product.
//
// Rows and listings that reference a size the product does not declare are
// dropped. Rows with no stock and listings that are not active are ignored.
// Among eligible rows for a size the lowest source priority wins; ties go to
// the lower source id, then the lower row id, so input order never matters.
// Listings keep their input order.
func Resolve(sizes []domain.Size, rows []domain.InventoryRow, listings []domain.Listing) View {
	v := View{
		Order:  make([]string, 0, len(sizes)),
		Offers: make(map[string]SizeOffers, len(sizes)),
	}
	for _, s := range sizes {
		if _, dup := v.Offers[s.Label]; dup {
			continue
		}
		v.Order = append(v.Order, s.Label)
		v.Offers[s.Label] = SizeOffers{Size: s.Label, Preowned: []domain.Listing{}}
	}

	for _, r := range rows {
		if r.Quantity <= 0 {
			continue
		}
		o, ok := v.Offers[r.Size]
		if !ok {
			continue
		}
		if o.Retail == nil || preferred(r, *o.Retail) {
			row := r
			o.Retail = &row
			v.Offers[r.Size] = o
		}
	}

	for _, l := range listings {
		if l.Status != domain.ListingActive {
			continue
		}
		o, ok := v.Offers[l.Size]
		if !ok {
			continue
		}
		o.Preowned = append(o.Preowned, l)
		v.Offers[l.Size] = o
	}

	for s, o := range v.Offers {
		o.Category = Classify(o)
		v.Offers[s] = o
	}
	return v
}

// preferred reports whether a should take the retail slot over b.
func preferred(a, b domain.InventoryRow) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.SourceID != b.SourceID {
		return a.SourceID < b.SourceID
	}
	return a.ID < b.ID
}

// Classify derives the availability category of a size.
func Classify(o SizeOffers) Category {
	hasRetail := o.Retail != nil
	hasPreowned := o.HasPreowned()
	switch {
	case hasRetail && hasPreowned:
		return RetailAndPreowned
	case hasRetail:
		return Retail
	case hasPreowned:
		return PreownedOnly
	default:
		return Unavailable
	}
}

// MinPreownedPrice returns the cheapest pre-owned price for the size.
func (o SizeOffers) MinPreownedPrice() (float64, bool) {
	if len(o.Preowned) == 0 {
		return 0, false
	}
	lowest := o.Preowned[0].Price
	for _, l := range o.Preowned[1:] {
		if l.Price < lowest {
			lowest = l.Price
		}
	}
	return lowest, true
}

// HasPreowned is true when at least one active listing exists for the size.
func (o SizeOffers) HasPreowned() bool { return len(o.Preowned) > 0 }
