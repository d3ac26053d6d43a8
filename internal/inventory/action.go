package inventory

import "lascala/internal/domain"

type ActionKind string

const (
	ActionSelectSize   ActionKind = "select_size"
	ActionAddToCart    ActionKind = "add_to_cart"
	ActionViewPreowned ActionKind = "view_preowned"
	ActionNone         ActionKind = "none"
)

// Action is the purchase call-to-action for the selected size.
type Action struct {
	Kind          ActionKind           `json:"kind"`
	Size          string               `json:"size,omitempty"`
	Category      Category             `json:"category,omitempty"`
	Retail        *domain.InventoryRow `json:"retail,omitempty"`
	UpsellFrom    *float64             `json:"upsell_from,omitempty"`
	PreownedCount int                  `json:"preowned_count"`
	Disabled      bool                 `json:"disabled"`
}

// SelectAction maps the selected size to its call-to-action. It holds no
// state: every selection is evaluated from the view alone.
func SelectAction(v View, size string) Action {
	if size == "" {
		return Action{Kind: ActionSelectSize, Disabled: true}
	}
	o, ok := v.Get(size)
	if !ok {
		return Action{Kind: ActionNone, Size: size, Category: Unavailable, Disabled: true}
	}
	a := Action{Size: size, Category: o.Category, PreownedCount: len(o.Preowned)}
	switch o.Category {
	case Retail:
		a.Kind = ActionAddToCart
		a.Retail = o.Retail
	case RetailAndPreowned:
		a.Kind = ActionAddToCart
		a.Retail = o.Retail
		if from, ok := o.MinPreownedPrice(); ok {
			a.UpsellFrom = &from
		}
	case PreownedOnly:
		a.Kind = ActionViewPreowned
	default:
		a.Kind = ActionNone
		a.Disabled = true
	}
	return a
}

// FulfillmentNote is the shipping line shown under the add-to-cart button.
func FulfillmentNote(sourceType string) string {
	switch sourceType {
	case domain.SourceOwned:
		return "Ships from La Scala · Free shipping over $500 · Free returns"
	case domain.SourceDropship:
		return "Fulfilled by authorized partner · 3-5 day shipping · Free returns"
	default:
		return "You will be redirected to complete your purchase"
	}
}
