package domain

type Brand struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Product is a catalog entry joined with its brand and category names.
// RetailPrice and CurrentPrice are nullable in storage.
type Product struct {
	ID               string   `db:"id" json:"id"`
	SKU              string   `db:"sku" json:"sku"`
	ManufacturerSKU  string   `db:"manufacturer_sku" json:"manufacturer_sku"`
	Name             string   `db:"name" json:"name"`
	BrandID          string   `db:"brand_id" json:"brand_id"`
	BrandName        string   `db:"brand_name" json:"brand_name"`
	CategoryID       string   `db:"category_id" json:"category_id"`
	CategoryName     string   `db:"category_name" json:"category_name"`
	Gender           string   `db:"gender" json:"gender"` // M | W | U
	Color            string   `db:"color" json:"color"`
	Description      string   `db:"description" json:"description"`
	Materials        string   `db:"materials" json:"materials"`
	OriginCountry    string   `db:"origin_country" json:"origin_country"`
	CareInstructions string   `db:"care_instructions" json:"care_instructions"`
	RetailPrice      *float64 `db:"retail_price" json:"retail_price"`
	CurrentPrice     *float64 `db:"current_price" json:"current_price"`
	PrimaryImage     string   `db:"primary_image" json:"primary_image"`
	CreatedAt        string   `db:"created_at" json:"created_at"`
}

// Retail returns the retail price, or zero when none is recorded.
func (p Product) Retail() float64 {
	if p.RetailPrice == nil {
		return 0
	}
	return *p.RetailPrice
}

// EffectivePrice is the sale price when one is set, else the retail price.
func (p Product) EffectivePrice() float64 {
	if p.CurrentPrice != nil && *p.CurrentPrice > 0 {
		return *p.CurrentPrice
	}
	return p.Retail()
}

// OnSale reports whether a sale price below retail is set.
func (p Product) OnSale() bool {
	return p.CurrentPrice != nil && *p.CurrentPrice > 0 && *p.CurrentPrice < p.Retail()
}

// Origin defaults to Italy when the product does not record one.
func (p Product) Origin() string {
	if p.OriginCountry == "" {
		return "Italy"
	}
	return p.OriginCountry
}

func (p Product) Care() string {
	if p.CareInstructions == "" {
		return "Professional dry clean recommended."
	}
	return p.CareInstructions
}

type Image struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	URL       string `db:"url" json:"url"`
	AltText   string `db:"alt_text" json:"alt_text"`
	Position  int    `db:"position" json:"position"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
}

// Size is a size label declared by exactly one product.
type Size struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	Label     string `db:"size" json:"size"`
}

const (
	SourceOwned     = "owned"
	SourceDropship  = "dropship"
	SourceAffiliate = "affiliate"
)

type InventorySource struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	SourceType string `db:"source_type" json:"source_type"`
	Priority   int    `db:"priority" json:"priority"`
}

// InventoryRow is one stock line joined with its fulfillment source.
// Lower Priority is preferred.
type InventoryRow struct {
	ID         string `db:"id" json:"id"`
	ProductID  string `db:"product_id" json:"product_id"`
	Size       string `db:"size" json:"size"`
	Quantity   int    `db:"quantity" json:"quantity"`
	SourceID   string `db:"source_id" json:"source_id"`
	SourceName string `db:"source_name" json:"source_name"`
	SourceType string `db:"source_type" json:"source_type"`
	Priority   int    `db:"priority" json:"priority"`
}

const (
	ListingPendingReview = "pending_review"
	ListingActive        = "active"
	ListingSold          = "sold"
	ListingRejected      = "rejected"
	ListingWithdrawn     = "withdrawn"

	AuthPending       = "pending"
	AuthAuthenticated = "authenticated"
	AuthFailed        = "failed"
)

// Listing is a pre-owned offer for one size of a product.
type Listing struct {
	ID                   string  `db:"id" json:"id"`
	ProductID            string  `db:"product_id" json:"product_id"`
	SellerID             string  `db:"seller_id" json:"seller_id"`
	SellerName           string  `db:"seller_name" json:"seller_name"`
	Size                 string  `db:"size" json:"size"`
	Condition            string  `db:"condition" json:"condition"`
	ConditionNotes       string  `db:"condition_notes" json:"condition_notes"`
	Price                float64 `db:"price" json:"price"`
	Status               string  `db:"status" json:"status"`
	AuthenticationStatus string  `db:"authentication_status" json:"authentication_status"`
	PrimaryImage         string  `db:"primary_image" json:"primary_image"`
	CreatedAt            string  `db:"created_at" json:"created_at"`
}

// ClosetItem is a piece a user owns, joined with the product fields the
// closet page and valuation need.
type ClosetItem struct {
	ID            string   `db:"id"`
	UserID        string   `db:"user_id"`
	ProductID     string   `db:"product_id"`
	ProductSKU    string   `db:"sku"`
	ProductName   string   `db:"product_name"`
	BrandName     string   `db:"brand_name"`
	PrimaryImage  string   `db:"primary_image"`
	RetailPrice   *float64 `db:"retail_price"`
	Size          string   `db:"size"`
	Condition     string   `db:"condition"`
	PurchasePrice *float64 `db:"purchase_price"`
	Notes         string   `db:"notes"`
	IsPublic      bool     `db:"is_public"`
	OpenToOffers  bool     `db:"open_to_offers"`
	CreatedAt     string   `db:"created_at"`
}

const OfferActive = "active"

// WTBOffer is a buyer's standing want-to-buy offer for a product size.
type WTBOffer struct {
	ID               string  `db:"id"`
	UserID           string  `db:"user_id"`
	BuyerName        string  `db:"buyer_name"`
	ProductID        string  `db:"product_id"`
	ProductSKU       string  `db:"sku"`
	ProductName      string  `db:"product_name"`
	BrandName        string  `db:"brand_name"`
	Size             string  `db:"size"`
	ConditionMinimum string  `db:"condition_minimum"`
	MaxPrice         float64 `db:"max_price"`
	Status           string  `db:"status"`
	CreatedAt        string  `db:"created_at"`
}
