package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/inventory"
	"lascala/internal/log"
	"lascala/internal/services"
	"lascala/internal/telemetry"
	"lascala/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

const gone = "This item is no longer available"

// GET /product/:sku?size=&listings=
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	sku, ok := validate.SKU(c.Params("sku"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "sku"})
		return notFound(c, gone)
	}
	page, err := h.Catalog.ProductPage(c.UserContext(), sku)
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, gone)
	}
	if err != nil {
		log.Error(c, "product.load.fail", err, map[string]any{"sku": sku})
		return serverError(c, "Could not load this item. Please retry.")
	}
	for _, o := range page.View.Sizes() {
		telemetry.SizeAvailability.WithLabelValues(string(o.Category)).Inc()
	}

	size := ""
	if raw := c.Query("size"); raw != "" {
		if s, ok := validate.Size(raw); ok {
			size = s
		}
	}
	action := inventory.SelectAction(page.View, size)

	filter := c.Query("listings", inventory.AllSizes)
	if _, ok := validate.Size(filter); !ok {
		filter = inventory.AllSizes
	}

	fulfillment := ""
	if action.Retail != nil {
		fulfillment = inventory.FulfillmentNote(action.Retail.SourceType)
	}

	return render(c, "product", fiber.Map{
		"P":             page.Product,
		"Images":        page.Images,
		"Sizes":         page.View.Sizes(),
		"Selected":      size,
		"Action":        action,
		"Fulfillment":   fulfillment,
		"Listings":      inventory.FilterListings(page.Listings, filter),
		"ListingSizes":  inventory.SizesWithListings(page.Listings),
		"ListingFilter": filter,
		"ListingCount":  len(page.Listings),
	})
}
