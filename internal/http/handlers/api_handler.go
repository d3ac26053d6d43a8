package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/inventory"
	"lascala/internal/log"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type APIHandler struct {
	Catalog *services.CatalogService
}

type retailJSON struct {
	InventoryID string `json:"inventory_id"`
	SourceName  string `json:"source_name"`
	SourceType  string `json:"source_type"`
	Quantity    int    `json:"quantity"`
	Fulfillment string `json:"fulfillment"`
}

type sizeJSON struct {
	Size          string             `json:"size"`
	Category      inventory.Category `json:"category"`
	Retail        *retailJSON        `json:"retail"`
	PreownedCount int                `json:"preowned_count"`
	PreownedFrom  *float64           `json:"preowned_from"`
}

func (h *APIHandler) page(c *fiber.Ctx) (services.ProductPage, error) {
	sku, ok := validate.SKU(c.Params("sku"))
	if !ok {
		return services.ProductPage{}, fiber.NewError(fiber.StatusBadRequest, "invalid sku")
	}
	page, err := h.Catalog.ProductPage(c.UserContext(), sku)
	if errors.Is(err, services.ErrNotFound) {
		return services.ProductPage{}, fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		log.Error(c, "api.product.fail", err, map[string]any{"sku": sku})
		return services.ProductPage{}, fiber.NewError(fiber.StatusInternalServerError, "could not load product")
	}
	return page, nil
}

func apiError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// GET /api/v1/products/:sku/availability
func (h *APIHandler) Availability(c *fiber.Ctx) error {
	page, err := h.page(c)
	if err != nil {
		return apiError(c, err)
	}
	sizes := make([]sizeJSON, 0, len(page.View.Order))
	for _, o := range page.View.Sizes() {
		s := sizeJSON{Size: o.Size, Category: o.Category, PreownedCount: len(o.Preowned)}
		if o.Retail != nil {
			s.Retail = &retailJSON{
				InventoryID: o.Retail.ID,
				SourceName:  o.Retail.SourceName,
				SourceType:  o.Retail.SourceType,
				Quantity:    o.Retail.Quantity,
				Fulfillment: inventory.FulfillmentNote(o.Retail.SourceType),
			}
		}
		if from, ok := o.MinPreownedPrice(); ok {
			s.PreownedFrom = &from
		}
		sizes = append(sizes, s)
	}
	return c.JSON(fiber.Map{"sku": page.Product.SKU, "sizes": sizes})
}

// GET /api/v1/products/:sku/action?size=
func (h *APIHandler) Action(c *fiber.Ctx) error {
	page, err := h.page(c)
	if err != nil {
		return apiError(c, err)
	}
	size := ""
	if raw := c.Query("size"); raw != "" {
		s, ok := validate.Size(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid size"})
		}
		size = s
	}
	return c.JSON(inventory.SelectAction(page.View, size))
}

// GET /api/v1/search?q=
func (h *APIHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return c.JSON(fiber.Map{"results": []any{}})
	}
	products, err := h.Catalog.Search(c.UserContext(), q)
	if err != nil {
		log.Error(c, "api.search.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}
	type hit struct {
		SKU   string `json:"sku"`
		Name  string `json:"name"`
		Brand string `json:"brand"`
		Image string `json:"image"`
	}
	out := make([]hit, 0, len(products))
	for _, p := range products {
		out = append(out, hit{SKU: p.SKU, Name: p.Name, Brand: p.BrandName, Image: p.PrimaryImage})
	}
	return c.JSON(fiber.Map{"results": out})
}
