package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "lascala/internal/log"
	"lascala/internal/repos"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type AdminHandler struct {
	Listings *services.ListingService
	Catalog  *services.CatalogService
	Prods    *repos.ProductRepo
	Inv      *repos.InventoryRepo
}

// GET /admin/listings
func (h *AdminHandler) ListingsQueue(c *fiber.Ctx) error {
	pending, err := h.Listings.Pending(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.listings.list.fail", err, nil)
		return serverError(c, "Could not load listings")
	}
	return render(c, "admin_listings", fiber.Map{"Listings": pending})
}

// POST /admin/listings/:id/approve
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, "approve", h.Listings.Approve)
}

// POST /admin/listings/:id/reject
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, "reject", h.Listings.Reject)
}

func (h *AdminHandler) review(c *fiber.Ctx, verb string, op func(context.Context, string) error) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid listing id")
	}
	err := op(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Listing is not awaiting review")
	}
	if err != nil {
		applog.Error(c, "admin.listings."+verb+".fail", err, map[string]any{"listing_id": id})
		return serverError(c, "Could not update listing")
	}
	applog.Audit(c, "admin.listings."+verb, map[string]any{"listing_id": id})
	return c.Redirect("/admin/listings")
}

// GET /admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Inv.ListAll(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return serverError(c, "Could not load inventory")
	}
	sources, err := h.Inv.Sources(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.inventory.sources.fail", err, nil)
		return serverError(c, "Could not load inventory")
	}
	return render(c, "admin_inventory", fiber.Map{"Rows": rows, "Sources": sources})
}

// POST /admin/inventory
func (h *AdminHandler) UpdateInventory(c *fiber.Ctx) error {
	sku, okSKU := validate.SKU(c.FormValue("sku"))
	source, okSrc := validate.ID(c.FormValue("source"))
	size, okSize := validate.Size(c.FormValue("size"))
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if !okSKU || !okSrc || !okSize || err != nil || qty < 0 {
		applog.Security(c, "validation.fail", map[string]any{"form": "admin.inventory"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid input")
	}
	ctx := c.UserContext()
	p, err := h.Prods.BySKU(ctx, sku)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("unknown sku")
	}
	if ok, err := h.Prods.HasSize(ctx, p.ID, size); err != nil || !ok {
		return c.Status(fiber.StatusBadRequest).SendString("size not offered for this product")
	}
	if err := h.Inv.Upsert(ctx, p.ID, source, size, qty); err != nil {
		applog.Error(c, "admin.inventory.save.fail", err, map[string]any{"sku": sku, "source": source, "size": size, "qty": qty})
		return c.Status(fiber.StatusBadRequest).SendString("could not save inventory")
	}
	h.Catalog.Invalidate(ctx, p.ID)
	applog.Audit(c, "admin.inventory.save", map[string]any{"sku": sku, "source": source, "size": size, "qty": qty})
	return c.Redirect("/admin/inventory")
}
