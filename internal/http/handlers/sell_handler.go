package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/domain"
	"lascala/internal/log"
	"lascala/internal/pricing"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type SellHandler struct {
	Catalog  *services.CatalogService
	Listings *services.ListingService
}

// GET /sell?q=&sku=
func (h *SellHandler) Form(c *fiber.Ctx) error {
	data := fiber.Map{"Conditions": domain.Conditions}
	if err := h.fillForm(c, data, c.Query("q"), c.Query("sku")); err != nil {
		log.Error(c, "sell.form.fail", err, nil)
		return serverError(c, "Could not load the sell form. Please retry.")
	}
	return render(c, "sell", data)
}

// fillForm adds search results for q and the chosen product's sizes for sku.
func (h *SellHandler) fillForm(c *fiber.Ctx, data fiber.Map, q, sku string) error {
	if q, ok := validate.Q(q); ok {
		results, err := h.Catalog.Search(c.UserContext(), q)
		if err != nil {
			return err
		}
		data["Q"] = q
		data["Results"] = results
	}
	if sku, ok := validate.SKU(sku); ok {
		page, err := h.Catalog.ProductPage(c.UserContext(), sku)
		if errors.Is(err, services.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		data["Product"] = page.Product
		data["Sizes"] = page.View.Order
	}
	return nil
}

// POST /sell
func (h *SellHandler) Submit(c *fiber.Ctx) error {
	u := currentUser(c)
	price, _ := validate.Price(c.FormValue("price"))
	draft := validate.ListingDraft{
		SKU:            c.FormValue("sku"),
		Size:           c.FormValue("size"),
		Condition:      c.FormValue("condition"),
		ConditionNotes: c.FormValue("condition_notes"),
		Price:          price,
	}

	var uploads []services.Upload
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["images"] {
			uploads = append(uploads, services.Upload{
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Open:        func() (io.ReadCloser, error) { return fh.Open() },
			})
		}
	}

	id, err := h.Listings.Submit(c.UserContext(), u, draft, uploads)
	if err != nil {
		msg := ""
		switch {
		case errors.Is(err, services.ErrInvalidListing):
			msg = "Please add 1 to 6 photos (JPEG, PNG or WebP), a condition and a price."
		case errors.Is(err, services.ErrUnknownSize):
			msg = "That size is not offered for this item."
		case errors.Is(err, services.ErrNotFound):
			msg = "We could not find that item in our catalog."
		default:
			log.Error(c, "sell.submit.fail", err, nil)
			return serverError(c, "Could not submit your listing. Please retry.")
		}
		log.Info(c, "sell.submit.rejected", map[string]any{"sku": draft.SKU, "reason": err.Error()})
		data := fiber.Map{"Conditions": domain.Conditions, "Err": msg, "Draft": draft}
		if ferr := h.fillForm(c, data, "", draft.SKU); ferr != nil {
			log.Error(c, "sell.form.fail", ferr, nil)
		}
		c.Status(fiber.StatusBadRequest)
		return render(c, "sell", data)
	}

	log.Audit(c, "sell.listing.submit", map[string]any{"listing_id": id, "sku": draft.SKU, "size": draft.Size})
	return c.Redirect("/account/listings?submitted=" + id)
}

// POST /sell/quote
func (h *SellHandler) Quote(c *fiber.Ctx) error {
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid price"})
	}
	sku := ""
	if s, ok := validate.SKU(c.FormValue("sku")); ok {
		sku = s
	}
	q, err := h.Listings.Quote(c.UserContext(), sku, price)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown product"})
	}
	if err != nil {
		log.Error(c, "sell.quote.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not compute quote"})
	}
	resp := fiber.Map{"price": q.Price, "fee": q.Fee, "payout": q.Payout}
	if r, _ := q.Retail.Float64(); r > 0 {
		if pct, ok := pricing.SavingsPercent(price, r); ok {
			resp["savings_percent"] = pct
		}
	}
	return c.JSON(resp)
}

// GET /account/listings
func (h *SellHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	listings, err := h.Listings.BySeller(c.UserContext(), u.ID)
	if err != nil {
		log.Error(c, "sell.listings.fail", err, nil)
		return serverError(c, "Could not load your listings.")
	}
	return render(c, "my_listings", fiber.Map{"Listings": listings, "Submitted": c.Query("submitted")})
}

// POST /listings/:id/withdraw
func (h *SellHandler) Withdraw(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Listing not found")
	}
	err := h.Listings.Withdraw(c.UserContext(), u, id)
	if errors.Is(err, services.ErrNotFound) {
		log.Security(c, "sell.withdraw.denied", map[string]any{"listing_id": id})
		return notFound(c, "Listing not found")
	}
	if err != nil {
		log.Error(c, "sell.withdraw.fail", err, map[string]any{"listing_id": id})
		return serverError(c, "Could not withdraw the listing.")
	}
	log.Audit(c, "sell.listing.withdraw", map[string]any{"listing_id": id})
	return c.Redirect("/account/listings")
}
