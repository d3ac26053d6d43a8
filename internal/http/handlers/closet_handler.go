package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/domain"
	"lascala/internal/log"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type ClosetHandler struct {
	Closet  *services.ClosetService
	Catalog *services.CatalogService
}

// GET /account/closet
func (h *ClosetHandler) View(c *fiber.Ctx) error {
	return h.page(c, fiber.Map{})
}

func (h *ClosetHandler) page(c *fiber.Ctx, data fiber.Map) error {
	sum, err := h.Closet.Summary(c.UserContext(), currentUser(c))
	if err != nil {
		log.Error(c, "closet.load.fail", err, nil)
		return serverError(c, "Could not load your closet.")
	}
	data["Closet"] = sum
	data["Conditions"] = domain.Conditions
	if q, ok := validate.Q(c.Query("q")); ok {
		results, err := h.Catalog.Search(c.UserContext(), q)
		if err == nil {
			data["Q"] = q
			data["Results"] = results
		}
	}
	return render(c, "closet", data)
}

// POST /account/closet
func (h *ClosetHandler) Add(c *fiber.Ctx) error {
	purchase, ok := validate.OptionalPrice(c.FormValue("purchase_price"))
	if !ok {
		c.Status(fiber.StatusBadRequest)
		return h.page(c, fiber.Map{"Err": "Enter a valid purchase price or leave it blank."})
	}
	in := validate.ClosetInput{
		SKU:           c.FormValue("sku"),
		Size:          c.FormValue("size"),
		Condition:     c.FormValue("condition"),
		PurchasePrice: purchase,
		Notes:         c.FormValue("notes"),
		IsPublic:      c.FormValue("is_public") != "",
		OpenToOffers:  c.FormValue("open_to_offers") != "",
	}
	id, err := h.Closet.Add(c.UserContext(), currentUser(c), in)
	if err != nil {
		msg := ""
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			msg = "Choose an item, a size and a condition."
		case errors.Is(err, services.ErrUnknownSize):
			msg = "That size is not offered for this item."
		case errors.Is(err, services.ErrNotFound):
			msg = "We could not find that item in our catalog."
		default:
			log.Error(c, "closet.item.add.fail", err, nil)
			return serverError(c, "Could not add the item.")
		}
		c.Status(fiber.StatusBadRequest)
		return h.page(c, fiber.Map{"Err": msg})
	}
	log.Audit(c, "closet.item.add", map[string]any{"item_id": id, "sku": in.SKU})
	return c.Redirect("/account/closet")
}

// POST /account/closet/:id/public
func (h *ClosetHandler) TogglePublic(c *fiber.Ctx) error {
	return h.mutate(c, "closet.item.public", h.Closet.TogglePublic)
}

// POST /account/closet/:id/offers
func (h *ClosetHandler) ToggleOffers(c *fiber.Ctx) error {
	return h.mutate(c, "closet.item.offers", h.Closet.ToggleOffers)
}

// POST /account/closet/:id/delete
func (h *ClosetHandler) Remove(c *fiber.Ctx) error {
	return h.mutate(c, "closet.item.remove", h.Closet.Remove)
}

func (h *ClosetHandler) mutate(c *fiber.Ctx, action string, op func(context.Context, *domain.User, string) error) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Item not found")
	}
	err := op(c.UserContext(), currentUser(c), id)
	if errors.Is(err, services.ErrNotFound) {
		log.Security(c, action+".denied", map[string]any{"item_id": id})
		return notFound(c, "Item not found")
	}
	if err != nil {
		log.Error(c, action+".fail", err, map[string]any{"item_id": id})
		return serverError(c, "Could not update your closet.")
	}
	log.Audit(c, action, map[string]any{"item_id": id})
	return c.Redirect("/account/closet")
}
