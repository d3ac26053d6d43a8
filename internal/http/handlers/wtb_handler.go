package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/log"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type WTBHandler struct {
	WTB *services.WTBService
}

// GET /account/offers
func (h *WTBHandler) List(c *fiber.Ctx) error {
	offers, err := h.WTB.Mine(c.UserContext(), currentUser(c))
	if err != nil {
		log.Error(c, "wtb.list.fail", err, nil)
		return serverError(c, "Could not load your offers.")
	}
	return render(c, "offers", fiber.Map{"Offers": offers, "Err": c.Query("err")})
}

// POST /offers
func (h *WTBHandler) Place(c *fiber.Ctx) error {
	maxPrice, _ := validate.Price(c.FormValue("max_price"))
	in := validate.OfferInput{
		SKU:              c.FormValue("sku"),
		Size:             c.FormValue("size"),
		ConditionMinimum: c.FormValue("condition_minimum"),
		MaxPrice:         maxPrice,
	}
	id, err := h.WTB.Place(c.UserContext(), currentUser(c), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) || errors.Is(err, services.ErrUnknownSize) || errors.Is(err, services.ErrNotFound) {
			log.Info(c, "wtb.place.rejected", map[string]any{"sku": in.SKU, "reason": err.Error()})
			return c.Redirect("/account/offers?err=invalid")
		}
		log.Error(c, "wtb.place.fail", err, nil)
		return serverError(c, "Could not place your offer.")
	}
	log.Audit(c, "wtb.place", map[string]any{"offer_id": id, "sku": in.SKU, "size": in.Size})
	return c.Redirect("/account/offers")
}

// POST /offers/:id/cancel
func (h *WTBHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Offer not found")
	}
	err := h.WTB.Cancel(c.UserContext(), currentUser(c), id)
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c, "Offer not found")
	}
	if err != nil {
		log.Error(c, "wtb.cancel.fail", err, nil)
		return serverError(c, "Could not cancel your offer.")
	}
	log.Audit(c, "wtb.cancel", map[string]any{"offer_id": id})
	return c.Redirect("/account/offers")
}
