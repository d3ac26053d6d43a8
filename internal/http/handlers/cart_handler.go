package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/log"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type CartHandler struct {
	Cart         *services.CartService
	CookieSecure bool
}

// POST /cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c, h.CookieSecure)
	invID, ok := validate.ID(c.FormValue("inventoryId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "inventoryId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing inventoryId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	err := h.Cart.Add(c.UserContext(), sid, invID, qty)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return notFound(c, gone)
	case errors.Is(err, services.ErrOutOfStock):
		c.Status(fiber.StatusConflict)
		return render(c, "notfound", fiber.Map{"Message": "That size just sold out."})
	case err != nil:
		log.Error(c, "cart.add.fail", err, nil)
		return serverError(c, "Could not update your bag.")
	}
	log.Info(c, "cart.add", map[string]any{"inventory_id": invID, "qty": qty})
	return c.Redirect("/cart")
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c, h.CookieSecure)
	cv, err := h.Cart.View(c.UserContext(), sid)
	if err != nil {
		log.Error(c, "cart.view.fail", err, nil)
		return serverError(c, "Could not load your bag.")
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c, h.CookieSecure)
	invID, ok := validate.ID(c.FormValue("inventoryId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing inventoryId")
	}
	if err := h.Cart.Remove(c.UserContext(), sid, invID); err != nil {
		log.Error(c, "cart.remove.fail", err, nil)
		return serverError(c, "Could not update your bag.")
	}
	return c.Redirect("/cart")
}
