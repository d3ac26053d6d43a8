package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/log"
	"lascala/internal/repos"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	products, err := h.Catalog.Home(c.UserContext())
	if err != nil {
		log.Error(c, "home.load.fail", err, nil)
		return serverError(c, "Could not load the collection. Please retry.")
	}
	return render(c, "home", fiber.Map{"Products": products})
}

// GET /collections?gender=&category=&size=&page=
func (h *CatalogHandler) Collections(c *fiber.Ctx) error {
	gender, ok := validate.Gender(c.Query("gender"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "gender"})
		gender = ""
	}
	var f repos.CollectionFilter
	f.Gender = gender
	if cat := c.Query("category"); cat != "" {
		if id, ok := validate.ID(cat); ok {
			f.CategoryID = id
		}
	}
	if size := c.Query("size"); size != "" {
		if s, ok := validate.Size(size); ok {
			f.Size = s
		}
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	products, more, err := h.Catalog.ListCollection(c.UserContext(), f, page)
	if err != nil {
		log.Error(c, "collections.load.fail", err, nil)
		return serverError(c, "Could not load the collection. Please retry.")
	}
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		log.Error(c, "collections.categories.fail", err, nil)
		return serverError(c, "Could not load the collection. Please retry.")
	}
	return render(c, "collections", fiber.Map{
		"Products":   products,
		"Categories": cats,
		"Filter":     f,
		"Page":       page,
		"NextPage":   page + 1,
		"HasMore":    more,
	})
}

// GET /search?q=
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	raw := c.Query("q")
	if raw == "" {
		return render(c, "search", fiber.Map{"Q": "", "Products": nil})
	}
	q, ok := validate.Q(raw)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "search", fiber.Map{"Q": "", "Err": "Enter a valid keyword (letters and numbers only)"})
	}
	products, err := h.Catalog.Search(c.UserContext(), q)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return serverError(c, "Could not load results. Please retry.")
	}
	return render(c, "search", fiber.Map{"Q": q, "Products": products})
}
