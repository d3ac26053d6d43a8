package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "lascala/internal/log"
	"lascala/internal/services"
)

// LoadUser attaches the signed-in user, if any, to Locals("user").
func LoadUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sidCookie); sid != "" {
			u, err := auth.CurrentUser(c.UserContext(), sid)
			if err != nil {
				applog.Error(c, "session.lookup.fail", err, nil)
			} else if u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

// RequireUser redirects anonymous visitors to sign in.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return c.Redirect("/signin?next=" + url.QueryEscape(c.OriginalURL()))
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return c.Redirect("/signin")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		return c.Next()
	}
}

// safeNext keeps post-signin redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
