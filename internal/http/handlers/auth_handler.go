package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lascala/internal/log"
	"lascala/internal/services"
	"lascala/internal/validate"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) SigninForm(c *fiber.Ctx) error {
	return render(c, "signin", fiber.Map{"Err": "", "Next": safeNext(c.Query("next"))})
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	sid := ensureSID(c, h.CookieSecure)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	next := safeNext(c.FormValue("next"))
	fail := func(reason string) error {
		log.Security(c, "auth.signin.fail", map[string]any{"email": email, "reason": reason})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "signin", fiber.Map{"Err": "Invalid email or password", "Next": next})
	}

	if _, ok := validate.Email(email); !ok {
		return fail("bad_format")
	}
	if !validate.Password(pass) {
		return fail("bad_password_format")
	}
	if _, err := h.Auth.Login(c.UserContext(), sid, email, pass); err != nil {
		if !errors.Is(err, services.ErrBadCreds) {
			log.Error(c, "auth.signin.error", err, nil)
		}
		return fail("bad_credentials")
	}

	log.Audit(c, "auth.signin.success", map[string]any{"email": email})
	return c.Redirect(next)
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	sid := ensureSID(c, h.CookieSecure)
	in := validate.SignupInput{
		Email:       c.FormValue("email"),
		DisplayName: c.FormValue("display_name"),
		Password:    c.FormValue("password"),
		Confirm:     c.FormValue("password_confirm"),
	}
	u, err := h.Auth.Signup(c.UserContext(), sid, in)
	if err != nil {
		msg := "Please check the highlighted fields."
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			msg = "An account with that email already exists."
		case errors.Is(err, services.ErrInvalidInput):
			if in.Password != in.Confirm {
				msg = "Passwords do not match."
			} else if !validate.Password(in.Password) {
				msg = "Password must be at least 6 characters."
			}
		default:
			log.Error(c, "auth.signup.error", err, nil)
			msg = "Could not create your account. Please try again."
		}
		log.Security(c, "auth.signup.fail", map[string]any{"email": in.Email})
		c.Status(fiber.StatusBadRequest)
		return render(c, "signup", fiber.Map{"Err": msg, "Email": in.Email, "DisplayName": in.DisplayName})
	}
	log.Audit(c, "auth.signup.success", map[string]any{"user_id": u.ID})
	return c.Redirect("/account/closet")
}

func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	if sid := c.Cookies(sidCookie); sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			log.Error(c, "auth.signout.error", err, nil)
		}
	}
	expireSID(c, h.CookieSecure)
	log.Audit(c, "auth.signout", nil)
	return c.Redirect("/")
}
