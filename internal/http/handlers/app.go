package handlers

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lascala/internal/cache"
	"lascala/internal/config"
	"lascala/internal/events"
	applog "lascala/internal/log"
	"lascala/internal/storage"
	"lascala/internal/telemetry"
)

type Options struct {
	DB     *sqlx.DB
	Config config.Config
	Cache  cache.Cache
	Events events.Publisher
	Store  storage.Storage
	// AccessLog enables the fiber request logger.
	AccessLog bool
}

// NewApp assembles the storefront: templates, middleware and routes.
func NewApp(opts Options) (*fiber.App, error) {
	cfg := opts.Config
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	if opts.Events == nil {
		opts.Events = events.Nop{}
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	mediaDir := cfg.MediaDir
	if abs, err := filepath.Abs(mediaDir); err == nil {
		mediaDir = abs
	}
	if opts.Store == nil {
		s, err := storage.NewLocalStorage(mediaDir, "/media")
		if err != nil {
			return nil, err
		}
		opts.Store = s
	}

	app := fiber.New(fiber.Config{
		Views:        NewEngine(cfg.TemplatesDir, cfg.Env == "dev"),
		BodyLimit:    32 << 20, // six photos
		ErrorHandler: ErrorHandler,
	})

	deps := NewDeps(opts.DB, cfg, opts.Cache, opts.Events, opts.Store)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(telemetry.Middleware())
	app.Use(LoadUser(deps.Auth))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/") || p == "/healthz" || p == "/metrics"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", filepath.Join(filepath.Dir(cfg.TemplatesDir), "static"))
	app.Get("/media/*", mediaGuard(mediaDir))

	// ---------- Pages ----------
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/collections", deps.CatalogHandler.Collections)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.CatalogHandler.Search)
	app.Get("/product", func(c *fiber.Ctx) error { return notFound(c, gone) })
	app.Get("/product/:sku", deps.ProductHandler.Detail)

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/remove", deps.CartHandler.Remove)

	// ---------- Auth ----------
	app.Get("/signin", deps.AuthHandler.SigninForm)
	app.Post("/signin", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.signin.hit", nil)
			c.Status(fiber.StatusTooManyRequests)
			return render(c, "signin", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Signin)
	app.Get("/signup", deps.AuthHandler.SignupForm)
	app.Post("/signup", limiter.New(limiter.Config{Max: 10, Expiration: 10 * time.Minute}), deps.AuthHandler.Signup)
	app.Post("/signout", deps.AuthHandler.Signout)

	// ---------- Members ----------
	member := RequireUser()
	app.Get("/sell", member, deps.SellHandler.Form)
	app.Post("/sell", member, deps.SellHandler.Submit)
	app.Post("/sell/quote", member, deps.SellHandler.Quote)
	app.Post("/listings/:id/withdraw", member, deps.SellHandler.Withdraw)

	account := app.Group("/account", member)
	account.Get("/listings", deps.SellHandler.Mine)
	account.Get("/closet", deps.ClosetHandler.View)
	account.Post("/closet", deps.ClosetHandler.Add)
	account.Post("/closet/:id/public", deps.ClosetHandler.TogglePublic)
	account.Post("/closet/:id/offers", deps.ClosetHandler.ToggleOffers)
	account.Post("/closet/:id/delete", deps.ClosetHandler.Remove)
	account.Get("/offers", deps.WTBHandler.List)

	app.Post("/offers", member, deps.WTBHandler.Place)
	app.Post("/offers/:id/cancel", member, deps.WTBHandler.Cancel)

	// ---------- Admin ----------
	admin := app.Group("/admin", RequireAdmin())
	admin.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/admin/listings") })
	admin.Get("/listings", deps.AdminHandler.ListingsQueue)
	admin.Post("/listings/:id/approve", deps.AdminHandler.Approve)
	admin.Post("/listings/:id/reject", deps.AdminHandler.Reject)
	admin.Get("/inventory", deps.AdminHandler.Inventory)
	admin.Post("/inventory", deps.AdminHandler.UpdateInventory)

	// ---------- API ----------
	api := app.Group("/api/v1")
	apiLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|api"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.api.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/products/:sku/availability", apiLimiter, deps.APIHandler.Availability)
	api.Get("/products/:sku/action", apiLimiter, deps.APIHandler.Action)
	api.Get("/search", apiLimiter, deps.APIHandler.Search)

	// ---------- Health, metrics & 404 ----------
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := opts.DB.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, "Page not found")
	})

	applog.L().Info("static.media", zap.String("dir", mediaDir))
	return app, nil
}

// NewEngine loads the page templates with the storefront's template funcs.
func NewEngine(dir string, reload bool) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFuncMap(templateFuncs())
	engine.Reload(reload)
	return engine
}

// ErrorHandler renders client errors with their message and hides the
// details of everything else behind a generic page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).Render("notfound", fiber.Map{"Message": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	telemetry.Capture(err, map[string]string{"path": c.Path(), "method": c.Method()})
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

// mediaGuard serves uploaded files while refusing traversal attempts.
func mediaGuard(mediaDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	}
}
