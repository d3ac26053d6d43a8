package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lascala/internal/http/handlers"
)

func TestErrorHandlerHidesInternals(t *testing.T) {
	app := fiber.New(fiber.Config{
		Views:        handlers.NewEngine("../../web/templates", false),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "Bad size")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/err", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	s := body(t, resp)
	assert.Contains(t, s, "Something went wrong")
	assert.NotContains(t, s, "db timeout")
	assert.NotContains(t, s, "secret")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Bad size")
}

func TestMediaTraversalBlocked(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(ta.mediaDir, "ok.txt"), []byte("hello"), 0o644))

	resp := ta.get(t, "/media/ok.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", body(t, resp))

	for _, path := range []string{"/media/%2e%2e/go.mod", "/media/..%2fgo.mod", "/media/a/%2E%2E/%2E%2E/etc/passwd"} {
		resp := ta.get(t, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.get(t, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, body(t, resp))

	ta.get(t, "/product/BC-FJ-001?size=48")
	resp = ta.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	m := body(t, resp)
	assert.Contains(t, m, "lascala_http_requests_total")
	assert.Contains(t, m, "lascala_size_availability_total")
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.get(t, "/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Page not found")
}

func TestSecurityHeaders(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
