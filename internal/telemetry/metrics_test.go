package telemetry_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lascala/internal/telemetry"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(telemetry.Middleware())
	app.Get("/product/:sku", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/product/ABC", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	n, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "lascala_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCounters(t *testing.T) {
	telemetry.ListingReviews.WithLabelValues("approved").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(telemetry.ListingReviews.WithLabelValues("approved")))
}

func TestCapture_DisabledIsNoop(t *testing.T) {
	flush, err := telemetry.InitSentry("", "test", "")
	require.NoError(t, err)
	defer flush()
	telemetry.Capture(assert.AnError, map[string]string{"route": "/"})
}
