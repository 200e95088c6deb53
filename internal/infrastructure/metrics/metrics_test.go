package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega/internal/application/inventory"
	"github.com/jhoicas/bodega/internal/infrastructure/metrics"
)

func TestStockChanged_CuentaMovimientos(t *testing.T) {
	m := metrics.New("bodega")
	ctx := context.Background()

	m.StockChanged(ctx, inventory.StockChange{Kind: inventory.ChangeArrival, Delta: 10, NewQuantity: 10, MinOrderLevel: 5})
	m.StockChanged(ctx, inventory.StockChange{Kind: inventory.ChangeCorrection, Delta: -7, NewQuantity: 3, MinOrderLevel: 5})

	body := `
# HELP bodega_stock_changes_total Llegadas y correcciones registradas.
# TYPE bodega_stock_changes_total counter
bodega_stock_changes_total{kind="ARRIVAL"} 1
bodega_stock_changes_total{kind="CORRECTION"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(body), "bodega_stock_changes_total"))
	n, err := testutil.GatherAndCount(m.Registry(), "bodega_stock_below_min_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMiddleware_ExponeMetricasHTTP(t *testing.T) {
	m := metrics.New("bodega")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `bodega_http_requests_total{method="GET",route="/api/products/:id",status="204"} 1`)
}
