// Package metrics expone contadores Prometheus del inventario y del servidor HTTP.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bodega/internal/application/inventory"
)

var _ inventory.StockEvents = (*Metrics)(nil)

// Metrics registro propio con los colectores de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	stockChanges  *prometheus.CounterVec
	unitsMoved    *prometheus.CounterVec
	belowMin      prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// New crea el registro con los colectores de proceso y de Go.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		stockChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_changes_total",
			Help:      "Llegadas y correcciones registradas.",
		}, []string{"kind"}),
		unitsMoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_total",
			Help:      "Unidades sumadas o restadas por tipo de movimiento.",
		}, []string{"kind", "direction"}),
		belowMin: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_below_min_total",
			Help:      "Cambios de stock que dejaron un producto por debajo de su nivel mínimo.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.stockChanges, m.unitsMoved, m.belowMin, m.httpRequests, m.httpDurations,
	)
	return m
}

// Registry registro subyacente.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler handler net/http de /metrics (montar con adaptor.HTTPHandler).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// StockChanged implementa inventory.StockEvents.
func (m *Metrics) StockChanged(_ context.Context, change inventory.StockChange) {
	m.stockChanges.WithLabelValues(change.Kind).Inc()
	if change.Delta >= 0 {
		m.unitsMoved.WithLabelValues(change.Kind, "in").Add(float64(change.Delta))
	} else {
		m.unitsMoved.WithLabelValues(change.Kind, "out").Add(float64(-change.Delta))
	}
	if change.CrossedBelowMin() {
		m.belowMin.Inc()
	}
}

// Middleware mide cada petición por ruta registrada (no por path crudo).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDurations.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
