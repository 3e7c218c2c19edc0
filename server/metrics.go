package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes a Server's Stats as Prometheus gauges/counters,
// grounded on the atomic-counter shape of shockwave's own Stats struct
// but rendered through client_golang instead of shockwave's ad hoc
// Stats() accessor, since nothing in that teacher module wires a
// /metrics endpoint of its own.
type Metrics struct {
	registry *prometheus.Registry

	totalConnections  prometheus.Counter
	activeConnections prometheus.Gauge
	totalRequests     prometheus.Counter
	connectionErrors  prometheus.Counter
	sessionErrors     prometheus.Counter
}

// NewMetrics registers a fresh set of collectors in their own registry,
// so an embedding application can expose them under whatever path it
// likes without colliding with prometheus.DefaultRegisterer.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		totalConnections: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "volt_connections_total",
			Help: "Total TCP connections accepted.",
		}),
		activeConnections: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "volt_connections_active",
			Help: "Currently open connections.",
		}),
		totalRequests: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "volt_requests_total",
			Help: "Total requests served.",
		}),
		connectionErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "volt_connection_errors_total",
			Help: "Accept-loop errors.",
		}),
		sessionErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "volt_session_errors_total",
			Help: "Sessions that ended on a parse or write error.",
		}),
	}
	return m
}

// Observe copies s's ActiveConnections into m's active-connections gauge.
// It does not touch the counters; those advance only through the Inc*
// methods below.
func (m *Metrics) Observe(s Stats) {
	m.activeConnections.Set(float64(s.ActiveConnections.Load()))
}

// Handler returns an http.Handler serving this Metrics' registry in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncConnections, IncRequests, IncConnectionErrors, and IncSessionErrors
// let Server bump the Prometheus counters alongside its own atomic Stats
// without duplicating bookkeeping in two places.
func (m *Metrics) IncConnections()     { m.totalConnections.Inc() }
func (m *Metrics) IncRequests()        { m.totalRequests.Inc() }
func (m *Metrics) IncConnectionErrors() { m.connectionErrors.Inc() }
func (m *Metrics) IncSessionErrors()    { m.sessionErrors.Inc() }
