// Package metrics defines the Prometheus collectors of the accounts service. Every
// collector lives on the registry owned by Metrics, so tests can build isolated
// instances.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accounts"

// Metrics implements service.AccountMetrics and holds the HTTP collectors.
type Metrics struct {
	registry *prometheus.Registry

	// registrationsTotal counts sign-ups by outcome ("success", "conflict", "invalid", "error").
	registrationsTotal *prometheus.CounterVec

	// authenticationsTotal counts sign-in attempts by outcome.
	authenticationsTotal *prometheus.CounterVec

	slugCollisionsTotal prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var _ service.AccountMetrics = (*Metrics)(nil)

// New builds the collectors on a fresh registry. The Go runtime and process
// collectors are included so /metrics carries the usual baseline.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		registrationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Total number of registration attempts, by outcome.",
			},
			[]string{"outcome"},
		),
		authenticationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authentications_total",
				Help:      "Total number of authentication attempts, by outcome.",
			},
			[]string{"outcome"},
		),
		slugCollisionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slug_collisions_total",
				Help:      "Total number of slug candidates rejected because they were taken.",
			},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests, by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency, by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// NewAccountMetrics returns the collectors when metrics are enabled and a no-op otherwise.
func NewAccountMetrics(cfg *config.Config, m *Metrics) service.AccountMetrics {
	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return service.NoopMetrics{}
	}

	return m
}

func (m *Metrics) ObserveRegistration(outcome string) {
	m.registrationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveAuthentication(outcome string) {
	m.authenticationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSlugCollision() {
	m.slugCollisionsTotal.Inc()
}

// ObserveHTTPRequest records one served request. route is the matched route
// template, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
