// Package metrics exposes Prometheus instrumentation for the API server and
// the model client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collector set for one server process. A dedicated
// registry keeps tests isolated from the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequests counts API requests by endpoint and status code.
	HTTPRequests *prometheus.CounterVec

	// ModelCalls observes model call durations by provider and outcome
	// ("ok" or "error").
	ModelCalls *prometheus.HistogramVec

	// RoutingDecisions counts which agent the router selected.
	RoutingDecisions *prometheus.CounterVec

	// RoutingFallbacks counts default substitutions by reason
	// ("invalid_label" or "model_error").
	RoutingFallbacks *prometheus.CounterVec
}

// New creates a metrics set backed by a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutormesh_http_requests_total",
			Help: "API requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		ModelCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tutormesh_model_call_duration_seconds",
			Help:    "Model call durations by provider and outcome.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"provider", "outcome"}),
		RoutingDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutormesh_routing_decisions_total",
			Help: "Routing decisions by selected agent.",
		}, []string{"agent"}),
		RoutingFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutormesh_routing_fallbacks_total",
			Help: "Router default substitutions by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.ModelCalls,
		m.RoutingDecisions,
		m.RoutingFallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveModelCall records one model call.
func (m *Metrics) ObserveModelCall(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ModelCalls.WithLabelValues(provider, outcome).Observe(time.Since(start).Seconds())
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
