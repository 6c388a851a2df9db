package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	errors     *prometheus.CounterVec
	upstream   *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	degraded   *prometheus.CounterVec
	authEvents *prometheus.CounterVec
}

// NewMetrics registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "web_http_requests_total",
			Help: "Requests served by the gateway.",
		}, []string{"path", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "web_http_request_duration_seconds",
			Help:    "Request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "web_http_errors_total",
			Help: "Requests that ended in an error envelope.",
		}, []string{"path", "method", "code"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "web_upstream_responses_total",
			Help: "Backend responses by status class.",
		}, []string{"method", "status"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "web_fallback_attempts_total",
			Help: "Alternate backend endpoints tried after a failure.",
		}, []string{"operation"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "web_degraded_reads_total",
			Help: "Reads answered with an empty result because the backend failed.",
		}, []string{"operation"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "web_auth_events_total",
			Help: "Session lifecycle events.",
		}, []string{"type"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.errors, m.upstream, m.fallbacks, m.degraded, m.authEvents,
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// RecordUpstream counts a backend response; status 0 means a transport failure.
func (m *Metrics) RecordUpstream(method string, status int) {
	if m == nil {
		return
	}
	m.upstream.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordFallback counts one hop to an alternate endpoint.
func (m *Metrics) RecordFallback(operation string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(operation).Inc()
}

// RecordDegraded counts a read that was answered with an empty result.
func (m *Metrics) RecordDegraded(operation string) {
	if m == nil {
		return
	}
	m.degraded.WithLabelValues(operation).Inc()
}

// RecordAuthEvent counts session lifecycle events.
func (m *Metrics) RecordAuthEvent(eventType string) {
	if m == nil {
		return
	}
	m.authEvents.WithLabelValues(eventType).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
