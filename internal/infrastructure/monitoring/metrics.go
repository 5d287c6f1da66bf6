package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the assistant
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Query routing metrics
	QueriesTotal *prometheus.CounterVec

	// History pipeline metrics
	Extractions     *prometheus.CounterVec
	ExtractDuration prometheus.Histogram
	GateGrants      *prometheus.CounterVec
	GatePrompts     prometheus.Counter

	// Upstream answer services
	UpstreamCalls *prometheus.CounterVec

	// Session metrics
	SessionsActive prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector backed by its own registry, so
// multiple collectors can coexist in tests.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clio_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clio_queries_total",
				Help: "Total number of routed queries by kind",
			},
			[]string{"kind"},
		),

		Extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clio_history_extractions_total",
				Help: "Total number of history extractions by outcome",
			},
			[]string{"outcome"},
		),
		ExtractDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clio_history_extract_duration_seconds",
				Help:    "History extraction duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		GateGrants: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clio_privacy_grants_total",
				Help: "Total number of history-access grants by scope",
			},
			[]string{"scope"},
		),
		GatePrompts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "clio_privacy_prompts_total",
				Help: "Total number of authorization prompts shown",
			},
		),

		UpstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clio_upstream_calls_total",
				Help: "Total number of upstream answer-service calls",
			},
			[]string{"service", "status"},
		),

		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "clio_sessions_active",
				Help: "Number of live sessions",
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "clio_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// Handler exposes the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordQuery records a routed query by kind ("history" or "general")
func (m *Metrics) RecordQuery(kind string) {
	m.QueriesTotal.WithLabelValues(kind).Inc()
}

// RecordExtraction records one extraction attempt by outcome
func (m *Metrics) RecordExtraction(outcome string, duration time.Duration) {
	m.Extractions.WithLabelValues(outcome).Inc()
	m.ExtractDuration.Observe(duration.Seconds())
}

// RecordGrant records a history-access grant
func (m *Metrics) RecordGrant(scope string) {
	m.GateGrants.WithLabelValues(scope).Inc()
}

// RecordPrompt records an authorization prompt being shown
func (m *Metrics) RecordPrompt() {
	m.GatePrompts.Inc()
}

// RecordUpstream records an upstream answer-service call
func (m *Metrics) RecordUpstream(service, status string) {
	m.UpstreamCalls.WithLabelValues(service, status).Inc()
}
