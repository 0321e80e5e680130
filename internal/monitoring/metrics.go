// Package monitoring collects Prometheus metrics for the API surface and
// the SEI upstreams.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Wizard metrics
	SessionsActive    prometheus.Gauge
	SessionsOpened    prometheus.Counter
	RecordsSubmitted  prometheus.Counter
	DocumentsIncluded prometheus.Counter

	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	UpstreamErrors   *prometheus.CounterVec

	startTime time.Time
}

// New creates a metrics collector.
func New() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seidev_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seidev_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "seidev_sessions_active",
				Help: "Number of live wizard sessions",
			},
		),
		SessionsOpened: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "seidev_sessions_opened_total",
				Help: "Total number of wizard sessions opened",
			},
		),
		RecordsSubmitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "seidev_records_submitted_total",
				Help: "Total number of integration records submitted for capture",
			},
		),
		DocumentsIncluded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "seidev_documents_included_total",
				Help: "Total number of documents included into the host system",
			},
		),

		UpstreamRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seidev_upstream_requests_total",
				Help: "Total number of upstream API requests",
			},
			[]string{"upstream", "endpoint", "status"},
		),
		UpstreamDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seidev_upstream_request_duration_seconds",
				Help:    "Upstream API request duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"upstream", "endpoint"},
		),
		UpstreamErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seidev_upstream_errors_total",
				Help: "Total number of upstream transport failures",
			},
			[]string{"upstream"},
		),
	}
}

// RecordHTTPRequest records an inbound request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveUpstream records an upstream API call.
func (m *Metrics) ObserveUpstream(upstream, endpoint, status string, duration time.Duration) {
	m.UpstreamRequests.WithLabelValues(upstream, endpoint, status).Inc()
	m.UpstreamDuration.WithLabelValues(upstream, endpoint).Observe(duration.Seconds())
}

// ObserveUpstreamError records an upstream transport failure.
func (m *Metrics) ObserveUpstreamError(upstream string) {
	m.UpstreamErrors.WithLabelValues(upstream).Inc()
}

// Uptime returns time since metrics creation.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
