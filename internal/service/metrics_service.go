package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsService owns the console's Prometheus collectors.
type MetricsService struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	upstreamLatency *prometheus.HistogramVec
	tabLoads        *prometheus.CounterVec
	generations     *prometheus.CounterVec
}

// NewMetricsService creates and registers the collectors on the given
// registerer.
func NewMetricsService(reg prometheus.Registerer) *MetricsService {
	m := &MetricsService{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "HTTP requests handled by the console.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_upstream_request_duration_seconds",
			Help:    "Latency of calls to the platform API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "outcome"}),
		tabLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_editor_tab_loads_total",
			Help: "Editor tab content loads.",
		}, []string{"editor", "tab"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_lesson_generations_total",
			Help: "AI lesson-plan generation outcomes.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.upstreamLatency, m.tabLoads, m.generations)
	return m
}

// ObserveRequest records one handled HTTP request.
func (m *MetricsService) ObserveRequest(method, path, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveUpstream records one call to the platform API.
func (m *MetricsService) ObserveUpstream(method, outcome string, duration time.Duration) {
	m.upstreamLatency.WithLabelValues(method, outcome).Observe(duration.Seconds())
}

// CountTabLoad records one editor tab load.
func (m *MetricsService) CountTabLoad(editor, tab string) {
	m.tabLoads.WithLabelValues(editor, tab).Inc()
}

// CountGeneration records the outcome of one AI generation.
func (m *MetricsService) CountGeneration(status string) {
	m.generations.WithLabelValues(status).Inc()
}
