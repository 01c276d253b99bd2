package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry for the API.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	cacheLatency     prometheus.Observer
	advisoryTotal    *prometheus.CounterVec
	advisoryDuration *prometheus.HistogramVec
	insightRefreshes *prometheus.CounterVec
	complaintEvents  *prometheus.CounterVec
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	advisoryTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisory_requests_total",
		Help: "Advisory calls by operation and outcome",
	}, []string{"operation", "outcome"})

	advisoryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "advisory_request_duration_seconds",
		Help:    "Latency of advisory calls",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
	}, []string{"operation"})

	insightRefreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_refreshes_total",
		Help: "Predictive insight refreshes by result",
	}, []string{"result"})

	complaintEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "complaint_events_total",
		Help: "Complaint lodges and status changes",
	}, []string{"event"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLookups, cacheLatency, advisoryTotal, advisoryDuration, insightRefreshes, complaintEvents, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		cacheLookups:     cacheLookups,
		cacheLatency:     cacheLatency,
		advisoryTotal:    advisoryTotal,
		advisoryDuration: advisoryDuration,
		insightRefreshes: insightRefreshes,
		complaintEvents:  complaintEvents,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache hit or miss.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveAdvisory records one advisory call. Outcome is "success",
// "cached" or a failure bucket such as "timeout".
func (m *MetricsService) ObserveAdvisory(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.advisoryTotal.WithLabelValues(operation, outcome).Inc()
	if outcome != "cached" {
		m.advisoryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}
}

// RecordInsightRefresh counts applied, stale and dropped refreshes.
func (m *MetricsService) RecordInsightRefresh(result string) {
	if m == nil {
		return
	}
	m.insightRefreshes.WithLabelValues(result).Inc()
}

// RecordComplaintEvent counts complaint mutations by kind.
func (m *MetricsService) RecordComplaintEvent(event string) {
	if m == nil {
		return
	}
	m.complaintEvents.WithLabelValues(event).Inc()
}
