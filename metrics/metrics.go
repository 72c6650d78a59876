package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "peponi_admin"

// Metrics holds the collectors of the admin server. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	ScreenFetches   *prometheus.CounterVec
	MaskOperations  *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
}

func New() *Metrics {

	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status_code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of requests sent to the Peponi API",
		}, []string{"method", "status_code"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of requests sent to the Peponi API in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_cache_lookups_total",
			Help:      "List cache lookups by result",
		}, []string{"entity", "result"}),
		ScreenFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screen_fetches_total",
			Help:      "List fetches issued by screens by outcome",
		}, []string{"entity", "outcome"}),
		MaskOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "id_mask_operations_total",
			Help:      "Identifier mask operations by action and outcome",
		}, []string{"action", "outcome"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of admin sessions holding a mounted screen",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.BackendRequests,
		m.BackendDuration,
		m.CacheLookups,
		m.ScreenFetches,
		m.MaskOperations,
		m.ActiveSessions,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {

	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {

	if m == nil {
		return
	}

	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveBackend(method string, status int, elapsed time.Duration) {

	if m == nil {
		return
	}

	m.BackendRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.BackendDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheLookup(entity string, hit bool) {

	if m == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	m.CacheLookups.WithLabelValues(entity, result).Inc()
}

// ScreenFetch counts a list fetch outcome: "applied", "stale" or "failed".
func (m *Metrics) ScreenFetch(entity, outcome string) {

	if m == nil {
		return
	}

	m.ScreenFetches.WithLabelValues(entity, outcome).Inc()
}

func (m *Metrics) MaskOperation(action, outcome string) {

	if m == nil {
		return
	}

	m.MaskOperations.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) SetActiveSessions(count int) {

	if m == nil {
		return
	}

	m.ActiveSessions.Set(float64(count))
}
