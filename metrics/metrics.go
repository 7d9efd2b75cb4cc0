package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's collectors on a private Prometheus registry.
// A nil *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	NodesByHealthTier   *prometheus.GaugeVec
	ProximityRankings   prometheus.Counter
	ActiveOpportunities prometheus.Gauge
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	r := &Registry{registry: reg}

	r.HTTPRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "depin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "depin_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.NodesByHealthTier = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "depin_nodes_by_health_tier",
			Help: "Number of monitored nodes in each health tier",
		},
		[]string{"tier"},
	)

	r.ProximityRankings = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "depin_proximity_rankings_total",
			Help: "Number of node lists ranked by distance from a reference point",
		},
	)

	r.ActiveOpportunities = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "depin_active_opportunities",
			Help: "Opportunity windows active at the last evaluation",
		},
	)

	return r
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetHealthTiers replaces the per-tier node gauge
func (r *Registry) SetHealthTiers(counts map[string]int) {
	if r == nil {
		return
	}
	for tier, n := range counts {
		r.NodesByHealthTier.WithLabelValues(tier).Set(float64(n))
	}
}

func (r *Registry) RecordRanking() {
	if r == nil {
		return
	}
	r.ProximityRankings.Inc()
}

func (r *Registry) SetActiveOpportunities(n int) {
	if r == nil {
		return
	}
	r.ActiveOpportunities.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
