package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream maps API calls, labelled by endpoint path and outcome
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetpoint_upstream_requests_total",
			Help: "Total number of requests sent to the maps API",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meetpoint_upstream_request_duration_seconds",
			Help:    "Duration of maps API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Upstream API status field values (OK, ZERO_RESULTS, REQUEST_DENIED, ...)
	UpstreamStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetpoint_upstream_status_total",
			Help: "Status values reported in maps API response bodies",
		},
		[]string{"endpoint", "status"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "meetpoint_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetpoint_cache_hits_total",
			Help: "Cache hits by cache layer",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetpoint_cache_misses_total",
			Help: "Cache misses by cache layer",
		},
		[]string{"cache"},
	)

	HandlerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetpoint_handler_requests_total",
			Help: "API requests handled, labelled by route and status code",
		},
		[]string{"route", "status"},
	)
)
