// Package metrics registers the Prometheus collectors exposed on /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Provider fan-out
	FanoutCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_fanout_calls_total",
			Help: "Provider calls issued by the fan-out, by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	FanoutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripmate_fanout_duration_seconds",
			Help:    "Wall time of one fan-out including the join barrier",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"mode"},
	)

	// Upstream clients
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tripmate_circuit_breaker_state",
			Help: "Circuit breaker state per upstream (0=closed, 1=half-open, 2=open)",
		},
		[]string{"upstream"},
	)

	RateLimitWaits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_upstream_rate_limit_waits_total",
			Help: "Calls that had to wait for the outbound rate limiter",
		},
		[]string{"upstream"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_cache_hits_total",
			Help: "Response cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_cache_misses_total",
			Help: "Response cache misses",
		},
		[]string{"cache"},
	)

	// Location directory
	DirectoryEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tripmate_directory_entries",
			Help: "Location candidates in the live directory",
		},
		[]string{"directory"},
	)

	DirectoryRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_directory_refreshes_total",
			Help: "Directory rebuilds by outcome",
		},
		[]string{"directory", "outcome"},
	)

	// HTTP
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripmate_api_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripmate_api_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)
)
