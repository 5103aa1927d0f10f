package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests served by this API, by route and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extendo_http_requests_total",
			Help: "HTTP requests served, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes wall time per served request.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extendo_http_request_duration_seconds",
			Help:    "Latency of served HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// UpstreamRequests counts calls to the FACEIT APIs, by endpoint and
	// upstream status code ("error" when the call never completed).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extendo_upstream_requests_total",
			Help: "Upstream FACEIT API calls, by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamRequestDuration observes upstream call latency per endpoint.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extendo_upstream_request_duration_seconds",
			Help:    "Latency of upstream FACEIT API calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CacheReads counts disk-cache reads by namespace and outcome
	// (hit, stale, miss, error).
	CacheReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extendo_cache_reads_total",
			Help: "Disk cache reads, by namespace and outcome.",
		},
		[]string{"cache", "outcome"},
	)

	// CacheWrites counts disk-cache writes by namespace and outcome.
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extendo_cache_writes_total",
			Help: "Disk cache writes, by namespace and outcome.",
		},
		[]string{"cache", "outcome"},
	)

	// IdentityCacheHits counts nickname resolutions served from memory.
	IdentityCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extendo_identity_cache_hits_total",
		Help: "Nickname resolutions answered by the in-memory cache.",
	})

	// IdentityCacheMisses counts nickname resolutions that hit upstream.
	IdentityCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "extendo_identity_cache_misses_total",
		Help: "Nickname resolutions that required an upstream lookup.",
	})

	// AggregatedPlayers counts per-nickname aggregation outcomes.
	AggregatedPlayers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extendo_aggregated_players_total",
			Help: "Per-nickname aggregation outcomes (ok or error).",
		},
		[]string{"outcome"},
	)

	// AggregationDuration observes wall time per aggregation batch.
	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "extendo_aggregation_batch_duration_seconds",
		Help:    "Wall time spent aggregating one nickname batch.",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	})
)
