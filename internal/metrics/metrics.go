package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_stats_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_stats_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_stats_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_stats_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_stats_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_stats_db_connections_open",
			Help: "Number of open database connections",
		},
	)
)

// Aggregation metrics
var (
	ComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_stats_computations_total",
			Help: "Total number of folder statistics computations",
		},
		[]string{"status"},
	)

	ComputationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_stats_computation_duration_seconds",
			Help:    "Folder statistics computation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_stats_cache_hits_total",
			Help: "Total number of folder statistics cache hits",
		},
		[]string{"tier"}, // "memory", "database"
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_stats_cache_misses_total",
			Help: "Total number of folder statistics cache misses",
		},
	)
)

// Scheduler metrics
var (
	JobsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_stats_jobs_submitted_total",
			Help: "Total number of background jobs accepted by the scheduler",
		},
	)

	JobsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_stats_jobs_rejected_total",
			Help: "Total number of background job submissions rejected",
		},
		[]string{"reason"}, // "pending", "fresh_cache", "stopped"
	)

	JobsCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_stats_jobs_completed_total",
			Help: "Total number of background jobs finished",
		},
		[]string{"status"},
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_stats_job_duration_seconds",
			Help:    "Background job duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	JobsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_stats_jobs_pending",
			Help: "Number of folder paths currently queued or being processed",
		},
	)

	SchedulerWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_stats_scheduler_workers",
			Help: "Number of background worker goroutines",
		},
	)
)
