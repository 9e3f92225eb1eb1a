// Package metrics provides Prometheus instrumentation for the folder
// statistics service. All metrics are prefixed with "media_stats_" to avoid
// naming collisions with other applications.
//
// Metrics fall into four categories: HTTP request metrics (used by the
// middleware package), database query metrics (used by the database package),
// aggregation metrics (computation counts/durations and cache hit/miss
// counters, used by the stats package), and scheduler metrics (job accept,
// reject, and completion counters plus the pending-set gauge, used by the
// scheduler package).
//
// Metrics are registered with the default Prometheus registry using promauto.
// To expose them, mount promhttp.Handler() on the metrics endpoint:
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// Example PromQL, cache hit rate across both tiers:
//
//	sum(rate(media_stats_cache_hits_total[5m])) /
//	(sum(rate(media_stats_cache_hits_total[5m])) + rate(media_stats_cache_misses_total[5m]))
package metrics
