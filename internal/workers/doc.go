// Package workers provides utilities for determining worker pool sizes in
// containerized environments.
//
// Go 1.19+ sets GOMAXPROCS from container CPU limits, while runtime.NumCPU()
// still reports the host's CPU count. The helpers here size worker pools from
// GOMAXPROCS so that background statistics jobs respect cgroup constraints:
//
//	// I/O-heavy aggregation jobs (database + filesystem), capped at 8
//	numWorkers := workers.ForIO(8)
//
// All functions honor the STATS_WORKERS environment variable as a manual
// override, which is useful for tuning or debugging in specific deployments.
package workers
