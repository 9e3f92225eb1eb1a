// Package scheduler runs folder statistics jobs in the background on a
// bounded worker pool, deduplicating submissions so each folder is computed
// at most once at a time.
package scheduler
