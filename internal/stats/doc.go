// Package stats computes and caches aggregate statistics for media folders:
// filesystem counts, catalog media classification, custom-tag histograms,
// prompt word frequencies, and generation-metadata summaries.
//
// The Service is the synchronous entry point. Compute builds a fresh record
// and only fails on an invalid folder path; each aggregation sub-step is
// independently resilient and degrades to an empty sub-result carrying an
// error string. GetOrCompute layers a bounded-staleness cache on top: records
// persist in the catalog's folder_stats table with an in-memory LRU in front,
// and expire by TTL without active eviction.
//
// Records are value objects. A recomputation writes a whole new record;
// concurrent readers observe either the old or the new one, never a partial
// write.
package stats
