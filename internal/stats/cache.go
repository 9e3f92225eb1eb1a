package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"media-stats/internal/logging"
	"media-stats/internal/metrics"
	"media-stats/internal/textanalysis"
)

// Cached returns the cached record for a folder, if any, along with its
// computed-at timestamp. The in-memory hot cache is consulted before the
// persistent folder_stats table. Staleness is not checked here; callers use
// IsExpired or compare against TTL themselves.
func (s *Service) Cached(ctx context.Context, folder string) (*FolderStats, time.Time, bool) {
	folder = NormalizePath(folder)

	if entry, ok := s.hot.Get(folder); ok {
		metrics.CacheHitsTotal.WithLabelValues("memory").Inc()
		record := entry.record
		return &record, entry.computedAt, true
	}

	row, err := s.db.GetFolderStats(ctx, folder)
	if err != nil {
		logging.Error("error reading cached stats for %s: %v", folder, err)
		metrics.CacheMissesTotal.Inc()
		return nil, time.Time{}, false
	}
	if row == nil {
		metrics.CacheMissesTotal.Inc()
		return nil, time.Time{}, false
	}

	var record FolderStats
	if err := json.Unmarshal([]byte(row.Stats), &record); err != nil {
		logging.Error("malformed cached stats for %s: %v", folder, err)
		metrics.CacheMissesTotal.Inc()
		return nil, time.Time{}, false
	}

	metrics.CacheHitsTotal.WithLabelValues("database").Inc()
	s.hot.Add(folder, cacheEntry{record: record, computedAt: row.ComputedAt})
	return &record, row.ComputedAt, true
}

// IsExpired reports whether a folder's cache entry is missing or older than
// the TTL. Expiry is a predicate only; stale entries stay readable until
// overwritten.
func (s *Service) IsExpired(ctx context.Context, folder string) bool {
	_, computedAt, ok := s.Cached(ctx, folder)
	if !ok {
		return true
	}
	return time.Since(computedAt) > s.cfg.TTL
}

// GetOrCompute returns the cached record when it is still valid and no
// refresh was forced; otherwise it computes synchronously, persists the
// result, and returns it. A persistence failure is logged but does not fail
// the call: the fresh record is returned with a nil cache timestamp.
func (s *Service) GetOrCompute(ctx context.Context, folder string, recursive, forceRefresh, includeMetadata bool, analysisLimit int) (Result, error) {
	folder = NormalizePath(folder)

	if !forceRefresh {
		if record, computedAt, ok := s.Cached(ctx, folder); ok && time.Since(computedAt) <= s.cfg.TTL {
			ts := computedAt
			return Result{
				FolderStats: *record,
				CacheInfo:   CacheInfo{IsCached: true, ComputedAt: &ts, CacheValid: true},
			}, nil
		}
	}

	record, err := s.Compute(ctx, folder, recursive, includeMetadata, analysisLimit)
	if err != nil {
		return Result{}, err
	}

	info := CacheInfo{IsCached: false, CacheValid: true}
	if computedAt, err := s.store(ctx, folder, &record); err != nil {
		logging.Error("error caching stats for %s: %v", folder, err)
	} else {
		ts := computedAt
		info.ComputedAt = &ts
	}

	return Result{FolderStats: record, CacheInfo: info}, nil
}

// ComputeAndStore computes a record and persists it, for background jobs.
// Background sweeps skip the metadata pass.
func (s *Service) ComputeAndStore(ctx context.Context, folder string, recursive bool, analysisLimit int) (FolderStats, error) {
	record, err := s.Compute(ctx, folder, recursive, false, analysisLimit)
	if err != nil {
		return FolderStats{}, err
	}
	if _, err := s.store(ctx, folder, &record); err != nil {
		return record, err
	}
	return record, nil
}

// store persists a record to the folder_stats table and the hot cache,
// stamping it with the current time. Timestamps are truncated to seconds to
// match the persisted precision.
func (s *Service) store(ctx context.Context, folder string, record *FolderStats) (time.Time, error) {
	now := time.Now().Truncate(time.Second)
	record.ComputedAt = now

	blob, err := json.Marshal(record)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.db.PutFolderStats(ctx, folder, string(blob), now); err != nil {
		return time.Time{}, err
	}

	s.hot.Add(folder, cacheEntry{record: *record, computedAt: now})
	return now, nil
}

// StopwordList returns the configured stopword list, or the built-in default
// when none has been saved.
func (s *Service) StopwordList(ctx context.Context) ([]string, error) {
	value, err := s.db.GetSetting(ctx, StopwordsSettingKey)
	if errors.Is(err, sql.ErrNoRows) {
		return textanalysis.DefaultStopwordList, nil
	}
	if err != nil {
		return nil, err
	}

	var words []string
	if err := json.Unmarshal([]byte(value), &words); err != nil {
		logging.Warn("malformed stopword setting, using defaults: %v", err)
		return textanalysis.DefaultStopwordList, nil
	}
	return words, nil
}

// SaveStopwords persists a stopword list, replacing any previous one. It
// takes effect on the next computation; there is no in-process cache of the
// list.
func (s *Service) SaveStopwords(ctx context.Context, words []string) error {
	blob, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return s.db.SetSetting(ctx, StopwordsSettingKey, string(blob))
}
