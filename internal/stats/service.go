package stats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"media-stats/internal/database"
	"media-stats/internal/logging"
	"media-stats/internal/mediatypes"
	"media-stats/internal/metrics"
	"media-stats/internal/textanalysis"
)

// StopwordsSettingKey is the settings key holding the stopword list as a
// JSON array of strings.
const StopwordsSettingKey = "folder_stats_stopwords"

// ErrInvalidFolder is returned when the requested path does not exist or is
// not a directory. It is the only hard failure Compute can produce.
var ErrInvalidFolder = errors.New("invalid folder path")

// Config holds tunables for the statistics service.
type Config struct {
	// TTL is how long a cached record stays valid.
	TTL time.Duration
	// TopTags is the tag histogram size.
	TopTags int
	// TopWords is the prompt word histogram size.
	TopWords int
	// TopMetadata is the model/size histogram size.
	TopMetadata int
	// HotCacheSize is the in-memory record cache capacity.
	HotCacheSize int
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		TTL:          time.Hour,
		TopTags:      10,
		TopWords:     20,
		TopMetadata:  10,
		HotCacheSize: 256,
	}
}

type cacheEntry struct {
	record     FolderStats
	computedAt time.Time
}

// Service computes and caches folder statistics. Cached records live in the
// catalog's folder_stats table; an in-memory LRU in front of it avoids
// re-reading and re-decoding hot entries.
type Service struct {
	db  *database.Database
	cfg Config
	hot *expirable.LRU[string, cacheEntry]
}

// New creates a statistics service over the given catalog database.
func New(db *database.Database, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.TopTags <= 0 {
		cfg.TopTags = def.TopTags
	}
	if cfg.TopWords <= 0 {
		cfg.TopWords = def.TopWords
	}
	if cfg.TopMetadata <= 0 {
		cfg.TopMetadata = def.TopMetadata
	}
	if cfg.HotCacheSize <= 0 {
		cfg.HotCacheSize = def.HotCacheSize
	}

	return &Service{
		db:  db,
		cfg: cfg,
		hot: expirable.NewLRU[string, cacheEntry](cfg.HotCacheSize, nil, cfg.TTL),
	}
}

// TTL returns the configured cache time-to-live.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// NormalizePath collapses redundant separators and dot segments. Cache and
// pending-set keys are defined on this normalized form.
func NormalizePath(p string) string {
	return filepath.Clean(p)
}

// Compute builds a fresh statistics record for a folder. Apart from the
// initial path validation, every aggregation step degrades to an empty
// sub-result on failure instead of aborting the whole computation.
func (s *Service) Compute(ctx context.Context, folder string, recursive, includeMetadata bool, analysisLimit int) (FolderStats, error) {
	folder = NormalizePath(folder)

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		metrics.ComputationsTotal.WithLabelValues("error").Inc()
		return FolderStats{}, fmt.Errorf("%w: %s", ErrInvalidFolder, folder)
	}

	start := time.Now()
	defer func() {
		metrics.ComputationDuration.Observe(time.Since(start).Seconds())
	}()

	// Filesystem counts always see the full tree
	counts := countEntries(folder, recursive)

	media, imageIDs := s.mediaStats(ctx, folder, recursive, analysisLimit)
	topTags := s.topTags(ctx, imageIDs)
	prompts := s.promptAnalysis(ctx, folder, recursive, analysisLimit)

	meta := MetadataSummary{Models: map[string]int{}, Sizes: map[string]int{}}
	if includeMetadata {
		meta = s.metadataSummary(ctx, folder, recursive, analysisLimit)
	}

	metrics.ComputationsTotal.WithLabelValues("success").Inc()

	return FolderStats{
		FolderPath:      folder,
		Recursive:       recursive,
		FileCount:       counts.FileCount,
		SubfolderCount:  counts.SubfolderCount,
		TotalSizeBytes:  counts.TotalSizeBytes,
		MediaFileCount:  counts.MediaFileCount,
		MediaStats:      media,
		TopTags:         topTags,
		PromptAnalysis:  prompts,
		MetadataSummary: meta,
		AnalysisLimit:   analysisLimit,
	}, nil
}

// mediaStats classifies the catalog rows under folder and counts tagged
// media. The returned ids feed the tag histogram so the two sections agree
// on which rows were analyzed.
func (s *Service) mediaStats(ctx context.Context, folder string, recursive bool, limit int) (MediaStats, []int64) {
	ms := MediaStats{LimitApplied: limit > 0}

	rows, err := s.db.ImagesUnderFolder(ctx, folder, limit)
	if err != nil {
		logging.Error("error getting media stats for %s: %v", folder, err)
		ms.Error = err.Error()
		return ms, nil
	}

	if !recursive {
		rows = directImageRows(rows, folder)
	}

	if len(rows) == 0 {
		return ms, nil
	}

	imageIDs := make([]int64, len(rows))
	videos := 0
	for i, row := range rows {
		imageIDs[i] = row.ID
		if mediatypes.IsVideo(row.Path) {
			videos++
		}
	}

	ms.IndexedMedia = len(rows)
	ms.AnalyzedCount = len(rows)
	ms.TotalVideos = videos
	ms.TotalImages = len(rows) - videos

	tagged, err := s.db.CountCustomTagged(ctx, imageIDs)
	if err != nil {
		logging.Error("error counting tagged media for %s: %v", folder, err)
		ms.Error = err.Error()
		return ms, imageIDs
	}
	ms.TaggedImages = tagged
	ms.UntaggedImages = len(rows) - tagged

	return ms, imageIDs
}

// topTags builds the custom-tag histogram over the analyzed rows.
func (s *Service) topTags(ctx context.Context, imageIDs []int64) []TagCount {
	if len(imageIDs) == 0 {
		return []TagCount{}
	}

	rows, err := s.db.CustomTagCounts(ctx, imageIDs, s.cfg.TopTags)
	if err != nil {
		logging.Error("error getting top tags: %v", err)
		return []TagCount{}
	}

	total := 0
	for _, row := range rows {
		total += row.Count
	}

	result := make([]TagCount, len(rows))
	for i, row := range rows {
		result[i] = TagCount{
			TagID:      row.TagID,
			Name:       row.Name,
			Type:       row.Type,
			Count:      row.Count,
			Percentage: percent(row.Count, total),
		}
	}
	return result
}

// promptAnalysis builds the word-frequency histogram over positive prompts.
// Stopwords are read fresh from settings on every call so an updated list
// takes effect on the next computation.
func (s *Service) promptAnalysis(ctx context.Context, folder string, recursive bool, limit int) PromptAnalysis {
	pa := PromptAnalysis{TopWords: []WordCount{}}

	stopwords := s.stopwordSet(ctx)

	rows, err := s.db.ImagesWithMetadata(ctx, folder, limit)
	if err != nil {
		logging.Error("error analyzing prompts for %s: %v", folder, err)
		pa.Error = err.Error()
		return pa
	}

	if !recursive {
		rows = directMetadataRows(rows, folder)
	}

	if len(rows) == 0 {
		return pa
	}

	wordCounts := make(map[string]int)
	totalWords := 0
	for _, row := range rows {
		prompt := textanalysis.ExtractPositivePrompt(row.Exif)
		for _, word := range textanalysis.ExtractWords(prompt, stopwords, textanalysis.MinWordLength) {
			wordCounts[word]++
			totalWords++
		}
	}

	pa.TotalPromptsAnalyzed = len(rows)
	pa.TotalWordsFound = len(wordCounts)

	words := make([]string, 0, len(wordCounts))
	for word := range wordCounts {
		words = append(words, word)
	}
	// Count descending, then lexicographic for a reproducible top-K
	sort.Slice(words, func(i, j int) bool {
		if wordCounts[words[i]] != wordCounts[words[j]] {
			return wordCounts[words[i]] > wordCounts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > s.cfg.TopWords {
		words = words[:s.cfg.TopWords]
	}

	for _, word := range words {
		pa.TopWords = append(pa.TopWords, WordCount{
			Word:       word,
			Count:      wordCounts[word],
			Percentage: percent(wordCounts[word], totalWords),
		})
	}
	return pa
}

// metadataSummary extracts model names and image sizes from generation
// metadata, keeping the most frequent values of each.
func (s *Service) metadataSummary(ctx context.Context, folder string, recursive bool, limit int) MetadataSummary {
	summary := MetadataSummary{Models: map[string]int{}, Sizes: map[string]int{}}

	rows, err := s.db.ImagesWithMetadata(ctx, folder, limit)
	if err != nil {
		logging.Error("error getting metadata summary for %s: %v", folder, err)
		summary.Error = err.Error()
		return summary
	}

	if !recursive {
		rows = directMetadataRows(rows, folder)
	}

	models := make(map[string]int)
	sizes := make(map[string]int)
	for _, row := range rows {
		if model, ok := textanalysis.ExtractField(row.Exif, textanalysis.ModelRules); ok {
			models[model]++
		}
		if size, ok := textanalysis.ExtractField(row.Exif, textanalysis.SizeRules); ok {
			sizes[size]++
		}
	}

	summary.Models = topKMap(models, s.cfg.TopMetadata)
	summary.Sizes = topKMap(sizes, s.cfg.TopMetadata)
	return summary
}

// stopwordSet loads the configured stopword list, falling back to the
// built-in default when none is saved or the stored value is malformed.
func (s *Service) stopwordSet(ctx context.Context) textanalysis.Stopwords {
	words, err := s.StopwordList(ctx)
	if err != nil {
		logging.Warn("error loading stopwords, using defaults: %v", err)
		return textanalysis.DefaultStopwords()
	}
	return textanalysis.NewStopwords(words)
}

// isDirectChild reports whether path is an immediate child of folder.
func isDirectChild(folder, path string) bool {
	rel, err := filepath.Rel(folder, path)
	if err != nil {
		return false
	}
	return rel != "." && !strings.ContainsRune(rel, os.PathSeparator)
}

// directImageRows keeps only immediate children of folder. The filter runs
// after any row limit, so a limited recency sample can legitimately contain
// no direct children even when some exist; that sampling behavior is part of
// the contract.
func directImageRows(rows []database.ImageRow, folder string) []database.ImageRow {
	filtered := rows[:0]
	for _, row := range rows {
		if isDirectChild(folder, row.Path) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func directMetadataRows(rows []database.MetadataRow, folder string) []database.MetadataRow {
	filtered := rows[:0]
	for _, row := range rows {
		if isDirectChild(folder, row.Path) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// percent computes round(count/total*100, 2), returning 0 for a zero total.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}

// topKMap keeps the k highest-count entries, ties broken by key ascending.
func topKMap(counter map[string]int, k int) map[string]int {
	if len(counter) <= k {
		result := make(map[string]int, len(counter))
		for key, count := range counter {
			result[key] = count
		}
		return result
	}

	keys := make([]string, 0, len(counter))
	for key := range counter {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counter[keys[i]] != counter[keys[j]] {
			return counter[keys[i]] > counter[keys[j]]
		}
		return keys[i] < keys[j]
	})

	result := make(map[string]int, k)
	for _, key := range keys[:k] {
		result[key] = counter[key]
	}
	return result
}
