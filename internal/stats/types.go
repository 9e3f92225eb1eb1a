package stats

import "time"

// FolderStats is the aggregate statistics record for one folder. Records are
// immutable once computed; a recomputation produces a new record that
// supersedes the old one in the cache.
type FolderStats struct {
	FolderPath      string          `json:"folder_path"`
	Recursive       bool            `json:"recursive"`
	FileCount       int             `json:"file_count"`
	SubfolderCount  int             `json:"subfolder_count"`
	TotalSizeBytes  int64           `json:"total_size_bytes"`
	MediaFileCount  int             `json:"media_file_count"`
	MediaStats      MediaStats      `json:"media_stats"`
	TopTags         []TagCount      `json:"top_tags"`
	PromptAnalysis  PromptAnalysis  `json:"prompt_analysis"`
	MetadataSummary MetadataSummary `json:"metadata_summary"`
	AnalysisLimit   int             `json:"analysis_limit,omitempty"`
	ComputedAt      time.Time       `json:"computed_at"`
}

// MediaStats summarizes the catalog rows found under a folder.
type MediaStats struct {
	TotalImages    int    `json:"total_images"`
	TotalVideos    int    `json:"total_videos"`
	IndexedMedia   int    `json:"indexed_media"`
	TaggedImages   int    `json:"tagged_images"`
	UntaggedImages int    `json:"untagged_images"`
	AnalyzedCount  int    `json:"analyzed_count"`
	LimitApplied   bool   `json:"limit_applied"`
	Error          string `json:"error,omitempty"`
}

// TagCount is one entry of the custom-tag histogram.
type TagCount struct {
	TagID      int64   `json:"tag_id"`
	Name       string  `json:"tag_name"`
	Type       string  `json:"tag_type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// WordCount is one entry of the prompt word-frequency histogram.
type WordCount struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PromptAnalysis is the word-frequency summary over positive prompts.
type PromptAnalysis struct {
	TotalPromptsAnalyzed int         `json:"total_prompts_analyzed"`
	TotalWordsFound      int         `json:"total_words_found"`
	TopWords             []WordCount `json:"top_words"`
	Error                string      `json:"error,omitempty"`
}

// MetadataSummary aggregates model names and image sizes extracted from
// generation metadata.
type MetadataSummary struct {
	Models map[string]int `json:"models"`
	Sizes  map[string]int `json:"sizes"`
	Error  string         `json:"error,omitempty"`
}

// CacheInfo describes how a returned record relates to the cache.
// ComputedAt is nil when a fresh computation could not be persisted.
type CacheInfo struct {
	IsCached   bool       `json:"is_cached"`
	ComputedAt *time.Time `json:"computed_at"`
	CacheValid bool       `json:"cache_valid"`
}

// Result is a statistics record together with its cache provenance.
type Result struct {
	FolderStats
	CacheInfo CacheInfo `json:"cache_info"`
}
