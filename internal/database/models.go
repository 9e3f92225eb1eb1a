package database

import "time"

// ImageRow is a catalog media row as returned by folder-scoped queries.
type ImageRow struct {
	ID   int64
	Path string
}

// MetadataRow pairs a media path with its free-text generation metadata.
type MetadataRow struct {
	Path string
	Exif string
}

// TagCount is one row of the custom-tag frequency histogram.
type TagCount struct {
	TagID int64
	Name  string
	Type  string
	Count int
}

// CachedStats is a persisted folder statistics record with its timestamp.
type CachedStats struct {
	FolderPath string
	Stats      string
	ComputedAt time.Time
}
