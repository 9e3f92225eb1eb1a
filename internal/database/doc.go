// Package database provides SQLite access to the media catalog for the
// folder statistics service.
//
// It handles storage and retrieval of:
//   - Indexed media rows (path, recency, free-text generation metadata)
//   - Tags and image-tag links, with a "custom" type for user-applied tags
//   - Arbitrary key/value settings (the stopword list lives here)
//   - The persistent folder statistics cache with its computed-at timestamp
//
// The database uses WAL mode for improved concurrent read performance
// and includes automatic schema initialization.
package database
