package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// GetFolderStats retrieves a cached statistics record for a folder path.
// Returns (nil, nil) when no entry exists.
func (d *Database) GetFolderStats(ctx context.Context, folderPath string) (*CachedStats, error) {
	done := observeQuery("get_folder_stats")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var stats string
	var computedAt int64
	err := d.db.QueryRowContext(ctx,
		"SELECT stats, computed_at FROM folder_stats WHERE folder_path = ?",
		folderPath,
	).Scan(&stats, &computedAt)
	done(err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &CachedStats{
		FolderPath: folderPath,
		Stats:      stats,
		ComputedAt: time.Unix(computedAt, 0),
	}, nil
}

// PutFolderStats inserts or replaces the cached statistics record for a
// folder path.
func (d *Database) PutFolderStats(ctx context.Context, folderPath, stats string, computedAt time.Time) error {
	done := observeQuery("put_folder_stats")

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO folder_stats (folder_path, stats, computed_at) VALUES (?, ?, ?)
		ON CONFLICT(folder_path) DO UPDATE SET
			stats = excluded.stats,
			computed_at = excluded.computed_at
	`, folderPath, stats, computedAt.Unix())
	done(err)
	return err
}

// DeleteFolderStats removes a cached record, if present.
func (d *Database) DeleteFolderStats(ctx context.Context, folderPath string) error {
	done := observeQuery("delete_folder_stats")

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, "DELETE FROM folder_stats WHERE folder_path = ?", folderPath)
	done(err)
	return err
}
