package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// UpsertImage inserts or updates a catalog row for a media path and returns
// its id. indexedAt drives the recency ordering used by limited queries.
func (d *Database) UpsertImage(ctx context.Context, path, exif string, indexedAt time.Time) (int64, error) {
	done := observeQuery("upsert_image")

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO images (path, exif, indexed_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			exif = excluded.exif,
			indexed_at = excluded.indexed_at
	`, path, exif, indexedAt.Unix())
	if err != nil {
		done(err)
		return 0, fmt.Errorf("failed to upsert image: %w", err)
	}

	var id int64
	err = d.db.QueryRowContext(ctx, "SELECT id FROM images WHERE path = ?", path).Scan(&id)
	done(err)
	return id, err
}

// GetOrCreateTag gets an existing tag of the given type or creates a new one.
func (d *Database) GetOrCreateTag(ctx context.Context, name, tagType string) (int64, error) {
	done := observeQuery("get_or_create_tag")

	name = strings.TrimSpace(name)
	if name == "" {
		err := errors.New("tag name cannot be empty")
		done(err)
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id int64
	err := d.db.QueryRowContext(ctx,
		"SELECT id FROM tags WHERE name = ? AND type = ?",
		name, tagType,
	).Scan(&id)
	if err == nil {
		done(nil)
		return id, nil
	}

	result, err := d.db.ExecContext(ctx,
		"INSERT INTO tags (name, type) VALUES (?, ?)",
		name, tagType,
	)
	if err != nil {
		done(err)
		return 0, fmt.Errorf("failed to create tag: %w", err)
	}

	id, err = result.LastInsertId()
	done(err)
	return id, err
}

// TagImage links a tag to an image; linking twice is a no-op.
func (d *Database) TagImage(ctx context.Context, imageID, tagID int64) error {
	done := observeQuery("tag_image")

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO image_tags (image_id, tag_id) VALUES (?, ?)",
		imageID, tagID,
	)
	done(err)
	return err
}
