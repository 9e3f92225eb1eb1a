package database

import (
	"context"
	"fmt"
	"os"
	"strings"

	"media-stats/internal/logging"
)

// folderPattern builds the LIKE pattern matching every path under folder.
func folderPattern(folder string) string {
	return folder + string(os.PathSeparator) + "%"
}

// ImagesUnderFolder returns catalog rows whose path lies under folder.
// When limit > 0 the result is capped to the most recently indexed rows.
func (d *Database) ImagesUnderFolder(ctx context.Context, folder string, limit int) ([]ImageRow, error) {
	done := observeQuery("images_under_folder")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := "SELECT id, path FROM images WHERE path LIKE ?"
	args := []interface{}{folderPattern(folder)}
	if limit > 0 {
		query += " ORDER BY indexed_at DESC LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		done(err)
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Error("error closing rows: %v", err)
		}
	}()

	var result []ImageRow
	for rows.Next() {
		var row ImageRow
		if err := rows.Scan(&row.ID, &row.Path); err != nil {
			done(err)
			return nil, err
		}
		result = append(result, row)
	}

	err = rows.Err()
	done(err)
	return result, err
}

// ImagesWithMetadata returns path and metadata text for rows under folder
// that carry non-empty generation metadata. When limit > 0 the result is
// capped to the most recently indexed rows.
func (d *Database) ImagesWithMetadata(ctx context.Context, folder string, limit int) ([]MetadataRow, error) {
	done := observeQuery("images_with_metadata")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := "SELECT path, exif FROM images WHERE path LIKE ? AND exif IS NOT NULL AND exif != ''"
	args := []interface{}{folderPattern(folder)}
	if limit > 0 {
		query += " ORDER BY indexed_at DESC LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		done(err)
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Error("error closing rows: %v", err)
		}
	}()

	var result []MetadataRow
	for rows.Next() {
		var row MetadataRow
		if err := rows.Scan(&row.Path, &row.Exif); err != nil {
			done(err)
			return nil, err
		}
		result = append(result, row)
	}

	err = rows.Err()
	done(err)
	return result, err
}

// CountCustomTagged returns how many of the given images carry at least one
// custom tag.
func (d *Database) CountCustomTagged(ctx context.Context, imageIDs []int64) (int, error) {
	if len(imageIDs) == 0 {
		return 0, nil
	}

	done := observeQuery("count_custom_tagged")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT it.image_id)
		FROM image_tags it
		INNER JOIN tags t ON it.tag_id = t.id
		WHERE it.image_id IN (%s)
		AND t.type = 'custom'
	`, placeholders(len(imageIDs)))

	var count int
	err := d.db.QueryRowContext(ctx, query, idArgs(imageIDs)...).Scan(&count)
	done(err)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CustomTagCounts returns the custom-tag frequency histogram over the given
// images, ordered by count descending with tag id ascending as tie-break so
// the top-K is deterministic.
func (d *Database) CustomTagCounts(ctx context.Context, imageIDs []int64, limit int) ([]TagCount, error) {
	if len(imageIDs) == 0 {
		return nil, nil
	}

	done := observeQuery("custom_tag_counts")

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.type, COUNT(*) as count
		FROM image_tags it
		INNER JOIN tags t ON it.tag_id = t.id
		WHERE it.image_id IN (%s)
		AND t.type = 'custom'
		GROUP BY t.id
		ORDER BY count DESC, t.id ASC
		LIMIT ?
	`, placeholders(len(imageIDs)))

	args := append(idArgs(imageIDs), limit)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		done(err)
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Error("error closing rows: %v", err)
		}
	}()

	var result []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.TagID, &tc.Name, &tc.Type, &tc.Count); err != nil {
			done(err)
			return nil, err
		}
		result = append(result, tc)
	}

	err = rows.Err()
	done(err)
	return result, err
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
