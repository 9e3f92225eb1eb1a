package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// newTestDB creates a database in a temporary directory.
func newTestDB(t *testing.T) *Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	d, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return d
}

// seedImage inserts an image row and fails the test on error.
func seedImage(t *testing.T, d *Database, path, exif string, indexedAt time.Time) int64 {
	t.Helper()

	id, err := d.UpsertImage(context.Background(), path, exif, indexedAt)
	if err != nil {
		t.Fatalf("failed to seed image %s: %v", path, err)
	}
	return id
}

// seedTag creates a tag and links it to the given images.
func seedTag(t *testing.T, d *Database, name, tagType string, imageIDs ...int64) int64 {
	t.Helper()

	ctx := context.Background()
	tagID, err := d.GetOrCreateTag(ctx, name, tagType)
	if err != nil {
		t.Fatalf("failed to create tag %s: %v", name, err)
	}
	for _, id := range imageIDs {
		if err := d.TagImage(ctx, id, tagID); err != nil {
			t.Fatalf("failed to tag image %d with %s: %v", id, name, err)
		}
	}
	return tagID
}

func TestImagesUnderFolder(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	seedImage(t, d, filepath.Join("/media", "photos", "a.png"), "", base)
	seedImage(t, d, filepath.Join("/media", "photos", "sub", "b.png"), "", base.Add(time.Minute))
	seedImage(t, d, filepath.Join("/media", "other", "c.png"), "", base.Add(2*time.Minute))

	rows, err := d.ImagesUnderFolder(ctx, filepath.Join("/media", "photos"), 0)
	if err != nil {
		t.Fatalf("ImagesUnderFolder failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows under /media/photos, want 2", len(rows))
	}

	// Prefix matching must not leak sibling folders
	for _, row := range rows {
		if row.Path == filepath.Join("/media", "other", "c.png") {
			t.Errorf("row from sibling folder leaked into result: %s", row.Path)
		}
	}
}

func TestImagesUnderFolderLimit(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	oldest := seedImage(t, d, filepath.Join("/media", "photos", "old.png"), "", base)
	seedImage(t, d, filepath.Join("/media", "photos", "mid.png"), "", base.Add(time.Minute))
	newest := seedImage(t, d, filepath.Join("/media", "photos", "new.png"), "", base.Add(2*time.Minute))

	rows, err := d.ImagesUnderFolder(ctx, filepath.Join("/media", "photos"), 2)
	if err != nil {
		t.Fatalf("ImagesUnderFolder failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows with limit 2, want 2", len(rows))
	}

	// Limit keeps the most recently indexed rows
	if rows[0].ID != newest {
		t.Errorf("first row id = %d, want newest %d", rows[0].ID, newest)
	}
	for _, row := range rows {
		if row.ID == oldest {
			t.Errorf("oldest row should have been cut off by the limit")
		}
	}
}

func TestImagesWithMetadata(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	seedImage(t, d, filepath.Join("/media", "photos", "a.png"), "masterpiece\nSteps: 20", base)
	seedImage(t, d, filepath.Join("/media", "photos", "b.png"), "", base)

	rows, err := d.ImagesWithMetadata(ctx, filepath.Join("/media", "photos"), 0)
	if err != nil {
		t.Fatalf("ImagesWithMetadata failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows with metadata, want 1", len(rows))
	}
	if rows[0].Exif != "masterpiece\nSteps: 20" {
		t.Errorf("unexpected exif: %q", rows[0].Exif)
	}
}

func TestCountCustomTagged(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()
	base := time.Now()

	a := seedImage(t, d, filepath.Join("/media", "p", "a.png"), "", base)
	b := seedImage(t, d, filepath.Join("/media", "p", "b.png"), "", base)
	c := seedImage(t, d, filepath.Join("/media", "p", "c.png"), "", base)

	seedTag(t, d, "landscape", "custom", a, b)
	// System tags never count toward "tagged"
	seedTag(t, d, "auto-detected", "system", c)

	count, err := d.CountCustomTagged(ctx, []int64{a, b, c})
	if err != nil {
		t.Fatalf("CountCustomTagged failed: %v", err)
	}
	if count != 2 {
		t.Errorf("CountCustomTagged = %d, want 2", count)
	}

	// Empty input short-circuits without touching the database
	count, err = d.CountCustomTagged(ctx, nil)
	if err != nil || count != 0 {
		t.Errorf("CountCustomTagged(nil) = %d, %v; want 0, nil", count, err)
	}
}

func TestCustomTagCounts(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()
	base := time.Now()

	a := seedImage(t, d, filepath.Join("/media", "p", "a.png"), "", base)
	b := seedImage(t, d, filepath.Join("/media", "p", "b.png"), "", base)
	c := seedImage(t, d, filepath.Join("/media", "p", "c.png"), "", base)

	popular := seedTag(t, d, "portrait", "custom", a, b, c)
	tieOne := seedTag(t, d, "sunset", "custom", a)
	tieTwo := seedTag(t, d, "winter", "custom", b)
	seedTag(t, d, "machine-label", "system", a, b, c)

	counts, err := d.CustomTagCounts(ctx, []int64{a, b, c}, 10)
	if err != nil {
		t.Fatalf("CustomTagCounts failed: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("got %d tag counts, want 3 (system tags excluded)", len(counts))
	}

	if counts[0].TagID != popular || counts[0].Count != 3 {
		t.Errorf("top tag = %+v, want tag %d with count 3", counts[0], popular)
	}

	// Equal counts order by tag id ascending
	if counts[1].TagID != tieOne || counts[2].TagID != tieTwo {
		t.Errorf("tie-break order = [%d %d], want [%d %d]",
			counts[1].TagID, counts[2].TagID, tieOne, tieTwo)
	}

	// Limit truncates the histogram
	counts, err = d.CustomTagCounts(ctx, []int64{a, b, c}, 1)
	if err != nil {
		t.Fatalf("CustomTagCounts with limit failed: %v", err)
	}
	if len(counts) != 1 || counts[0].TagID != popular {
		t.Errorf("limited histogram = %+v, want only tag %d", counts, popular)
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()

	if _, err := d.GetSetting(ctx, "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetSetting(missing) error = %v, want sql.ErrNoRows", err)
	}

	if err := d.SetSetting(ctx, "stopwords", `["a","b"]`); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	value, err := d.GetSetting(ctx, "stopwords")
	if err != nil || value != `["a","b"]` {
		t.Errorf("GetSetting = %q, %v; want stored value", value, err)
	}

	// Upsert replaces
	if err := d.SetSetting(ctx, "stopwords", `["c"]`); err != nil {
		t.Fatalf("SetSetting overwrite failed: %v", err)
	}
	value, _ = d.GetSetting(ctx, "stopwords")
	if value != `["c"]` {
		t.Errorf("GetSetting after overwrite = %q, want [\"c\"]", value)
	}
}

func TestFolderStatsRoundTrip(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()
	folder := filepath.Join("/media", "photos")

	got, err := d.GetFolderStats(ctx, folder)
	if err != nil {
		t.Fatalf("GetFolderStats failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetFolderStats on empty cache = %+v, want nil", got)
	}

	first := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := d.PutFolderStats(ctx, folder, `{"file_count":1}`, first); err != nil {
		t.Fatalf("PutFolderStats failed: %v", err)
	}

	got, err = d.GetFolderStats(ctx, folder)
	if err != nil {
		t.Fatalf("GetFolderStats failed: %v", err)
	}
	if got == nil || got.Stats != `{"file_count":1}` {
		t.Fatalf("GetFolderStats = %+v, want stored record", got)
	}
	if !got.ComputedAt.Equal(first) {
		t.Errorf("ComputedAt = %v, want %v", got.ComputedAt, first)
	}

	// Replace supersedes the old record
	second := time.Now().Truncate(time.Second)
	if err := d.PutFolderStats(ctx, folder, `{"file_count":2}`, second); err != nil {
		t.Fatalf("PutFolderStats overwrite failed: %v", err)
	}
	got, _ = d.GetFolderStats(ctx, folder)
	if got == nil || got.Stats != `{"file_count":2}` || !got.ComputedAt.Equal(second) {
		t.Errorf("GetFolderStats after overwrite = %+v", got)
	}

	if err := d.DeleteFolderStats(ctx, folder); err != nil {
		t.Fatalf("DeleteFolderStats failed: %v", err)
	}
	got, _ = d.GetFolderStats(ctx, folder)
	if got != nil {
		t.Errorf("GetFolderStats after delete = %+v, want nil", got)
	}
}

func TestUpsertImageReplaces(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	ctx := context.Background()
	path := filepath.Join("/media", "p", "a.png")

	first := seedImage(t, d, path, "old", time.Now().Add(-time.Hour))
	second := seedImage(t, d, path, "new", time.Now())
	if first != second {
		t.Errorf("upsert created a new row: id %d then %d", first, second)
	}

	rows, err := d.ImagesWithMetadata(ctx, filepath.Join("/media", "p"), 0)
	if err != nil {
		t.Fatalf("ImagesWithMetadata failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Exif != "new" {
		t.Errorf("rows after upsert = %+v, want single row with new exif", rows)
	}
}
