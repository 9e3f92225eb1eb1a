package stats

import (
	"io/fs"
	"os"
	"path/filepath"

	"media-stats/internal/logging"
	"media-stats/internal/mediatypes"
)

// fsCounts holds raw filesystem totals for a folder.
type fsCounts struct {
	FileCount      int
	SubfolderCount int
	TotalSizeBytes int64
	MediaFileCount int
}

// countEntries walks a folder and counts files, subfolders, bytes, and media
// files. Unreadable entries are logged and skipped; the walk never fails
// outright. The analysis limit does not apply here: the filesystem numbers
// always reflect the full tree.
func countEntries(folder string, recursive bool) fsCounts {
	var counts fsCounts

	if !recursive {
		entries, err := os.ReadDir(folder)
		if err != nil {
			logging.Error("error reading directory %s: %v", folder, err)
			return counts
		}
		for _, entry := range entries {
			if entry.IsDir() {
				counts.SubfolderCount++
				continue
			}
			info, err := entry.Info()
			if err != nil {
				logging.Debug("error stating %s: %v", entry.Name(), err)
				continue
			}
			counts.FileCount++
			counts.TotalSizeBytes += info.Size()
			if mediatypes.IsMediaFile(entry.Name()) {
				counts.MediaFileCount++
			}
		}
		return counts
	}

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Warn("error accessing path %s: %v", path, err)
			return nil // Continue walking
		}
		if path == folder {
			return nil
		}
		if d.IsDir() {
			counts.SubfolderCount++
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logging.Debug("error stating %s: %v", path, err)
			return nil
		}
		counts.FileCount++
		counts.TotalSizeBytes += info.Size()
		if mediatypes.IsMediaFile(d.Name()) {
			counts.MediaFileCount++
		}
		return nil
	})
	if err != nil {
		logging.Error("error counting files in %s: %v", folder, err)
	}

	return counts
}
