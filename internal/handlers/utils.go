package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"media-stats/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// resolveFolder validates that a requested path stays inside the media
// directory and returns its absolute form. The empty string means the media
// directory itself.
func (h *Handlers) resolveFolder(raw string) (string, bool) {
	if raw == "" {
		return h.mediaDir, true
	}

	folder := raw
	if !filepath.IsAbs(folder) {
		folder = filepath.Join(h.mediaDir, folder)
	}
	folder = filepath.Clean(folder)

	rel, err := filepath.Rel(h.mediaDir, folder)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return folder, true
}

// parseBool reads a query parameter as a boolean with a default.
func parseBool(r *http.Request, name string, def bool) bool {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def
	}
	switch strings.ToLower(value) {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	}
	return def
}
