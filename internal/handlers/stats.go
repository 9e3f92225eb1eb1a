package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"media-stats/internal/logging"
	"media-stats/internal/stats"
)

// GetFolderStats returns the statistics record for a folder, computing it
// synchronously when the cache has nothing fresh.
//
// Query parameters:
//
//	path      folder path, absolute or relative to the media directory
//	recursive include subfolders (default true)
//	refresh   force recomputation even when the cache is fresh
//	metadata  include the model/size metadata summary (default true)
//	limit     cap on catalog rows analyzed, 0 for no cap
func (h *Handlers) GetFolderStats(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.resolveFolder(r.URL.Query().Get("path"))
	if !ok {
		writeJSONError(w, "path is outside the media directory", http.StatusBadRequest)
		return
	}

	recursive := parseBool(r, "recursive", true)
	refresh := parseBool(r, "refresh", false)
	metadata := parseBool(r, "metadata", true)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSONError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	result, err := h.stats.GetOrCompute(r.Context(), folder, recursive, refresh, metadata, limit)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidFolder) {
			writeJSONError(w, "folder not found", http.StatusNotFound)
			return
		}
		logging.Error("error computing stats for %s: %v", folder, err)
		writeJSONError(w, "failed to compute folder statistics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}

// RefreshRequest is the body of POST /api/stats/refresh.
type RefreshRequest struct {
	Paths     []string `json:"paths"`
	Recursive bool     `json:"recursive"`
	Limit     int      `json:"limit"`
	Force     bool     `json:"force"`
}

// RefreshStats queues background recomputation jobs for a set of folders.
// Folders already pending or with a fresh cache entry are skipped unless
// force is set.
func (h *Handlers) RefreshStats(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Paths) == 0 {
		writeJSONError(w, "paths is required", http.StatusBadRequest)
		return
	}

	folders := make([]string, 0, len(req.Paths))
	for _, raw := range req.Paths {
		folder, ok := h.resolveFolder(raw)
		if !ok {
			writeJSONError(w, "path is outside the media directory: "+raw, http.StatusBadRequest)
			return
		}
		folders = append(folders, folder)
	}

	submitted := h.scheduler.BatchSubmit(r.Context(), folders, req.Recursive, req.Limit, req.Force)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]int{"submitted": submitted})
}

// GetPendingJobs lists the folders with a queued or running background job.
func (h *Handlers) GetPendingJobs(w http.ResponseWriter, _ *http.Request) {
	paths := h.scheduler.PendingPaths()

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{
		"count": len(paths),
		"paths": paths,
	})
}

// GetStopwords returns the stopword list used by prompt analysis.
func (h *Handlers) GetStopwords(w http.ResponseWriter, r *http.Request) {
	words, err := h.stats.StopwordList(r.Context())
	if err != nil {
		logging.Error("error reading stopwords: %v", err)
		writeJSONError(w, "failed to read stopwords", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string][]string{"stopwords": words})
}

// StopwordsRequest is the body of PUT /api/stats/stopwords.
type StopwordsRequest struct {
	Stopwords []string `json:"stopwords"`
}

// PutStopwords replaces the stopword list. The new list takes effect on the
// next computation; cached records are not invalidated.
func (h *Handlers) PutStopwords(w http.ResponseWriter, r *http.Request) {
	var req StopwordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Stopwords == nil {
		writeJSONError(w, "stopwords is required", http.StatusBadRequest)
		return
	}

	if err := h.stats.SaveStopwords(r.Context(), req.Stopwords); err != nil {
		logging.Error("error saving stopwords: %v", err)
		writeJSONError(w, "failed to save stopwords", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"count":  len(req.Stopwords),
	})
}
