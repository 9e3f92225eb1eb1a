package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"media-stats/internal/database"
	"media-stats/internal/scheduler"
	"media-stats/internal/startup"
	"media-stats/internal/stats"
	"media-stats/internal/textanalysis"
)

func newTestRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()

	mediaDir := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := database.New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	statsService := stats.New(db, stats.Config{TTL: time.Hour})
	sched := scheduler.New(statsService, 2, 0)
	sched.Start()
	t.Cleanup(sched.Stop)

	h := New(db, statsService, sched, &startup.Config{MediaDir: mediaDir})

	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api/stats").Subrouter()
	api.HandleFunc("/folder", h.GetFolderStats).Methods("GET")
	api.HandleFunc("/refresh", h.RefreshStats).Methods("POST")
	api.HandleFunc("/pending", h.GetPendingJobs).Methods("GET")
	api.HandleFunc("/stopwords", h.GetStopwords).Methods("GET")
	api.HandleFunc("/stopwords", h.PutStopwords).Methods("PUT")

	return r, mediaDir
}

func doRequest(t *testing.T, router *mux.Router, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestGetFolderStatsDefaultsToMediaDir(t *testing.T) {
	t.Parallel()

	router, mediaDir := newTestRouter(t)

	if err := os.WriteFile(filepath.Join(mediaDir, "a.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w := doRequest(t, router, http.MethodGet, "/api/stats/folder", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var result stats.Result
	decodeBody(t, w, &result)

	if result.FolderPath != mediaDir {
		t.Errorf("FolderPath = %q, want %q", result.FolderPath, mediaDir)
	}
	if result.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", result.FileCount)
	}
	if result.CacheInfo.IsCached {
		t.Error("first request reported a cache hit")
	}

	// Second request is served from cache
	w = doRequest(t, router, http.MethodGet, "/api/stats/folder", nil)
	decodeBody(t, w, &result)
	if !result.CacheInfo.IsCached {
		t.Error("second request missed the cache")
	}
}

func TestGetFolderStatsRelativePath(t *testing.T) {
	t.Parallel()

	router, mediaDir := newTestRouter(t)

	if err := os.MkdirAll(filepath.Join(mediaDir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create subfolder: %v", err)
	}

	w := doRequest(t, router, http.MethodGet, "/api/stats/folder?path=sub", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var result stats.Result
	decodeBody(t, w, &result)
	if result.FolderPath != filepath.Join(mediaDir, "sub") {
		t.Errorf("FolderPath = %q, want subfolder path", result.FolderPath)
	}
}

func TestGetFolderStatsRejectsEscape(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	for _, path := range []string{"../outside", "..", "sub/../../outside"} {
		w := doRequest(t, router, http.MethodGet, "/api/stats/folder?path="+path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("path %q: status = %d, want 400", path, w.Code)
		}
	}
}

func TestGetFolderStatsMissingFolder(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/stats/folder?path=does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}

func TestGetFolderStatsBadLimit(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	for _, limit := range []string{"abc", "-1"} {
		w := doRequest(t, router, http.MethodGet, "/api/stats/folder?limit="+limit, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want 400", limit, w.Code)
		}
	}
}

func TestRefreshStats(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	body, _ := json.Marshal(RefreshRequest{
		Paths:     []string{""},
		Recursive: true,
		Force:     true,
	})

	w := doRequest(t, router, http.MethodPost, "/api/stats/refresh", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp map[string]int
	decodeBody(t, w, &resp)
	if resp["submitted"] != 1 {
		t.Errorf("submitted = %d, want 1", resp["submitted"])
	}
}

func TestRefreshStatsValidation(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	// Empty paths
	w := doRequest(t, router, http.MethodPost, "/api/stats/refresh", []byte(`{"paths":[]}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty paths: status = %d, want 400", w.Code)
	}

	// Malformed body
	w = doRequest(t, router, http.MethodPost, "/api/stats/refresh", []byte(`{not json`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", w.Code)
	}

	// Escaping path
	w = doRequest(t, router, http.MethodPost, "/api/stats/refresh", []byte(`{"paths":["../outside"]}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("escaping path: status = %d, want 400", w.Code)
	}
}

func TestGetPendingJobs(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/stats/pending", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Count int      `json:"count"`
		Paths []string `json:"paths"`
	}
	decodeBody(t, w, &resp)
	if resp.Count != len(resp.Paths) {
		t.Errorf("count %d does not match paths length %d", resp.Count, len(resp.Paths))
	}
}

func TestStopwordsEndpoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	// Defaults before anything is saved
	w := doRequest(t, router, http.MethodGet, "/api/stats/stopwords", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string][]string
	decodeBody(t, w, &resp)
	if len(resp["stopwords"]) != len(textanalysis.DefaultStopwordList) {
		t.Errorf("default stopwords length = %d, want %d",
			len(resp["stopwords"]), len(textanalysis.DefaultStopwordList))
	}

	// Save a custom list and read it back
	body, _ := json.Marshal(StopwordsRequest{Stopwords: []string{"masterpiece", "quality"}})
	w = doRequest(t, router, http.MethodPut, "/api/stats/stopwords", body)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/api/stats/stopwords", nil)
	decodeBody(t, w, &resp)
	if len(resp["stopwords"]) != 2 || resp["stopwords"][0] != "masterpiece" {
		t.Errorf("stopwords after PUT = %v, want the saved list", resp["stopwords"])
	}

	// Missing stopwords field
	w = doRequest(t, router, http.MethodPut, "/api/stats/stopwords", []byte(`{}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("PUT without stopwords: status = %d, want 400", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", w.Code)
	}

	var health HealthResponse
	decodeBody(t, w, &health)
	if health.Status != statusHealthy {
		t.Errorf("health status = %q, want %q", health.Status, statusHealthy)
	}

	w = doRequest(t, router, http.MethodGet, "/livez", nil)
	if w.Code != http.StatusOK {
		t.Errorf("/livez status = %d, want 200", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/readyz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("/readyz status = %d, want 200", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/version", nil)
	if w.Code != http.StatusOK {
		t.Errorf("/version status = %d, want 200", w.Code)
	}

	var info startup.BuildInfo
	decodeBody(t, w, &info)
	if info.Version == "" {
		t.Error("/version returned empty version")
	}
}
