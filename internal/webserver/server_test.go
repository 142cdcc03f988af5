package webserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/evaloop/internal/loader"
	"github.com/mwiater/evaloop/internal/results"
)

func testOutcome() loader.Outcome {
	return loader.Outcome{
		Kind:   loader.Loaded,
		Source: "results.json",
		Document: results.Document{
			LastUpdated: "2024-02-01",
			Models: []results.ModelResult{
				{Rank: 1, Name: "alpha", Organization: "A", ASLScore: 7.9, SuccessRate: 0.91},
				{Rank: 2, Name: "beta", Organization: "B", ASLScore: 7.2, SuccessRate: 0.95},
				{Rank: 3, Name: "gamma", Organization: "A", ASLScore: 6.8, SuccessRate: 0.70},
			},
		},
	}
}

func newTestServer(t *testing.T, outcome loader.Outcome) http.Handler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<!DOCTYPE html><title>EvaLoop</title>"), 0o644))
	srv, err := New(Config{Port: 0, SiteDir: dir, Outcome: outcome})
	require.NoError(t, err)
	return srv.Handler()
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t, testOutcome()), "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "loaded", body["outcome"])
	assert.Equal(t, false, body["degraded"])
}

func TestServesSiteFiles(t *testing.T) {
	rec := get(t, newTestServer(t, testOutcome()), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>EvaLoop</title>")

	rec = get(t, newTestServer(t, testOutcome()), "/missing.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOverviewEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t, testOutcome()), "/api/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body["totalModels"])
	assert.InDelta(t, 7.9, body["highestASL"], 1e-9)
}

func TestModelsEndpointFiltersAndSorts(t *testing.T) {
	handler := newTestServer(t, testOutcome())

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"default rank order", "/api/models", []string{"alpha", "beta", "gamma"}},
		{"organization filter", "/api/models?org=A", []string{"alpha", "gamma"}},
		{"success descending", "/api/models?sort=success&desc=true", []string{"beta", "alpha", "gamma"}},
		{"score range", "/api/models?range=7-8&sort=asl", []string{"beta", "alpha"}},
		{"no matches", "/api/models?org=nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handler, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			var models []results.ModelResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
			names := make([]string, 0, len(models))
			for _, m := range models {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestModelsEndpointRejectsBadQueries(t *testing.T) {
	handler := newTestServer(t, testOutcome())
	for _, target := range []string{"/api/models?sort=size", "/api/models?range=8-7", "/api/models?desc=maybe"} {
		rec := get(t, handler, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAPIUnavailableWithoutResults(t *testing.T) {
	handler := newTestServer(t, loader.Outcome{Kind: loader.Failed})
	assert.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/api/models").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, handler, "/api/overview").Code)
	assert.Equal(t, http.StatusOK, get(t, handler, "/api/health").Code)
}

func TestNewRejectsMissingSiteDir(t *testing.T) {
	_, err := New(Config{SiteDir: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	srv, err := New(Config{Port: 18431, SiteDir: dir, Outcome: testOutcome()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestListenAndServeReturnsWhenPortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	srv, err := New(Config{Port: port, SiteDir: t.TempDir(), Outcome: testOutcome()})
	require.NoError(t, err)

	before := runtime.NumGoroutine()
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP server error")
	case <-time.After(6 * time.Second):
		t.Fatal("ListenAndServe did not return after the listener failed")
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 20*time.Millisecond, "shutdown goroutine left running")
}
