package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/stats"
)

// registerRoutes sets up the API routes and the static site handler.
func registerRoutes(mux *http.ServeMux, cfg Config) error {
	info, err := os.Stat(cfg.SiteDir)
	if err != nil {
		return fmt.Errorf("site directory %s is not available: %w", cfg.SiteDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("site directory %s is not a directory", cfg.SiteDir)
	}

	mux.HandleFunc("GET /api/health", healthHandler(cfg))
	mux.HandleFunc("GET /api/overview", overviewHandler(cfg))
	mux.HandleFunc("GET /api/models", modelsHandler(cfg))
	mux.Handle("/", http.FileServer(http.Dir(cfg.SiteDir)))
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func healthHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"outcome":  cfg.Outcome.Kind.String(),
			"degraded": cfg.Outcome.Degraded(),
			"summary":  cfg.Outcome.Summary(),
		})
	}
}

func overviewHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if !cfg.Outcome.Usable() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": cfg.Outcome.Summary()})
			return
		}
		writeJSON(w, http.StatusOK, stats.NewOverview(cfg.Outcome.Document))
	}
}

// modelsHandler lists models, optionally filtered by ?org= and ?range=min-max
// and ordered by ?sort= with ?desc=true.
func modelsHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.Outcome.Usable() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": cfg.Outcome.Summary()})
			return
		}
		q := r.URL.Query()
		filter := leaderboard.Filter{Organization: q.Get("org")}
		if text := q.Get("range"); text != "" {
			lo, hi, err := leaderboard.ParseScoreRange(text)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			filter.MinScore, filter.MaxScore = results.Float(lo), results.Float(hi)
		}
		desc := false
		if text := q.Get("desc"); text != "" {
			v, err := strconv.ParseBool(text)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid desc value %q", text)})
				return
			}
			desc = v
		}
		key := q.Get("sort")
		if key == "" {
			key = leaderboard.SortRank
		}
		models, err := leaderboard.Sort(filter.Apply(cfg.Outcome.Document.Models), key, desc)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if models == nil {
			models = []results.ModelResult{}
		}
		writeJSON(w, http.StatusOK, models)
	}
}
