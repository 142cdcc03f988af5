// Package webserver serves a built site directory over HTTP along with a small
// JSON API over the loaded results.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mwiater/evaloop/internal/loader"
	"github.com/mwiater/evaloop/internal/logging"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host    string
	Port    int
	SiteDir string
	Outcome loader.Outcome
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg Config
	srv *http.Server
}

// New creates a server for the site in cfg.SiteDir.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.SiteDir == "" {
		cfg.SiteDir = "site"
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, cfg); err != nil {
		return nil, err
	}
	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           logRequests(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// It also returns when the listener fails, without leaving the shutdown goroutine behind.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logging.LogEvent("[SERVE] serving %s on http://%s", s.cfg.SiteDir, s.srv.Addr)

	stopped := make(chan struct{})
	defer func() { <-stopped }()
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	go func() {
		defer close(stopped)
		<-ctx.Done()
		logging.LogEvent("[SERVE] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			logging.LogEvent("[SERVE] shutdown error: %v", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogDebug("[SERVE] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
