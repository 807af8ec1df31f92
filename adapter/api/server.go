// Package api serves taskrank over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/taskrank/internal/app"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// CORSOrigins lists the origins allowed to call the API. "*" allows any.
	CORSOrigins []string
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "127.0.0.1:8000",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server is the HTTP API server.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	logger *slog.Logger
	c      *app.Container
}

// NewServer creates a server over the container's handlers.
func NewServer(cfg ServerConfig, c *app.Container) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		logger: c.Logger,
		c:      c,
	}
	s.registerRoutes()

	var handler http.Handler = s.mux
	handler = corsMiddleware(cfg.CORSOrigins, handler)
	handler = s.observe(handler)
	handler = requestIDMiddleware(handler)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// registerRoutes sets up the API routes. Collection routes answer with and
// without a trailing slash.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)

	both := func(method, path string, h http.HandlerFunc) {
		s.mux.HandleFunc(method+" "+path, h)
		s.mux.HandleFunc(method+" "+path+"/{$}", h)
	}

	both("POST", "/api/tasks/analyze", s.handleAnalyze)
	both("POST", "/api/tasks/suggest", s.handleSuggest)
	both("GET", "/api/strategies", s.handleStrategies)

	both("GET", "/api/lists", s.handleListLists)
	s.mux.HandleFunc("GET /api/lists/{name}", s.handleGetList)
	s.mux.HandleFunc("PUT /api/lists/{name}", s.handleSaveList)
	s.mux.HandleFunc("DELETE /api/lists/{name}", s.handleDeleteList)
	both("POST", "/api/lists/{name}/analyze", s.handleAnalyzeList)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.c.Health.Check(r.Context())
	status := http.StatusOK
	if report.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.c.Metrics.Snapshot())
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}
