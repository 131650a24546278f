// Package web serves the browser UI: a single embedded page plus a small
// JSON API over the summary and tour pipelines.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/repotour/repotour/internal/agent"
	"github.com/repotour/repotour/internal/config"
)

//go:embed static/*
var staticFiles embed.FS

// Server hosts the web UI over one shared pipeline. Each request runs the
// pipeline synchronously; only the per-session last result outlives a
// request.
type Server struct {
	pipeline  *agent.Pipeline
	cfg       *config.Config
	port      int
	server    *http.Server
	sessions  *sessionStore
	logger    *slog.Logger
	startTime time.Time
}

// NewServer creates a web server over the given pipeline.
func NewServer(pipeline *agent.Pipeline, cfg *config.Config, port int) *Server {
	if port == 0 {
		port = cfg.Web.Port
	}
	return &Server{
		pipeline:  pipeline,
		cfg:       cfg,
		port:      port,
		sessions:  newSessionStore(),
		logger:    slog.Default().With("component", "web"),
		startTime: time.Now(),
	}
}

// Start binds the listener and serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/result", s.handleResult)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.logger.Info("web UI listening", "addr", fmt.Sprintf("http://localhost:%d", s.port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the configured listen port.
func (s *Server) Port() int { return s.port }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"port":   s.port,
		"uptime": time.Since(s.startTime).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// CheckPortAvailable reports whether a TCP port can be bound.
func CheckPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
