// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the dashboard HTTP API: session uploads, tracking
// job control, chart data, CSV export, and the rendered dashboard page.
// All state lives in an explicit session object threaded through handlers.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/serptrack/internal/archive"
	"github.com/pdiddy/serptrack/internal/metrics"
	"github.com/pdiddy/serptrack/internal/serp"
	"github.com/pdiddy/serptrack/internal/session"
	"github.com/pdiddy/serptrack/pkg/types"
)

// Server carries the dependencies of the dashboard handlers. Provider and
// archive are optional: without credentials the dashboard still serves
// uploaded data, and a missing archive only disables run history.
type Server struct {
	cfg      types.AppConfig
	session  *session.Session
	provider serp.Provider
	archive  *archive.Store
	logger   *slog.Logger

	mu  sync.Mutex
	job *trackJob
}

// New builds a server around the given session. provider and arch may be nil.
func New(cfg types.AppConfig, sess *session.Session, provider serp.Provider, arch *archive.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	metrics.Init()
	return &Server{
		cfg:      cfg,
		session:  sess,
		provider: provider,
		archive:  arch,
		logger:   logger,
	}
}

// Handler builds the chi router for the dashboard.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/dashboard", s.handleDashboard)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/track", s.handleTrackStart)
		r.Delete("/track", s.handleTrackCancel)
		r.Get("/track", s.handleTrackStatus)
		r.Post("/upload", s.handleUpload)
		r.Get("/table", s.handleTable)
		r.Get("/export", s.handleExport)
		r.Get("/history", s.handleHistory)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/sentiment", s.handleChartSentiment)
			r.Get("/rank", s.handleChartRank)
			r.Get("/title-length", s.handleChartTitleLength)
			r.Get("/wordcloud", s.handleChartWordCloud)
		})
	})

	return r
}

// Addr returns the listen address from config.
func (s *Server) Addr() string {
	host := s.cfg.Server.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := s.cfg.Server.Port
	if port == 0 {
		port = 8787
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// countRequests records per-route request counters.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RecordHTTPRequest(r.URL.Path, fmt.Sprintf("%d", sw.code))
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
