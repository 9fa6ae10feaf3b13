// Package server provides the HTTP server for the gesture calculator.
package server

import (
	"net/http"
	"time"

	"github.com/ayusman/handycalc/internal/logger"
	"github.com/ayusman/handycalc/internal/metrics"
	"github.com/ayusman/handycalc/internal/server/api"
	"github.com/ayusman/handycalc/internal/session"
	"github.com/ayusman/handycalc/internal/store"
)

// Engine is the running calculator behind the API. *app.App satisfies it.
type Engine interface {
	api.Controller
	api.Recorder
	Subscribe() (<-chan session.Snapshot, func())
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       Engine
	Logger    logger.Logger

	// Metrics serves /metrics. Nil uses the default registry.
	Metrics http.Handler
}

// Server represents the HTTP server for the calculator.
type Server struct {
	config Config
	mux    *http.ServeMux
	log    logger.Logger
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	log := config.Logger
	if log == nil {
		log = logger.Named("server")
	}
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		log:    log,
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	metricsHandler := s.config.Metrics
	if metricsHandler == nil {
		metricsHandler = metrics.Handler()
	}
	s.mux.Handle("/metrics", metricsHandler)

	if s.config.App != nil {
		sessionHandler := api.NewSessionHandler(s.config.App)
		s.mux.Handle("/api/session", sessionHandler)
		s.mux.Handle("/api/session/", sessionHandler)

		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.App, s.config.Store, s.log.Named("settings")))
		s.mux.Handle("/api/events", NewEventsHandler(s.config.App, s.log.Named("events")))

		// Recordings need somewhere to live
		if s.config.Store != nil {
			recordingsHandler := api.NewRecordingsHandler(s.config.App, s.config.Store, s.log.Named("recordings"))
			s.mux.Handle("/api/recordings", recordingsHandler)
			s.mux.Handle("/api/recordings/", recordingsHandler)
		}
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return s.HTTPServer(addr).ListenAndServe()
}

// HTTPServer returns an http.Server for addr so callers can shut it down.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
