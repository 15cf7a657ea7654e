// Package server provides the HTTP and WebSocket surface for the Visiosson
// demo: catalog administration, static files for the front-end, and one
// interaction session per WebSocket connection.
package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/aviy453/visiosson/internal/catalog"
	"github.com/aviy453/visiosson/internal/facts"
	"github.com/aviy453/visiosson/internal/server/api"
	"github.com/aviy453/visiosson/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Catalog   *catalog.Catalog
	Provider  facts.Provider
	// ReadyDelay is passed through to each session's controller.
	ReadyDelay time.Duration
}

// Server represents the HTTP server for the Visiosson application.
type Server struct {
	config   Config
	mux      *http.ServeMux
	start    time.Time
	enabled  atomic.Bool
	sessions *SessionHandler
}

// New creates a new Server with the given configuration. Gesture processing
// starts enabled.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.enabled.Store(true)
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register catalog API handler if Store is configured
	if s.config.Store != nil {
		itemsHandler := api.NewItemsHandler(s.config.Store)
		s.mux.Handle("/api/items", itemsHandler)
		s.mux.Handle("/api/items/", itemsHandler)
	}

	// Register the session WebSocket endpoint if the interaction
	// collaborators are configured
	if s.config.Catalog != nil && s.config.Provider != nil {
		s.sessions = NewSessionHandler(s.config.Catalog, s.config.Provider, s.config.ReadyDelay, s.GestureEnabled)
		s.mux.Handle("/ws/session", s.sessions)
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

// SetGestureEnabled toggles gesture processing across all sessions. While
// disabled, incoming gesture samples are dropped; intents and layout reports
// still apply.
func (s *Server) SetGestureEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

// GestureEnabled reports whether gesture processing is enabled.
func (s *Server) GestureEnabled() bool {
	return s.enabled.Load()
}

// OnSessionCount sets the callback invoked when a demo session connects or
// disconnects. No-op when the session endpoint is not configured.
func (s *Server) OnSessionCount(fn func(n int)) {
	if s.sessions != nil {
		s.sessions.OnSessionCount(fn)
	}
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status":   "ok",
		"uptime":   uptime.String(),
		"gestures": s.GestureEnabled(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
