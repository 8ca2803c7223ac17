// Package server provides the HTTP control surface for the Mudra engine:
// catalog endpoints, playback control and the keyframe stream.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/catalog"
	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Catalog   *catalog.Catalog
	Player    *player.Controller
}

// Server represents the HTTP server for the Mudra engine.
type Server struct {
	config Config
	mux    *http.ServeMux
	frames *FrameHandler
	start  time.Time
}

// New creates a new Server with the given configuration. When a player is
// configured the frame stream handler is attached to it as the mixer and
// its ticker becomes the render clock.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register action catalog handler if Catalog is configured
	if s.config.Catalog != nil {
		actionsHandler := api.NewActionsHandler(s.config.Catalog, s.config.Store)
		s.mux.Handle("/api/actions", actionsHandler)
		s.mux.Handle("/api/actions/", actionsHandler)
	}

	// Register playback control endpoints if Player is configured
	if s.config.Player != nil && s.config.Catalog != nil {
		playbackHandler := api.NewPlaybackHandler(s.config.Catalog, s.config.Player)
		s.mux.Handle("/api/playback/", playbackHandler)
	}

	// Register the keyframe stream and wire it up as the player's mixer
	if s.config.Player != nil {
		s.frames = NewFrameHandler(s.config.Player)
		s.config.Player.SetMixer(s.frames)
		s.mux.Handle("/api/frames", s.frames)
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

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Close stops the frame stream ticker.
func (s *Server) Close() {
	if s.frames != nil {
		s.frames.Close()
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
