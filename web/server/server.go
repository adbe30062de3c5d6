package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/publish"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// AccessKeyHeader carries the shared secret when POST_KEY is configured
const AccessKeyHeader = "X-Access-Key"

// Options holds the server's collaborators
type Options struct {
	ScenesDir string           // Directory of .json scene files listed by /api/scenes
	AssetDir  string           // Textures and models for built-in scenes and posted descriptions
	Uploader  publish.Uploader // Optional, nil disables uploads
}

// Server handles web requests for the raytracer
type Server struct {
	cfg      *config.Config
	opts     Options
	renderID atomic.Int64
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, opts Options) *Server {
	return &Server{cfg: cfg, opts: opts}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start serves the API until the listener fails
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.cfg.ServerAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Starting web server on %s", s.cfg.ServerAddress)
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	scenes, err := scene.ListAllScenes(s.opts.ScenesDir)
	if err != nil {
		log.Printf("Failed to list scenes: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list scenes")
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// authorized checks the access key when one is configured
func (s *Server) authorized(r *http.Request) bool {
	return s.cfg.PostKey == "" || r.Header.Get(AccessKeyHeader) == s.cfg.PostKey
}

func (s *Server) nextRenderID() string {
	return fmt.Sprintf("render-%d", s.renderID.Add(1))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// checkRange validates an optional request value
func checkRange(key string, value *int, min, max int) error {
	if value != nil && (*value < min || *value > max) {
		return fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, *value)
	}
	return nil
}
