package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/publish"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	maxRequestBytes = 1 << 20
	maxImageSize    = 2000
	maxDepthLimit   = 16

	// UploadKeyHeader names the object key of an uploaded render
	UploadKeyHeader = "X-Upload-Key"
)

// RenderRequest is the body of POST /api/render. Either Scene names a
// built-in or file scene, or Description carries a full scene.
type RenderRequest struct {
	Scene       string             `json:"scene,omitempty"`
	Description *scene.Description `json:"description,omitempty"`
	Width       *int               `json:"width,omitempty"`
	Height      *int               `json:"height,omitempty"`
	MaxDepth    *int               `json:"maxDepth,omitempty"`
	Gamma       *float64           `json:"gamma,omitempty"`
	Upload      bool               `json:"upload,omitempty"`
	Format      string             `json:"format,omitempty"` // "png" (default) or "json"
}

// RenderResponse is returned when the request asks for JSON
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Stats     Stats            `json:"stats"`
	UploadKey string           `json:"uploadKey,omitempty"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	PrimaryRays     int64 `json:"primaryRays"`
	SecondaryRays   int64 `json:"secondaryRays"`
	ShadowRays      int64 `json:"shadowRays"`
	MaxDepthReached int   `json:"maxDepthReached"`
	Workers         int   `json:"workers"`

	AverageLuminance float64 `json:"averageLuminance"` // Rec. 709, 0 means all black
}

// errRenderTimeout reports a render that ran past the configured timeout
var errRenderTimeout = errors.New("render timeout")

// handleRender renders a scene and returns the image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	req, err := s.parseRenderRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	renderID := s.nextRenderID()
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(renderID, consoleChan)

	sceneObj, name, err := s.createScene(req, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.Config{
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		MaxDepth:   s.cfg.MaxDepth,
		NumWorkers: s.cfg.Workers,
	}
	if req.Width != nil {
		config.Width = *req.Width
	}
	if req.Height != nil {
		config.Height = *req.Height
	}
	if req.MaxDepth != nil {
		config.MaxDepth = *req.MaxDepth
	}
	config.MaxDepth = limitDepth(config.MaxDepth, sceneObj.Camera.MaxDepth, logger)
	gamma := s.cfg.Gamma
	if req.Gamma != nil {
		gamma = *req.Gamma
	}

	rt, err := renderer.NewRaytracer(sceneObj, config, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	startTime := time.Now()
	img, stats, err := s.runRenderWithTimeout(r.Context(), rt, gamma)
	if err != nil {
		log.Printf("[%s] Render failed: %v", renderID, err)
		if errors.Is(err, errRenderTimeout) {
			writeError(w, http.StatusGatewayTimeout, "Render timed out")
		} else {
			writeError(w, http.StatusInternalServerError, "Render failed")
		}
		return
	}

	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image")
		return
	}

	var key string
	if req.Upload {
		if s.opts.Uploader == nil {
			writeError(w, http.StatusServiceUnavailable, "Uploads are not configured")
			return
		}
		key = publish.ObjectKey(name, time.Now(), ".png")
		if err := s.opts.Uploader.Upload(r.Context(), key, buf.Bytes(), publish.ContentType(".png")); err != nil {
			log.Printf("[%s] Upload failed: %v", renderID, err)
			writeError(w, http.StatusInternalServerError, "Upload failed")
			return
		}
	}

	log.Printf("[%s] Render of %s finished in %v", renderID, name, time.Since(startTime))

	if req.Format == "json" {
		writeJSON(w, http.StatusOK, RenderResponse{
			ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
			Width:     config.Width,
			Height:    config.Height,
			Stats:     toStats(stats, img),
			UploadKey: key,
			Console:   drainConsole(consoleChan),
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if key != "" {
		w.Header().Set(UploadKeyHeader, key)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[%s] Failed to write image: %v", renderID, err)
	}
}

// parseRenderRequest decodes and validates the request body
func (s *Server) parseRenderRequest(w http.ResponseWriter, r *http.Request) (*RenderRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	defer r.Body.Close()

	var req RenderRequest
	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	if req.Scene != "" && req.Description != nil {
		return nil, fmt.Errorf("give either scene or description, not both")
	}
	if req.Scene == "" && req.Description == nil {
		req.Scene = "default"
	}
	if err := checkRange("width", req.Width, 1, maxImageSize); err != nil {
		return nil, err
	}
	if err := checkRange("height", req.Height, 1, maxImageSize); err != nil {
		return nil, err
	}
	if err := checkRange("maxDepth", req.MaxDepth, 0, maxDepthLimit); err != nil {
		return nil, err
	}
	if req.Gamma != nil && (*req.Gamma <= 0 || *req.Gamma > 5) {
		return nil, fmt.Errorf("gamma must be in (0, 5], got: %g", *req.Gamma)
	}
	switch req.Format {
	case "", "png", "json":
	default:
		return nil, fmt.Errorf("unknown format %q", req.Format)
	}
	return &req, nil
}

// createScene builds the requested scene and a short name for it. Posted
// descriptions may only name assets inside the asset directory, and scene
// references are limited to built-in names and file: IDs.
func (s *Server) createScene(req *RenderRequest, logger core.Logger) (*scene.Scene, string, error) {
	opts := scene.BuildOptions{AssetDir: s.opts.AssetDir, Logger: logger}

	if req.Description != nil {
		sceneObj, err := req.Description.BuildConfined(s.opts.AssetDir, logger)
		if err != nil {
			return nil, "", fmt.Errorf("invalid scene description: %w", err)
		}
		name := req.Description.Name
		if name == "" {
			name = "description"
		}
		return sceneObj, name, nil
	}

	if strings.EqualFold(filepath.Ext(req.Scene), ".json") {
		return nil, "", fmt.Errorf("unknown scene: %s", req.Scene)
	}
	sceneObj, err := scene.Load(req.Scene, s.opts.ScenesDir, opts)
	if err != nil {
		return nil, "", fmt.Errorf("unknown scene: %s", req.Scene)
	}
	return sceneObj, strings.TrimPrefix(req.Scene, "file:"), nil
}

// limitDepth returns the depth to render with, capping both the configured
// depth and the scene's own depth at maxDepthLimit
func limitDepth(configured, sceneDepth int, logger core.Logger) int {
	depth := configured
	if depth < 0 {
		depth = sceneDepth
	}
	if depth > maxDepthLimit {
		logger.Printf("Warning: max depth %d capped at %d\n", depth, maxDepthLimit)
		return maxDepthLimit
	}
	return configured
}

// runRenderWithTimeout renders under the configured timeout. Panics in the
// row workers come back from Render as errors.
func (s *Server) runRenderWithTimeout(parent context.Context, rt *renderer.Raytracer, gamma float64) (img image.Image, stats renderer.RenderStats, err error) {
	ctx, cancel := context.WithTimeout(parent, s.cfg.RenderTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in renderer: %v", r)
		}
	}()

	stats, err = rt.Render(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, stats, errRenderTimeout
		}
		return nil, stats, err
	}
	return rt.Image(gamma), stats, nil
}

func toStats(stats renderer.RenderStats, img image.Image) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		PrimaryRays:     stats.PrimaryRays,
		SecondaryRays:   stats.SecondaryRays,
		ShadowRays:      stats.ShadowRays,
		MaxDepthReached: stats.MaxDepthReached,
		Workers:         stats.Workers,

		AverageLuminance: renderer.CalculateAverageLuminance(img),
	}
}
