package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// recordingLogger keeps every formatted message
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func TestCreateScene(t *testing.T) {
	dir := t.TempDir()
	sceneJSON := `{
		"name": "Tiny",
		"materials": [{"id": "red", "color": {"r": 1, "g": 0, "b": 0}}],
		"objects": [{"type": "sphere", "material_id": "red", "position": {"x": 0, "y": 0, "z": -3}, "radius": 1}],
		"lights": [{"type": "ambient", "intensity": 0.5}]
	}`
	if err := os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(sceneJSON), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"cylinders scene", "cylinders", false},
		{"shapes scene", "shapes", false},

		// Scene files
		{"file ID", "file:tiny", false},
		{"direct path", filepath.Join(dir, "tiny.json"), false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing file", filepath.Join(dir, "nonexistent.json"), true},
		{"path traversal", "file:../tiny", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, dir, t.TempDir(), nopLogger{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Errorf("Expected objects in scene '%s'", tt.sceneType)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene '%s' is invalid: %v", tt.sceneType, err)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	cfg := config.Default()
	opts, err := parseOptions([]string{
		"-scene", "shapes", "-width", "64", "-height", "48", "-depth", "2",
		"-workers", "3", "-gamma", "1", "-out", "x.bmp", "-thumbnail", "16", "-upload",
	}, cfg, io.Discard)
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}

	if opts.scene != "shapes" || opts.out != "x.bmp" || opts.thumbnail != 16 || !opts.upload {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if cfg.Width != 64 || cfg.Height != 48 || cfg.MaxDepth != 2 || cfg.Workers != 3 || cfg.Gamma != 1 {
		t.Errorf("Flags did not override config: %+v", cfg)
	}
}

func TestParseOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Unknown flag", []string{"-samples", "4"}},
		{"Zero width", []string{"-width", "0"}},
		{"Bad gamma", []string{"-gamma", "0"}},
		{"Negative thumbnail", []string{"-thumbnail", "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseOptions(tt.args, config.Default(), io.Discard); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestPrintHelp(t *testing.T) {
	var b strings.Builder
	printHelp(&b, t.TempDir())
	help := b.String()

	for _, want := range []string{"-scene", "-thumbnail", "default", "cylinders", "shapes"} {
		if !strings.Contains(help, want) {
			t.Errorf("Help text missing %q", want)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		ref      string
		expected string
	}{
		{"default", filepath.Join("output", "default", "render_20240102_030405.png")},
		{"file:glass-room", filepath.Join("output", "glass-room", "render_20240102_030405.png")},
		{filepath.Join("scenes", "room.json"), filepath.Join("output", "room", "render_20240102_030405.png")},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := defaultOutputPath("output", tt.ref, now); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Width, cfg.Height = 24, 18
	cfg.Workers = 2

	out := filepath.Join(dir, "render.bmp")
	opts := &options{
		scene:     "shapes",
		scenesDir: dir,
		assetDir:  dir,
		out:       out,
		thumbnail: 8,
		cfg:       cfg,
	}

	if err := run(context.Background(), opts, nopLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	img, err := loaders.LoadImage(out)
	if err != nil {
		t.Fatalf("Failed to read render: %v", err)
	}
	if img.Width != 24 || img.Height != 18 {
		t.Errorf("Unexpected render size %dx%d", img.Width, img.Height)
	}

	thumb, err := loaders.LoadImage(loaders.ThumbnailPath(out))
	if err != nil {
		t.Fatalf("Failed to read thumbnail: %v", err)
	}
	if thumb.Width > 8 || thumb.Height > 8 {
		t.Errorf("Thumbnail too large: %dx%d", thumb.Width, thumb.Height)
	}
}

func TestRun_BlackRenderWarns(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "void.json")
	if err := os.WriteFile(scenePath, []byte(`{"background": {"hex": "#000000"}, "materials": [], "objects": [], "lights": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Width, cfg.Height = 4, 4

	logger := &recordingLogger{}
	opts := &options{scene: scenePath, scenesDir: dir, assetDir: dir, out: filepath.Join(dir, "void.png"), cfg: cfg}
	if err := run(context.Background(), opts, logger); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	warned := false
	for _, msg := range logger.messages {
		if strings.Contains(msg, "void rendered completely black") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("Expected a black render warning, got %q", logger.messages)
	}
}

func TestRun_UploadWithoutBucket(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Width, cfg.Height = 4, 4

	opts := &options{
		scene:     "cylinders",
		scenesDir: dir,
		assetDir:  dir,
		out:       filepath.Join(dir, "render.png"),
		upload:    true,
		cfg:       cfg,
	}
	if err := run(context.Background(), opts, nopLogger{}); err == nil {
		t.Error("Expected an error when uploading without a bucket")
	}
}
