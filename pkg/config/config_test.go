package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func mapLookup(values map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := fromLookup(mapLookup(nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	def := Default()
	if cfg.Width != def.Width || cfg.Height != def.Height {
		t.Errorf("Expected default size %dx%d, got %dx%d", def.Width, def.Height, cfg.Width, cfg.Height)
	}
	if cfg.MaxDepth != -1 {
		t.Errorf("Expected scene depth -1, got %d", cfg.MaxDepth)
	}
	if cfg.S3.Enabled() {
		t.Error("Expected uploads to be disabled without a bucket")
	}
	if cfg.RenderTimeout != 2*time.Minute {
		t.Errorf("Expected 2m timeout, got %v", cfg.RenderTimeout)
	}
}

func TestFromLookup_Values(t *testing.T) {
	cfg, err := fromLookup(mapLookup(map[string]string{
		"RAYTRACER_WIDTH":          "320",
		"RAYTRACER_HEIGHT":         "240",
		"RAYTRACER_MAX_DEPTH":      "5",
		"RAYTRACER_WORKERS":        "3",
		"RAYTRACER_GAMMA":          "2.1",
		"RAYTRACER_OUTPUT_DIR":     "renders",
		"RAYTRACER_THUMBNAIL_SIZE": "128",
		"S3_ENDPOINT":              "http://localhost:9000",
		"S3_REGION":                "eu-west-1",
		"S3_BUCKET":                "frames",
		"S3_ACCESS_KEY":            "access",
		"S3_SECRET_KEY":            "secret",
		"SERVER_ADDRESS":           "127.0.0.1:9090",
		"POST_KEY":                 "letmein",
		"RENDER_TIMEOUT":           "45",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Width != 320 || cfg.Height != 240 || cfg.MaxDepth != 5 || cfg.Workers != 3 {
		t.Errorf("Unexpected render settings: %+v", cfg)
	}
	if cfg.Gamma != 2.1 || cfg.OutputDir != "renders" || cfg.ThumbnailSize != 128 {
		t.Errorf("Unexpected output settings: %+v", cfg)
	}
	want := S3Config{"http://localhost:9000", "eu-west-1", "frames", "access", "secret"}
	if cfg.S3 != want {
		t.Errorf("Expected S3 %+v, got %+v", want, cfg.S3)
	}
	if !cfg.S3.Enabled() {
		t.Error("Expected uploads to be enabled")
	}
	if cfg.ServerAddress != "127.0.0.1:9090" || cfg.PostKey != "letmein" {
		t.Errorf("Unexpected server settings: %+v", cfg)
	}
	if cfg.RenderTimeout != 45*time.Second {
		t.Errorf("Expected 45s timeout, got %v", cfg.RenderTimeout)
	}
}

func TestFromLookup_Durations(t *testing.T) {
	tests := []struct {
		value    string
		expected time.Duration
	}{
		{"30", 30 * time.Second},
		{"90s", 90 * time.Second},
		{"1m30s", 90 * time.Second},
		{"", 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg, err := fromLookup(mapLookup(map[string]string{"RENDER_TIMEOUT": tt.value}))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cfg.RenderTimeout != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, cfg.RenderTimeout)
			}
		})
	}
}

func TestFromLookup_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"Bad width", "RAYTRACER_WIDTH", "wide", "RAYTRACER_WIDTH"},
		{"Zero height", "RAYTRACER_HEIGHT", "0", "image size"},
		{"Bad gamma", "RAYTRACER_GAMMA", "bright", "RAYTRACER_GAMMA"},
		{"Negative gamma", "RAYTRACER_GAMMA", "-1", "gamma"},
		{"Negative workers", "RAYTRACER_WORKERS", "-2", "workers"},
		{"Bad timeout", "RENDER_TIMEOUT", "soon", "RENDER_TIMEOUT"},
		{"Zero timeout", "RENDER_TIMEOUT", "0", "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromLookup(mapLookup(map[string]string{tt.key: tt.value}))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	if err := os.WriteFile(first, []byte("RAYTRACER_OUTPUT_DIR=from-first\nS3_BUCKET=frames\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("RAYTRACER_OUTPUT_DIR=from-second\nPOST_KEY=secret\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("S3_BUCKET", "from-env")

	cfg, err := Load(first, filepath.Join(dir, "missing.env"), second)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "from-first" {
		t.Errorf("Expected the first file to win, got %q", cfg.OutputDir)
	}
	if cfg.S3.Bucket != "from-env" {
		t.Errorf("Expected the environment to win, got %q", cfg.S3.Bucket)
	}
	if cfg.PostKey != "secret" {
		t.Errorf("Expected POST_KEY from the second file, got %q", cfg.PostKey)
	}
}
