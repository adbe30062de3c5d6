// Package config loads raytracer settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the command line renderer and the render server
type Config struct {
	Width         int
	Height        int
	MaxDepth      int // Negative keeps each scene's own depth
	Workers       int // 0 = one per CPU
	Gamma         float64
	OutputDir     string
	ThumbnailSize int // Longest side of the preview image, 0 disables it

	S3 S3Config

	ServerAddress string
	PostKey       string // Required in the access key header when set
	RenderTimeout time.Duration
}

// S3Config describes the bucket rendered images are published to
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether uploads are configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Width:         480,
		Height:        600,
		MaxDepth:      -1,
		Workers:       0,
		Gamma:         2.2,
		OutputDir:     "output",
		ThumbnailSize: 0,
		S3: S3Config{
			Region: "us-east-1",
		},
		ServerAddress: ":8080",
		RenderTimeout: 2 * time.Minute,
	}
}

// lookupFunc reports the value of a setting and whether it was present
type lookupFunc func(key string) (string, bool)

// Load reads settings from the environment, falling back to the given .env
// files. Variables already in the environment win, and earlier files win over
// later ones, matching godotenv.Load. Missing files are skipped.
func Load(envFiles ...string) (*Config, error) {
	fileValues := make(map[string]string)
	for _, filename := range envFiles {
		values, err := godotenv.Read(filename)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", filename, err)
		}
		for key, value := range values {
			if _, seen := fileValues[key]; !seen {
				fileValues[key] = value
			}
		}
	}

	return fromLookup(func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := fileValues[key]
		return value, ok
	})
}

func fromLookup(lookup lookupFunc) (*Config, error) {
	cfg := Default()
	env := envReader{lookup: lookup}

	cfg.Width = env.getInt("RAYTRACER_WIDTH", cfg.Width)
	cfg.Height = env.getInt("RAYTRACER_HEIGHT", cfg.Height)
	cfg.MaxDepth = env.getInt("RAYTRACER_MAX_DEPTH", cfg.MaxDepth)
	cfg.Workers = env.getInt("RAYTRACER_WORKERS", cfg.Workers)
	cfg.Gamma = env.getFloat("RAYTRACER_GAMMA", cfg.Gamma)
	cfg.OutputDir = env.getString("RAYTRACER_OUTPUT_DIR", cfg.OutputDir)
	cfg.ThumbnailSize = env.getInt("RAYTRACER_THUMBNAIL_SIZE", cfg.ThumbnailSize)

	cfg.S3 = S3Config{
		Endpoint:  env.getString("S3_ENDPOINT", cfg.S3.Endpoint),
		Region:    env.getString("S3_REGION", cfg.S3.Region),
		Bucket:    env.getString("S3_BUCKET", cfg.S3.Bucket),
		AccessKey: env.getString("S3_ACCESS_KEY", cfg.S3.AccessKey),
		SecretKey: env.getString("S3_SECRET_KEY", cfg.S3.SecretKey),
	}

	cfg.ServerAddress = env.getString("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.PostKey = env.getString("POST_KEY", cfg.PostKey)
	cfg.RenderTimeout = env.getDuration("RENDER_TIMEOUT", cfg.RenderTimeout)

	if env.err != nil {
		return nil, env.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that the renderer cannot recover from
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %g", c.Gamma)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.ThumbnailSize < 0 {
		return fmt.Errorf("thumbnail size must not be negative, got %d", c.ThumbnailSize)
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("render timeout must be positive, got %v", c.RenderTimeout)
	}
	return nil
}

// envReader parses typed settings and keeps the first error
type envReader struct {
	lookup lookupFunc
	err    error
}

func (e *envReader) getString(key, fallback string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func (e *envReader) getInt(key string, fallback int) int {
	value, ok := e.lookup(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid integer %q", key, value))
		return fallback
	}
	return n
}

func (e *envReader) getFloat(key string, fallback float64) float64 {
	value, ok := e.lookup(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid number %q", key, value))
		return fallback
	}
	return f
}

// duration accepts Go durations ("90s", "2m") or a plain number of seconds
func (e *envReader) getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := e.lookup(key)
	if !ok || value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid duration %q", key, value))
		return fallback
	}
	return d
}

func (e *envReader) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
