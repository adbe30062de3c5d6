package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/publish"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options are the command line settings after flags override the environment
type options struct {
	scene     string
	scenesDir string
	assetDir  string
	out       string
	thumbnail int
	upload    bool
	help      bool
	cfg       *config.Config
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	opts, err := parseOptions(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if opts.help {
		printHelp(os.Stdout, opts.scenesDir)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func newFlagSet(opts *options) *flag.FlagSet {
	cfg := opts.cfg
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name, scene file ID (file:name) or path to a .json scene")
	fs.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory searched for .json scene files")
	fs.StringVar(&opts.assetDir, "assets", "assets", "Directory with optional textures and models for built-in scenes")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	fs.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum recursion depth (-1 uses the scene's value)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of render workers (0 = one per CPU)")
	fs.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "Gamma used when converting to 8-bit color (1 = linear)")
	fs.StringVar(&opts.out, "out", "", "Output file; the extension selects the format (.png, .bmp, .jpg, .gif, .tif)")
	fs.IntVar(&opts.thumbnail, "thumbnail", cfg.ThumbnailSize, "Also write a preview no larger than this many pixels (0 = off)")
	fs.BoolVar(&opts.upload, "upload", false, "Upload the render to the configured S3 bucket")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return fs
}

func parseOptions(args []string, cfg *config.Config, output io.Writer) (*options, error) {
	opts := &options{cfg: cfg}
	fs := newFlagSet(opts)
	fs.SetOutput(output)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.help {
		return opts, nil
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(output, "invalid options: %v\n", err)
		return nil, err
	}
	if opts.thumbnail < 0 {
		err := fmt.Errorf("thumbnail size must not be negative, got %d", opts.thumbnail)
		fmt.Fprintf(output, "invalid options: %v\n", err)
		return nil, err
	}
	return opts, nil
}

func printHelp(w io.Writer, scenesDir string) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs := newFlagSet(&options{cfg: config.Default()})
	fs.SetOutput(w)
	fs.PrintDefaults()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Fprintf(w, "  (could not list scene files: %v)\n", err)
	}
	for _, group := range scenes.Groups {
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output defaults to <output dir>/<scene>/render_<timestamp>.png")
}

func run(ctx context.Context, opts *options, logger core.Logger) error {
	cfg := opts.cfg

	selectedScene, err := createScene(opts.scene, opts.scenesDir, opts.assetDir, logger)
	if err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(selectedScene, renderer.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		MaxDepth:   cfg.MaxDepth,
		NumWorkers: cfg.Workers,
	}, logger)
	if err != nil {
		return err
	}

	stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Render completed in %v (%d rays)\n", stats.Elapsed, stats.TotalRays())

	img := rt.Image(cfg.Gamma)
	luminance := renderer.CalculateAverageLuminance(img)
	fmt.Printf("Average luminance: %.3f\n", luminance)
	if luminance == 0 {
		logger.Printf("Warning: %s rendered completely black\n", sceneName(opts.scene))
	}

	filename := opts.out
	if filename == "" {
		filename = defaultOutputPath(cfg.OutputDir, opts.scene, time.Now())
	}
	if err := loaders.SaveImage(img, filename); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.thumbnail > 0 {
		thumbPath := loaders.ThumbnailPath(filename)
		if err := loaders.SaveImage(loaders.Thumbnail(img, uint(opts.thumbnail)), thumbPath); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if opts.upload {
		uploader, err := publish.NewS3Uploader(cfg.S3, logger)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := loaders.EncodePNG(&buf, img); err != nil {
			return err
		}
		key := publish.ObjectKey(sceneName(opts.scene), time.Now(), ".png")
		if err := uploader.Upload(ctx, key, buf.Bytes(), publish.ContentType(".png")); err != nil {
			return err
		}
		fmt.Printf("Render uploaded to s3://%s/%s\n", uploader.Bucket(), key)
	}
	return nil
}

// createScene resolves a built-in name, a file: ID or a .json path
func createScene(ref, scenesDir, assetDir string, logger core.Logger) (*scene.Scene, error) {
	if ref == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Load(ref, scenesDir, scene.BuildOptions{AssetDir: assetDir, Logger: logger})
}

// sceneName turns a scene reference into a short name for output paths
func sceneName(ref string) string {
	ref = strings.TrimPrefix(ref, "file:")
	return strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
}

func defaultOutputPath(outputDir, ref string, now time.Time) string {
	name := sceneName(ref)
	return filepath.Join(outputDir, name, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}
