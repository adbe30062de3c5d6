package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/publish"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Parse command line flags
	flag.StringVar(&cfg.ServerAddress, "addr", cfg.ServerAddress, "Address to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .json scene files")
	assetDir := flag.String("assets", "assets", "Directory with textures and models")
	flag.Parse()

	opts := server.Options{
		ScenesDir: *scenesDir,
		AssetDir:  *assetDir,
	}
	if cfg.S3.Enabled() {
		uploader, err := publish.NewS3Uploader(cfg.S3, renderer.NewDefaultLogger())
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
		opts.Uploader = uploader
		log.Printf("Uploading renders to bucket %s", cfg.S3.Bucket)
	}

	// Create and start web server
	webServer := server.NewServer(cfg, opts)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("POST scenes to http://%s/api/render", cfg.ServerAddress)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
