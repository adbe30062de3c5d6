package renderer

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// surfaceEpsilon scales the offset applied to secondary ray origins
	surfaceEpsilon = 1e-4
	// rayBias moves secondary ray origins off the surface along the normal
	rayBias = surfaceEpsilon * 10

	// SceneDepth tells the raytracer to use the scene camera's max depth
	SceneDepth = -1
)

// DefaultLogger implements core.Logger with the standard logger
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains the image size and parallelism for a render
type Config struct {
	Width      int
	Height     int
	MaxDepth   int // SceneDepth keeps the scene's value
	NumWorkers int // 0 = one per CPU, 1 = sequential
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      480,
		Height:     600,
		MaxDepth:   SceneDepth,
		NumWorkers: 0,
	}
}

// Raytracer renders a scene into a framebuffer with Whitted-style recursion
type Raytracer struct {
	mu sync.Mutex // Serializes Render and SetScene

	scene    *scene.Scene
	camera   *Camera
	config   Config
	maxDepth int
	fb       *Framebuffer
	logger   core.Logger
}

// NewRaytracer creates a raytracer for the scene. The camera comes from the scene.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", config.Width, config.Height)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	rt := &Raytracer{
		config: config,
		fb:     NewFramebuffer(config.Width, config.Height),
		logger: logger,
	}
	if err := rt.setScene(s); err != nil {
		return nil, err
	}
	return rt, nil
}

// SetScene swaps the scene between renders
func (rt *Raytracer) SetScene(s *scene.Scene) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.setScene(s)
}

func (rt *Raytracer) setScene(s *scene.Scene) error {
	if s == nil {
		return fmt.Errorf("scene is nil")
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	rt.scene = s
	rt.camera = NewCamera(s.Camera.Eye, s.Camera.FOV, rt.config.Width, rt.config.Height)
	rt.maxDepth = s.Camera.MaxDepth
	if rt.config.MaxDepth >= 0 {
		rt.maxDepth = rt.config.MaxDepth
	}
	return nil
}

// MaxDepth returns the recursion limit in effect
func (rt *Raytracer) MaxDepth() int {
	return rt.maxDepth
}

// Framebuffer returns the framebuffer written by the last render
func (rt *Raytracer) Framebuffer() *Framebuffer {
	return rt.fb
}

// Image returns the last render as 8-bit RGBA
func (rt *Raytracer) Image(gamma float64) *image.RGBA {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.fb.ToImage(gamma)
}

// Render traces every pixel and overwrites the framebuffer. Cancelling ctx
// stops remaining rows and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (RenderStats, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	height := rt.config.Height
	rt.fb.Clear(core.Vec3{})

	pool := NewWorkerPool(rt, rt.fb, rt.config.NumWorkers)
	stats := RenderStats{
		TotalPixels: rt.config.Width * height,
		Workers:     pool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d, %d objects, %d lights, max depth %d (using %d workers)...\n",
		rt.config.Width, height, rt.scene.GetPrimitiveCount(), len(rt.scene.Lights), rt.maxDepth, stats.Workers)

	pool.Start(ctx)
	for row := 0; row < height; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}

	// Report every 5% of rows
	step := max(1, height/20)
	var renderErr error
	for done := 1; done <= height; done++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.merge(result.Stats)

		if renderErr == nil && (done%step == 0 || done == height) {
			rt.logger.Printf("Rendering: %d%%\n", done*100/height)
		}
	}
	pool.Stop()

	stats.Elapsed = time.Since(start)
	if renderErr != nil {
		rt.logger.Printf("Render failed: %v\n", renderErr)
		return stats, renderErr
	}

	rt.logger.Printf("Render completed: %s\n", stats)
	return stats, nil
}

// renderRow traces one row of pixels into fb
func (rt *Raytracer) renderRow(row int, fb *Framebuffer) traceStats {
	var stats traceStats
	pixels := fb.Pixels[row]
	for i := range pixels {
		ray := rt.camera.GetRay(i, row)
		pixels[i] = rt.castRay(ray, 0, &stats)
	}
	return stats
}

// CastRay returns the color seen along a primary ray
func (rt *Raytracer) CastRay(ray core.Ray) core.Vec3 {
	var stats traceStats
	return rt.castRay(ray, 0, &stats)
}

// castRay finds the nearest hit and shades it. depth counts the bounces that
// led to this ray.
func (rt *Raytracer) castRay(ray core.Ray, depth int, stats *traceStats) core.Vec3 {
	if depth == 0 {
		stats.primary++
	} else {
		stats.secondary++
	}
	stats.maxDepth = max(stats.maxDepth, depth)

	hit, ok := rt.scene.Intersect(ray)
	if !ok {
		return rt.miss(ray.Direction)
	}
	return rt.shade(hit, depth, stats)
}

// miss returns the environment along direction, or the background color
func (rt *Raytracer) miss(direction core.Vec3) core.Vec3 {
	if rt.scene.EnvMap != nil {
		return rt.scene.EnvMap.Sample(direction).Multiply(rt.scene.EnvIntensity).Clamp(0, 1)
	}
	return rt.scene.Background
}

// shade computes local Blinn-Phong lighting and, below the depth limit,
// blends in reflection and refraction
func (rt *Raytracer) shade(hit *geometry.Intercept, depth int, stats *traceStats) core.Vec3 {
	mat := hit.Object.Material()
	viewDir := hit.RayDirection.Normalize()
	normal := hit.ShadingNormal()

	local := rt.localColor(hit, mat, viewDir, normal, stats)
	if depth >= rt.maxDepth {
		return local.Clamp(0, 1)
	}

	var result core.Vec3
	switch {
	case mat.Class == material.ClassRefractive:
		result = rt.transmit(hit, mat, local, viewDir, normal, depth, stats)
	case mat.Ks > 0:
		reflected := rt.reflect(hit, viewDir, normal, depth, stats)
		result = local.Multiply(1 - mat.Ks).Add(reflected.Multiply(mat.Ks))
	default:
		result = local
	}
	return result.Clamp(0, 1)
}

// localColor sums ambient, diffuse and specular terms over the lights. Light
// color tints the ambient and diffuse terms only.
func (rt *Raytracer) localColor(hit *geometry.Intercept, mat *material.Material, viewDir, normal core.Vec3, stats *traceStats) core.Vec3 {
	base := mat.BaseColorAt(hit.UV, hit.HasUV)
	shadowOrigin := hit.Point.Add(normal.Multiply(rayBias))
	exponent := math.Max(1, mat.Shininess)

	var color core.Vec3
	for _, light := range rt.scene.Lights {
		radiance := lights.Radiance(light)

		if light.Type() == lights.LightTypeAmbient {
			color = color.Add(base.MultiplyVec(radiance).Multiply(mat.Kd))
			continue
		}

		sample, ok := light.Sample(hit.Point)
		if !ok {
			continue
		}
		ndotl := normal.Dot(sample.Direction)
		if ndotl <= 0 {
			continue
		}

		stats.shadow++
		if rt.scene.Occluded(core.NewRay(shadowOrigin, sample.Direction), sample.Distance) {
			continue
		}

		diffuse := base.MultiplyVec(radiance).Multiply(mat.Kd * ndotl)
		color = color.Add(diffuse)

		// Highlights stay white whatever the light color
		if mat.Ks > 0 {
			half := sample.Direction.Subtract(viewDir).Normalize()
			spec := math.Pow(math.Max(0, normal.Dot(half)), exponent)
			highlight := mat.Ks * spec * light.Intensity()
			color = color.Add(core.NewVec3(highlight, highlight, highlight))
		}
	}
	return color
}

// reflect traces the mirror direction from just above the surface
func (rt *Raytracer) reflect(hit *geometry.Intercept, viewDir, normal core.Vec3, depth int, stats *traceStats) core.Vec3 {
	dir := core.Reflect(viewDir, normal)
	origin := hit.Point.Add(normal.Multiply(rayBias))
	return rt.castRay(core.NewRay(origin, dir), depth+1, stats)
}

// transmit blends local, reflected and refracted light with Fresnel weights:
// max(0, 1-kr-kt)*local + (kr + kt*F)*reflected + kt*(1-F)*refracted.
// The geometric normal decides whether the ray enters or leaves the medium.
func (rt *Raytracer) transmit(hit *geometry.Intercept, mat *material.Material, local, viewDir, normal core.Vec3, depth int, stats *traceStats) core.Vec3 {
	entering := viewDir.Dot(hit.Normal) < 0
	eta := mat.IOR
	if entering {
		eta = 1 / mat.IOR
	}

	fresnel := core.Fresnel(viewDir, hit.Normal, mat.IOR)
	refractDir, ok := core.Refract(viewDir, normal, eta)
	if !ok {
		fresnel = 1
	}

	reflected := rt.reflect(hit, viewDir, normal, depth, stats)

	var refracted core.Vec3
	if ok && fresnel < 1 {
		origin := hit.Point.Subtract(normal.Multiply(rayBias))
		refracted = rt.castRay(core.NewRay(origin, refractDir), depth+1, stats)
	}

	localWeight := math.Max(0, 1-mat.Kr-mat.Kt)
	return local.Multiply(localWeight).
		Add(reflected.Multiply(mat.Kr + mat.Kt*fresnel)).
		Add(refracted.Multiply(mat.Kt * (1 - fresnel)))
}
