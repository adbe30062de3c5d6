package renderer

import (
	"fmt"
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	PrimaryRays     int64         // Camera rays
	SecondaryRays   int64         // Reflection and refraction rays
	ShadowRays      int64         // Occlusion tests toward lights
	MaxDepthReached int           // Deepest recursion level any ray reached
	Workers         int           // Number of parallel workers used
	Elapsed         time.Duration // Wall time of the render
}

// TotalRays returns every ray cast during the render
func (s RenderStats) TotalRays() int64 {
	return s.PrimaryRays + s.SecondaryRays + s.ShadowRays
}

// String summarizes the stats on one line
func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d rays (%d primary, %d secondary, %d shadow), depth %d, %d workers, %v",
		s.TotalPixels, s.TotalRays(), s.PrimaryRays, s.SecondaryRays, s.ShadowRays,
		s.MaxDepthReached, s.Workers, s.Elapsed)
}

// traceStats counts rays for one row; rows are merged after rendering
type traceStats struct {
	primary   int64
	secondary int64
	shadow    int64
	maxDepth  int
}

func (s *RenderStats) merge(t traceStats) {
	s.PrimaryRays += t.primary
	s.SecondaryRays += t.secondary
	s.ShadowRays += t.shadow
	s.MaxDepthReached = max(s.MaxDepthReached, t.maxDepth)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixels)
}
