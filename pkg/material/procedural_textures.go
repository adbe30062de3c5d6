package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CheckerTexture tiles the unit UV square with alternating colors
type CheckerTexture struct {
	TilesU, TilesV int
	ColorA, ColorB core.Vec3
}

// NewCheckerTexture creates a checkerboard with the given number of tiles per
// unit of u and v. Tile counts below one are raised to one.
func NewCheckerTexture(tilesU, tilesV int, colorA, colorB core.Vec3) *CheckerTexture {
	return &CheckerTexture{
		TilesU: max(1, tilesU),
		TilesV: max(1, tilesV),
		ColorA: colorA,
		ColorB: colorB,
	}
}

// Sample returns ColorA or ColorB depending on which tile (u, v) falls in
func (c *CheckerTexture) Sample(u, v float64) core.Vec3 {
	iu := int(wrap(u) * float64(c.TilesU))
	iv := int(wrap(v) * float64(c.TilesV))
	if (iu+iv)&1 == 0 {
		return c.ColorA
	}
	return c.ColorB
}

// UVDebugTexture maps U to red and V to green
type UVDebugTexture struct{}

// Sample returns (u, v, 0) after wrapping
func (UVDebugTexture) Sample(u, v float64) core.Vec3 {
	return core.NewVec3(wrap(u), wrap(v), 0)
}
