package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ParseHexColor converts "#RRGGBB" (the # is optional) into a linear color in [0, 1]
func ParseHexColor(s string) (core.Vec3, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return core.Vec3{}, fmt.Errorf("invalid hex color %q", s)
	}

	var c [3]float64
	for i := range c {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		c[i] = float64(v) / 255.0
	}
	return core.NewVec3(c[0], c[1], c[2]), nil
}

// hex is ParseHexColor for colors that are known to be valid
func hex(s string) core.Vec3 {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
