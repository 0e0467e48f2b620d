package lighting

import (
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/math"
)

// MaxPointLights is the maximum number of point lights in a Model.
const MaxPointLights = 8

// PointLight is a positional light with a linear falloff to zero at Range.
type PointLight struct {
	Position  math.Vec3 // eye space
	Color     geom.Color
	Range     float32
	Intensity float32
}

// NewPointLight creates a point light, clamping the color to [0, 1] and
// defaulting a non-positive range to 100.
func NewPointLight(pos math.Vec3, c geom.Color, rng float32) PointLight {
	if rng <= 0 {
		rng = 100
	}
	return PointLight{
		Position:  pos,
		Color:     geom.Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: 1},
		Range:     rng,
		Intensity: 1,
	}
}

// attenuation returns the light's strength at p, zero beyond Range.
func (l *PointLight) attenuation(p math.Vec3) float32 {
	d := l.Position.Sub(p).Length()
	if d >= l.Range {
		return 0
	}
	return (1 - d/l.Range) * l.Intensity
}
