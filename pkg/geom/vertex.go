// Package geom holds the vertex and primitive types that flow through the
// geometry pipeline.
package geom

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/softgl/pkg/math"
)

// MaxTextureUnits is the number of texture coordinate sets per vertex.
const MaxTextureUnits = 4

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Vertex carries one vertex through every pipeline stage.
//
// Window is only valid after perspective division and viewport mapping;
// ClipCodes only after the vertex processor has run.
type Vertex struct {
	Object math.Vec4 // object-space position straight from the client
	Eye    math.Vec4
	Clip   math.Vec4
	NDC    math.Vec4
	// Window holds x, y in device pixels, z in the depth range and w = 1/clip.w.
	Window math.Vec4

	Normal    math.Vec3 // object-space normal
	EyeNormal math.Vec3 // normal after the inverse transpose of the model-view

	Color     Color
	TexCoords [MaxTextureUnits]math.Vec4
	Fog       float32

	ClipCodes ClipCode
}

// FogMode selects the fog blending equation.
type FogMode int

const (
	FogLinear FogMode = iota
	FogExp
	FogExp2
)

// FogParams is the fog state a vertex needs to compute its fog factor.
type FogParams struct {
	Mode    FogMode
	Density float32
	Start   float32
	End     float32
}

// ComputeFog sets the vertex fog factor from its eye-space depth.
func (v *Vertex) ComputeFog(p FogParams) {
	v.Fog = FogFactor(p, v.Eye[2])
}

// FogFactor evaluates the fog equation at eye depth z, clamped to [0, 1].
func FogFactor(p FogParams, z float32) float32 {
	z = math32.Abs(z)

	var f float32
	switch p.Mode {
	case FogExp:
		f = math32.Exp(-p.Density * z)
	case FogExp2:
		dz := p.Density * z
		f = math32.Exp(-dz * dz)
	case FogLinear:
		if p.End != p.Start {
			f = (p.End - z) / (p.End - p.Start)
		}
	}

	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
