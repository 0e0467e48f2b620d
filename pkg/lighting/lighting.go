// Package lighting implements the fixed-function per-vertex lighting model
// used by the geometry pipeline.
package lighting

import (
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/math"
)

// Material is the surface reflectance of one face.
type Material struct {
	Ambient  geom.Color
	Diffuse  geom.Color
	Emission geom.Color
}

// DefaultMaterial returns the GL default material.
func DefaultMaterial() Material {
	return Material{
		Ambient:  geom.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
		Diffuse:  geom.Color{R: 0.8, G: 0.8, B: 0.8, A: 1},
		Emission: geom.Color{A: 1},
	}
}

// Model is the complete lighting state: scene ambient, a material per face
// and the active lights. Light positions and directions are in eye space.
type Model struct {
	SceneAmbient geom.Color
	Front        Material
	Back         Material

	Sun    *DirectionalLight
	Points []PointLight
}

// NewModel returns a model with GL defaults and no lights.
func NewModel() *Model {
	return &Model{
		SceneAmbient: geom.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
		Front:        DefaultMaterial(),
		Back:         DefaultMaterial(),
	}
}

// AddPointLight adds a light. Returns false if MaxPointLights are in use.
func (m *Model) AddPointLight(l PointLight) bool {
	if len(m.Points) >= MaxPointLights {
		return false
	}
	m.Points = append(m.Points, l)
	return true
}

// Apply replaces v's color with the lit color for the given face. Back
// faces use the back material and the reversed normal.
func (m *Model) Apply(v *geom.Vertex, face geom.Face) {
	mat := &m.Front
	n := v.EyeNormal
	if face == geom.FaceBack {
		mat = &m.Back
		n = n.Negate()
	}

	c := mat.Emission
	c = add(c, mul(m.SceneAmbient, mat.Ambient), 1)

	if m.Sun != nil {
		c = add(c, m.Sun.contribution(n, mat), 1)
	}

	pos := v.Eye.XYZ()
	for i := range m.Points {
		l := &m.Points[i]
		att := l.attenuation(pos)
		if att == 0 {
			continue
		}
		dir := l.Position.Sub(pos).Normalize()
		c = add(c, lambert(n, dir, l.Color, mat), att)
	}

	v.Color = geom.Color{
		R: clamp(c.R),
		G: clamp(c.G),
		B: clamp(c.B),
		A: clamp(mat.Diffuse.A),
	}
}

// lambert is the ambient plus diffuse term of one light of color lc
// arriving from dir.
func lambert(n, dir math.Vec3, lc geom.Color, mat *Material) geom.Color {
	c := mul(lc, mat.Ambient)
	c.R *= ambientShare
	c.G *= ambientShare
	c.B *= ambientShare

	if d := n.Dot(dir); d > 0 {
		c = add(c, mul(lc, mat.Diffuse), d)
	}
	return c
}

// ambientShare is the part of each light's color that acts as ambient.
const ambientShare = 0.1

func mul(a, b geom.Color) geom.Color {
	return geom.Color{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B, A: a.A * b.A}
}

func add(a, b geom.Color, s float32) geom.Color {
	return geom.Color{R: a.R + b.R*s, G: a.G + b.G*s, B: a.B + b.B*s, A: a.A}
}

func clamp(f float32) float32 {
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
