// Package scene builds the demo scene drawn by geomtool: a bicubic Bezier
// patch surrounded by named boxes.
package scene

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/softgl/internal/debug"
	"github.com/Faultbox/softgl/internal/logger"
	"github.com/Faultbox/softgl/internal/picking"
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/lighting"
	"github.com/Faultbox/softgl/pkg/math"
	"github.com/Faultbox/softgl/pkg/pipeline"
)

// PatchName is the selection name of the surface patch.
const PatchName uint32 = 100

// Sun angles in degrees.
const (
	SunLongitude = 40
	SunLatitude  = 55
)

// Patch layout: 4x4 Vertex3 control points, u varying fastest.
const (
	patchOrder   = 4
	patchUStride = 3
	patchVStride = patchOrder * patchUStride
)

// Object is a named box.
type Object struct {
	Name  uint32
	Label string
	Min   math.Vec3
	Max   math.Vec3
	Color geom.Color
}

// Bounds returns the box as a picking AABB.
func (o Object) Bounds() picking.AABB {
	return picking.NewAABB(o.Min, o.Max)
}

// Scene is a set of objects and an optional surface patch.
type Scene struct {
	// Patch holds the control points of a bicubic Vertex3 map over
	// [0,1]x[0,1]; nil draws no surface.
	Patch      []float32
	PatchColor geom.Color

	Objects []Object

	// Outlines draws an unlit wireframe slightly larger than each box.
	Outlines bool
}

// Demo returns the demo scene.
func Demo() *Scene {
	return &Scene{
		Patch:      demoPatch(),
		PatchColor: geom.Color{R: 0.85, G: 0.75, B: 0.35, A: 1},
		Objects: []Object{
			{Name: 1, Label: "crate", Min: math.Vec3{X: -3, Y: 0, Z: -0.5}, Max: math.Vec3{X: -2, Y: 1, Z: 0.5},
				Color: geom.Color{R: 0.8, G: 0.2, B: 0.2, A: 1}},
			{Name: 2, Label: "tower", Min: math.Vec3{X: 2, Y: 0, Z: -0.5}, Max: math.Vec3{X: 2.8, Y: 2, Z: 0.3},
				Color: geom.Color{R: 0.2, G: 0.7, B: 0.3, A: 1}},
			{Name: 3, Label: "slab", Min: math.Vec3{X: -1, Y: 0, Z: 2.2}, Max: math.Vec3{X: 1, Y: 0.4, Z: 2.8},
				Color: geom.Color{R: 0.25, G: 0.35, B: 0.85, A: 1}},
		},
	}
}

// demoPatch spans x in [-1.5, 1.5] along u and z from 1.5 to -1.5 along v,
// so u x v points up.
func demoPatch() []float32 {
	heights := [patchOrder][patchOrder]float32{
		{0, 0.2, 0.2, 0},
		{0.2, 1.4, 1.0, 0.2},
		{0.2, 0.6, 1.2, 0.2},
		{0, 0.2, 0.2, 0},
	}
	pts := make([]float32, 0, patchOrder*patchOrder*3)
	for j := 0; j < patchOrder; j++ {
		for i := 0; i < patchOrder; i++ {
			x := -1.5 + float32(i)
			z := 1.5 - float32(j)
			pts = append(pts, x, heights[j][i], z)
		}
	}
	return pts
}

// Lookup returns the object with the given name.
func (s *Scene) Lookup(name uint32) (Object, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return Object{}, false
}

// Label names a selection name for display.
func (s *Scene) Label(name uint32) string {
	if name == PatchName && s.Patch != nil {
		return "patch"
	}
	if o, ok := s.Lookup(name); ok {
		return o.Label
	}
	return "unknown"
}

// Bounds returns a bounding sphere of the scene.
func (s *Scene) Bounds() (center math.Vec3, radius float32) {
	lo := math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32}
	hi := lo.Negate()
	grow := func(p math.Vec3) {
		lo = math.Vec3{X: math32.Min(lo.X, p.X), Y: math32.Min(lo.Y, p.Y), Z: math32.Min(lo.Z, p.Z)}
		hi = math.Vec3{X: math32.Max(hi.X, p.X), Y: math32.Max(hi.Y, p.Y), Z: math32.Max(hi.Z, p.Z)}
	}
	for i := 0; i+2 < len(s.Patch); i += 3 {
		grow(math.Vec3{X: s.Patch[i], Y: s.Patch[i+1], Z: s.Patch[i+2]})
	}
	for _, o := range s.Objects {
		grow(o.Min)
		grow(o.Max)
	}
	if lo.X > hi.X {
		return math.Vec3{}, 1
	}
	center = lo.Add(hi).Scale(0.5)
	return center, hi.Sub(center).Length()
}

// Setup loads the patch map, the mesh grid and the lights into p.
func (s *Scene) Setup(p *pipeline.Pipeline, nu, nv int) error {
	if s.Patch != nil {
		if err := p.Map2(pipeline.ChannelVertex3, 0, 1, patchUStride, patchOrder,
			0, 1, patchVStride, patchOrder, s.Patch); err != nil {
			return err
		}
		if err := p.Enable(pipeline.Map2Vertex3); err != nil {
			return err
		}
	}
	if err := p.MapGrid2(nu, 0, 1, nv, 0, 1); err != nil {
		return err
	}

	p.Lighting().Points = nil
	p.Sun(SunLongitude, SunLatitude)
	if err := p.PointLight(math.Vec3{X: 0, Y: 4, Z: 3}, geom.Color{R: 0.6, G: 0.6, B: 0.5, A: 1}, 12); err != nil {
		return err
	}

	logger.Debug("scene ready",
		zap.Int("objects", len(s.Objects)),
		zap.Bool("patch", s.Patch != nil),
		zap.Int("nu", nu),
		zap.Int("nv", nv),
	)
	return nil
}

// Draw submits the scene under the current matrices. Every part is drawn
// under its own selection name.
func (s *Scene) Draw(p *pipeline.Pipeline) error {
	if err := p.InitNames(); err != nil {
		return err
	}
	if err := p.PushName(0); err != nil {
		return err
	}

	if s.Patch != nil {
		if err := p.LoadName(PatchName); err != nil {
			return err
		}
		if err := setColor(p, s.PatchColor); err != nil {
			return err
		}
		g := p.State().Eval.Grid
		if err := p.EvalMesh2(pipeline.MeshFill, 0, g.NU, 0, g.NV); err != nil {
			return err
		}
	}

	for _, o := range s.Objects {
		if err := p.LoadName(o.Name); err != nil {
			return err
		}
		if err := setColor(p, o.Color); err != nil {
			return err
		}
		if err := drawBox(p, o.Min, o.Max); err != nil {
			return err
		}
		if s.Outlines {
			if err := drawOutline(p, o.Min, o.Max); err != nil {
				return err
			}
		}
	}

	return p.PopName()
}

// setColor sets both the current color and the front and back material.
func setColor(p *pipeline.Pipeline, c geom.Color) error {
	p.Color4f(c.R, c.G, c.B, c.A)
	mat := lighting.DefaultMaterial()
	mat.Diffuse = c
	mat.Ambient = geom.Color{R: c.R * 0.4, G: c.G * 0.4, B: c.B * 0.4, A: c.A}
	return p.Material(geom.FaceFrontAndBack, mat)
}

// boxFaces lists each face's outward normal and its corners in
// counter-clockwise order seen from outside. A true flag takes the
// coordinate from the box maximum.
var boxFaces = [6]struct {
	normal  math.Vec3
	corners [4][3]bool
}{
	{math.Vec3{X: 1}, [4][3]bool{{true, false, false}, {true, true, false}, {true, true, true}, {true, false, true}}},
	{math.Vec3{X: -1}, [4][3]bool{{false, false, false}, {false, false, true}, {false, true, true}, {false, true, false}}},
	{math.Vec3{Y: 1}, [4][3]bool{{false, true, false}, {false, true, true}, {true, true, true}, {true, true, false}}},
	{math.Vec3{Y: -1}, [4][3]bool{{false, false, false}, {true, false, false}, {true, false, true}, {false, false, true}}},
	{math.Vec3{Z: 1}, [4][3]bool{{false, false, true}, {true, false, true}, {true, true, true}, {false, true, true}}},
	{math.Vec3{Z: -1}, [4][3]bool{{false, false, false}, {false, true, false}, {true, true, false}, {true, false, false}}},
}

func corner(lo, hi float32, high bool) float32 {
	if high {
		return hi
	}
	return lo
}

func drawBox(p *pipeline.Pipeline, lo, hi math.Vec3) error {
	if err := p.Begin(pipeline.Quads); err != nil {
		return err
	}
	for _, f := range boxFaces {
		p.Normal3f(f.normal.X, f.normal.Y, f.normal.Z)
		for _, c := range f.corners {
			if err := p.Vertex3f(corner(lo.X, hi.X, c[0]), corner(lo.Y, hi.Y, c[1]), corner(lo.Z, hi.Z, c[2])); err != nil {
				return err
			}
		}
	}
	return p.End()
}

func drawOutline(p *pipeline.Pipeline, lo, hi math.Vec3) error {
	lit := p.State().Lighting
	if err := p.Disable(pipeline.Lighting); err != nil {
		return err
	}

	p.Color3f(1, 1, 1)
	lo, hi = debug.Expand(lo, hi, 0.02)
	if err := p.Begin(pipeline.Lines); err != nil {
		return err
	}
	for _, v := range debug.BoxEdges(lo, hi) {
		if err := p.Vertex3f(v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	if err := p.End(); err != nil {
		return err
	}

	if lit {
		return p.Enable(pipeline.Lighting)
	}
	return nil
}
