// Package pipeline implements the geometry stage of a fixed-function
// software renderer: vertex processing, Bezier surface evaluation and
// primitive assembly, behind a small immediate-mode API.
//
// A Pipeline is single threaded. Every call runs to completion,
// including rendering of any primitive it completes, before returning.
package pipeline

import (
	"fmt"
	"image"

	"github.com/Faultbox/softgl/pkg/clip"
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/lighting"
	"github.com/Faultbox/softgl/pkg/math"
	"github.com/Faultbox/softgl/pkg/render"
)

// Config holds pipeline construction options.
type Config struct {
	Width  int
	Height int

	// Target receives rasterized output; a Width x Height image is
	// created when nil.
	Target *image.RGBA

	// Clipper, Lighter and TexCoords replace the default collaborators.
	Clipper   Clipper
	Lighter   Lighter
	TexCoords TexCoordProcessor
}

// Pipeline is one independent rendering context.
type Pipeline struct {
	st    *State
	proc  *Processor
	asm   *Assembler
	eval  *Evaluator
	light *lighting.Model

	raster   *render.Raster
	selector *render.Selector
	feedback *render.Feedback
	mode     render.Mode

	matrixMode    MatrixMode
	activeTexture int
	rasterPos     geom.RasterPos

	selectBuf    []uint32
	selectCap    int
	feedbackBuf  []float32
	feedbackCap  int
	feedbackType render.FeedbackType
}

// New creates a pipeline in render mode.
func New(cfg Config) *Pipeline {
	if cfg.Target == nil {
		cfg.Target = image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	}

	st := NewState(cfg.Width, cfg.Height)
	p := &Pipeline{
		st:          st,
		proc:        NewProcessor(st),
		light:       lighting.NewModel(),
		raster:      render.NewRaster(cfg.Target),
		selector:    render.NewSelector(),
		feedback:    render.NewFeedback(),
		selectCap:   -1,
		feedbackCap: -1,
	}

	clipper := cfg.Clipper
	if clipper == nil {
		clipper = clip.New(&st.ClipPlanes)
	}
	lighter := cfg.Lighter
	if lighter == nil {
		lighter = p.light
	}
	tex := cfg.TexCoords
	if tex == nil {
		tex = NewTextureMatrices(st)
	}

	p.asm = NewAssembler(st, clipper, lighter, tex)
	p.eval = NewEvaluator(st, p)
	p.bind()
	return p
}

// State returns the pipeline state.
func (p *Pipeline) State() *State { return p.st }

// Lighting returns the lighting model used by the default lighter.
func (p *Pipeline) Lighting() *lighting.Model { return p.light }

// Evaluator returns the surface evaluator.
func (p *Pipeline) Evaluator() *Evaluator { return p.eval }

// Raster returns the rasterize backend.
func (p *Pipeline) Raster() *render.Raster { return p.raster }

// RasterPosition returns the current raster position.
func (p *Pipeline) RasterPosition() geom.RasterPos { return p.rasterPos }

// outside fails when called between Begin and End.
func (p *Pipeline) outside(op string) error {
	if p.asm.Inside() {
		return fmt.Errorf("%s inside begin/end: %w", op, glerr.ErrInvalidOperation)
	}
	return nil
}

// Begin opens a primitive block.
func (p *Pipeline) Begin(mode Primitive) error {
	return p.asm.Begin(mode)
}

// End closes the primitive block.
func (p *Pipeline) End() error {
	return p.asm.End()
}

// Vertex2f submits a vertex with z = 0 and w = 1.
func (p *Pipeline) Vertex2f(x, y float32) error {
	return p.Vertex4f(x, y, 0, 1)
}

// Vertex3f submits a vertex with w = 1.
func (p *Pipeline) Vertex3f(x, y, z float32) error {
	return p.Vertex4f(x, y, z, 1)
}

// Vertex4f submits a homogeneous vertex.
func (p *Pipeline) Vertex4f(x, y, z, w float32) error {
	if !p.asm.Inside() {
		return fmt.Errorf("vertex outside begin/end: %w", glerr.ErrInvalidOperation)
	}
	v := p.asm.Slot()
	v.Object = math.Vec4{x, y, z, w}
	p.proc.Process(v)
	_, err := p.asm.Submit()
	return err
}

// Normal3f sets the current normal.
func (p *Pipeline) Normal3f(x, y, z float32) {
	p.st.Current.Normal = math.Vec3{X: x, Y: y, Z: z}
}

// Color4f sets the current color.
func (p *Pipeline) Color4f(r, g, b, a float32) {
	p.st.Current.Color = geom.Color{R: r, G: g, B: b, A: a}
}

// Color3f sets the current color with alpha 1.
func (p *Pipeline) Color3f(r, g, b float32) {
	p.Color4f(r, g, b, 1)
}

// TexCoord4f sets the current texture coordinates of a unit.
func (p *Pipeline) TexCoord4f(unit int, s, t, r, q float32) error {
	if unit < 0 || unit >= geom.MaxTextureUnits {
		return fmt.Errorf("texture unit %d: %w", unit, glerr.ErrInvalidEnum)
	}
	p.st.Current.TexCoords[unit] = math.Vec4{s, t, r, q}
	return nil
}

// TexCoord2f sets the unit 0 texture coordinates.
func (p *Pipeline) TexCoord2f(s, t float32) {
	p.st.Current.TexCoords[0] = math.Vec4{s, t, 0, 1}
}

// Enable turns a capability on.
func (p *Pipeline) Enable(c Capability) error {
	if err := p.outside("enable"); err != nil {
		return err
	}
	return p.st.SetCapability(c, true)
}

// Disable turns a capability off.
func (p *Pipeline) Disable(c Capability) error {
	if err := p.outside("disable"); err != nil {
		return err
	}
	return p.st.SetCapability(c, false)
}

// FrontFace sets which winding faces the viewer.
func (p *Pipeline) FrontFace(w Winding) error {
	if err := p.outside("front face"); err != nil {
		return err
	}
	if w != CCW && w != CW {
		return fmt.Errorf("front face %d: %w", int(w), glerr.ErrInvalidEnum)
	}
	p.st.FrontFace = w
	return nil
}

// CullFace sets which faces culling discards.
func (p *Pipeline) CullFace(f geom.Face) error {
	if err := p.outside("cull face"); err != nil {
		return err
	}
	if f < geom.FaceFront || f > geom.FaceFrontAndBack {
		return fmt.Errorf("cull face %d: %w", int(f), glerr.ErrInvalidEnum)
	}
	p.st.CullMode = f
	return nil
}

// ShadeModel selects smooth or flat shading.
func (p *Pipeline) ShadeModel(m ShadeModel) error {
	if err := p.outside("shade model"); err != nil {
		return err
	}
	if m != Smooth && m != Flat {
		return fmt.Errorf("shade model %d: %w", int(m), glerr.ErrInvalidEnum)
	}
	p.st.Shade = m
	p.raster.Flat = m == Flat
	return nil
}

// FogHint sets the fog quality hint. Nicest defers fog to the rasterizer.
func (p *Pipeline) FogHint(h Hint) error {
	if err := p.outside("hint"); err != nil {
		return err
	}
	if h < DontCare || h > Nicest {
		return fmt.Errorf("hint %d: %w", int(h), glerr.ErrInvalidEnum)
	}
	p.st.FogHint = h
	return nil
}

// Fog sets the fog parameters.
func (p *Pipeline) Fog(params geom.FogParams) error {
	if err := p.outside("fog"); err != nil {
		return err
	}
	if params.Mode < geom.FogLinear || params.Mode > geom.FogExp2 {
		return fmt.Errorf("fog mode %d: %w", int(params.Mode), glerr.ErrInvalidEnum)
	}
	if params.Density < 0 {
		return fmt.Errorf("fog density %g: %w", params.Density, glerr.ErrInvalidValue)
	}
	p.st.FogParams = params
	return nil
}

// ClipPlane sets user plane i from an object-space equation. It is stored
// in eye space under the current model-view.
func (p *Pipeline) ClipPlane(i int, eq math.Vec4) error {
	if err := p.outside("clip plane"); err != nil {
		return err
	}
	if i < 0 || i >= geom.MaxUserClipPlanes {
		return fmt.Errorf("clip plane %d: %w", i, glerr.ErrInvalidEnum)
	}
	p.st.ClipPlanes[i] = p.st.ModelView.InverseTranspose().MulVec4(eq)
	return nil
}

// Viewport sets the window rectangle.
func (p *Pipeline) Viewport(x, y, width, height int) error {
	if err := p.outside("viewport"); err != nil {
		return err
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("viewport %dx%d: %w", width, height, glerr.ErrInvalidValue)
	}
	vp := &p.st.Viewport
	vp.X, vp.Y, vp.Width, vp.Height = x, y, width, height
	return nil
}

// DepthRange sets the window depth range, clamped to [0, 1].
func (p *Pipeline) DepthRange(near, far float32) error {
	if err := p.outside("depth range"); err != nil {
		return err
	}
	p.st.Viewport.Near = clamp01(near)
	p.st.Viewport.Far = clamp01(far)
	return nil
}

func clamp01(f float32) float32 {
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// RasterPos4f sets the raster position from an object-space point. The
// position is invalid when the point is clipped.
func (p *Pipeline) RasterPos4f(x, y, z, w float32) error {
	if err := p.outside("raster pos"); err != nil {
		return err
	}
	var v geom.Vertex
	v.Object = math.Vec4{x, y, z, w}
	p.proc.Process(&v)

	rp := &p.rasterPos
	if v.ClipCodes != 0 {
		rp.Valid = false
		return nil
	}
	rp.Window = p.st.Viewport.NDCToWindow(PerspectiveDivide(v.Clip))
	rp.Color = v.Color
	rp.Valid = true
	return nil
}

// Bitmap hands a bitmap to the active backend at the raster position.
func (p *Pipeline) Bitmap(b *geom.Bitmap) error {
	if err := p.outside("bitmap"); err != nil {
		return err
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("bitmap %dx%d: %w", b.Width, b.Height, glerr.ErrInvalidValue)
	}
	p.asm.Renderer().Bitmap(b, &p.rasterPos)
	return nil
}

// Material sets the lighting material of a face.
func (p *Pipeline) Material(f geom.Face, m lighting.Material) error {
	if err := p.outside("material"); err != nil {
		return err
	}
	switch f {
	case geom.FaceFront:
		p.light.Front = m
	case geom.FaceBack:
		p.light.Back = m
	case geom.FaceFrontAndBack:
		p.light.Front, p.light.Back = m, m
	default:
		return fmt.Errorf("material face %d: %w", int(f), glerr.ErrInvalidEnum)
	}
	return nil
}

// Sun sets a white directional light from longitude and latitude in eye
// space.
func (p *Pipeline) Sun(longitude, latitude float32) {
	p.light.Sun = lighting.NewSun(longitude, latitude)
}

// PointLight adds a point light at an object-space position, stored in eye
// space under the current model-view.
func (p *Pipeline) PointLight(pos math.Vec3, c geom.Color, rng float32) error {
	eye := p.st.ModelView.Top().MulVec4(math.Point(pos))
	l := lighting.NewPointLight(eye.XYZ(), c, rng)
	if !p.light.AddPointLight(l) {
		return fmt.Errorf("point light: more than %d lights: %w", lighting.MaxPointLights, glerr.ErrInvalidOperation)
	}
	return nil
}
