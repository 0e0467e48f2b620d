package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/softgl/internal/logger"
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
	"github.com/Faultbox/softgl/pkg/render"
)

// VertexBufferSize is the number of vertex slots the assembler owns. It is
// also the largest polygon a begin/end block can describe.
const VertexBufferSize = geom.MaxPolygonVertices

// Primitive is a begin mode: the topology of a vertex stream.
type Primitive int

const (
	Points Primitive = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
	Quads
	QuadStrip
	Polygon
)

var primitiveNames = [...]string{
	"points", "lines", "line_loop", "line_strip", "triangles",
	"triangle_strip", "triangle_fan", "quads", "quad_strip", "polygon",
}

func (p Primitive) String() string {
	if p.valid() {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

func (p Primitive) valid() bool {
	return p >= Points && p <= Polygon
}

// Assembler rebuilds primitives from a begin/end vertex stream held in a
// fixed set of slots, then trivially rejects, clips, maps, shades and
// renders them.
//
// The caller fills Slot() and calls Submit, which applies the retention
// rule of the current mode and picks the slot for the next vertex. Slots
// are reused, so nothing is allocated per vertex.
type Assembler struct {
	st       *State
	clipper  Clipper
	lighter  Lighter
	tex      TexCoordProcessor
	renderer render.Renderer

	mode   Primitive
	inside bool

	slots [VertexBufferSize]geom.Vertex
	// spill receives the vertex that would overflow a polygon.
	spill geom.Vertex
	next  int
	count int

	// ring orders the slots of strips and fans, oldest first.
	ring [4]int
	odd  bool

	line [2]geom.Vertex
	poly geom.Polygon
}

// NewAssembler creates an assembler over st. The renderer is bound later
// with SetRenderer; a nil lighter or texture processor disables that stage.
func NewAssembler(st *State, clipper Clipper, lighter Lighter, tex TexCoordProcessor) *Assembler {
	return &Assembler{
		st:      st,
		clipper: clipper,
		lighter: lighter,
		tex:     tex,
	}
}

// SetRenderer binds the backend that receives finished primitives.
func (a *Assembler) SetRenderer(r render.Renderer) {
	a.renderer = r
}

// Renderer returns the bound backend.
func (a *Assembler) Renderer() render.Renderer {
	return a.renderer
}

// Mode returns the current begin mode.
func (a *Assembler) Mode() Primitive {
	return a.mode
}

// Inside reports whether a begin/end block is open.
func (a *Assembler) Inside() bool {
	return a.inside
}

// Begin opens a block of the given mode.
func (a *Assembler) Begin(mode Primitive) error {
	if !mode.valid() {
		return fmt.Errorf("begin %d: %w", int(mode), glerr.ErrInvalidEnum)
	}
	if a.inside {
		return fmt.Errorf("begin %s: %w", mode, glerr.ErrInvalidOperation)
	}
	a.mode = mode
	a.inside = true
	a.next = 0
	a.count = 0
	a.ring = [4]int{0, 1, 2, 3}
	a.odd = false
	return nil
}

// Slot returns the slot the next submitted vertex must be written to.
func (a *Assembler) Slot() *geom.Vertex {
	if a.next == VertexBufferSize {
		return &a.spill
	}
	return &a.slots[a.next]
}

// Next returns the index of the slot for the next vertex.
func (a *Assembler) Next() int {
	return a.next
}

// Vertex returns slot i.
func (a *Assembler) Vertex(i int) *geom.Vertex {
	return &a.slots[i]
}

// Submit takes the vertex in Slot() into the current primitive, renders
// whatever primitive it completes and returns the slot for the next vertex.
func (a *Assembler) Submit() (int, error) {
	if !a.inside {
		return a.next, fmt.Errorf("vertex outside begin/end: %w", glerr.ErrInvalidOperation)
	}

	cur := a.next
	switch a.mode {
	case Points:
		a.completePoint(0)
		a.next = 0

	case Lines:
		if a.count == 1 {
			a.completeLine(0, 1)
			a.count = 0
			a.next = 0
		} else {
			a.count = 1
			a.next = 1
		}

	case LineStrip:
		if a.count == 1 {
			a.completeLine(0, 1)
			a.slots[0] = a.slots[1]
		} else {
			a.count = 1
		}
		a.next = 1

	case LineLoop:
		// slot 0 keeps the first vertex, slot 1 the current end and slot 2
		// takes each new vertex
		switch a.count {
		case 0:
			a.slots[1] = a.slots[0]
			a.count = 1
		default:
			a.completeLine(1, 2)
			a.slots[1] = a.slots[2]
			a.count = 2
		}
		a.next = 2

	case Triangles:
		if a.count == 2 {
			a.completePolygon(a.ring[:3], 2)
			a.count = 0
			a.next = 0
		} else {
			a.count++
			a.next = a.count
		}

	case TriangleStrip:
		a.submitStrip()

	case TriangleFan:
		a.submitFan()

	case Quads:
		if a.count == 3 {
			a.completePolygon(a.ring[:4], 3)
			a.count = 0
			a.next = 0
		} else {
			a.count++
			a.next = a.count
		}

	case QuadStrip:
		a.submitQuadStrip()

	case Polygon:
		if cur == VertexBufferSize {
			logger.Warn("polygon exceeds vertex buffer", zap.Int("capacity", VertexBufferSize))
			return a.next, fmt.Errorf("polygon with more than %d vertices: %w",
				VertexBufferSize, glerr.ErrInvalidOperation)
		}
		a.count++
		a.next = a.count
	}
	return a.next, nil
}

// submitStrip keeps the last two vertices in ring[0] (older) and ring[1]
// and takes the new one in ring[2]. Odd triangles swap the first two so
// every triangle keeps the winding of the first.
func (a *Assembler) submitStrip() {
	r := &a.ring
	if a.count < 2 {
		a.count++
		a.next = r[a.count]
		return
	}

	var tri [3]int
	if a.odd {
		tri = [3]int{r[1], r[0], r[2]}
	} else {
		tri = [3]int{r[0], r[1], r[2]}
	}
	a.completePolygon(tri[:], 2)
	a.odd = !a.odd

	r[0], r[1], r[2] = r[1], r[2], r[0]
	a.next = r[2]
}

// submitFan keeps slot 0 as the hub, ring[1] as the previous rim vertex and
// takes the new one in ring[2].
func (a *Assembler) submitFan() {
	r := &a.ring
	if a.count < 2 {
		a.count++
		a.next = r[a.count]
		return
	}

	tri := [3]int{0, r[1], r[2]}
	a.completePolygon(tri[:], 2)

	r[1], r[2] = r[2], r[1]
	a.next = r[2]
}

// submitQuadStrip keeps the leading edge in ring[0] and ring[1]. The third
// vertex of each quad goes to ring[3] and the fourth to ring[2], so the
// slots in ring order already describe the quad's boundary.
func (a *Assembler) submitQuadStrip() {
	r := &a.ring
	switch a.count {
	case 0:
		a.count = 1
		a.next = r[1]
	case 1:
		a.count = 2
		a.next = r[3]
	case 2:
		a.count = 3
		a.next = r[2]
	case 3:
		a.completePolygon(r[:], 2)
		// the trailing edge (third, fourth) becomes the leading edge
		r[0], r[1], r[2], r[3] = r[3], r[2], r[1], r[0]
		a.count = 2
		a.next = r[3]
	}
}

// End closes the block, completing a polygon or a line loop.
func (a *Assembler) End() error {
	if !a.inside {
		return fmt.Errorf("end without begin: %w", glerr.ErrInvalidOperation)
	}
	a.inside = false

	switch a.mode {
	case LineLoop:
		if a.count == 2 {
			// the first vertex closes the loop and provokes it
			a.completeLine(1, 0)
		}
	case Polygon:
		switch n := a.count; {
		case n == 1:
			a.completePoint(0)
		case n == 2:
			a.completeLine(0, 1)
		case n >= 3:
			var idx [VertexBufferSize]int
			for i := range idx[:n] {
				idx[i] = i
			}
			a.completePolygon(idx[:n], n-1)
		}
	}
	a.count = 0
	a.next = 0
	return nil
}

// completePoint renders slot i unless it lies outside any clip plane.
func (a *Assembler) completePoint(i int) {
	v := &a.slots[i]
	if v.ClipCodes != 0 {
		return
	}
	a.toWindow(v)
	vs := [1]*geom.Vertex{v}
	a.shade(vs[:], geom.FaceFront, v)
	a.renderer.Point(v)
}

// completeLine renders the segment from slot i0 to slot i1, which
// provokes it. Clipping works on copies so retained slots stay intact.
func (a *Assembler) completeLine(i0, i1 int) {
	c0, c1 := a.slots[i0].ClipCodes, a.slots[i1].ClipCodes
	if c0&c1 != 0 {
		return
	}

	v0, v1 := &a.line[0], &a.line[1]
	*v0, *v1 = a.slots[i0], a.slots[i1]
	if or := c0 | c1; or != 0 {
		if a.clipper.ClipLine(v0, v1, or) {
			return
		}
	}

	a.toWindow(v0)
	a.toWindow(v1)
	vs := [2]*geom.Vertex{v0, v1}
	a.shade(vs[:], geom.FaceFront, v1)
	a.renderer.Line(v0, v1)
}

// completePolygon renders the polygon through the given slots. provoking
// indexes idx and names the last submitted vertex.
func (a *Assembler) completePolygon(idx []int, provoking int) {
	p := &a.poly
	p.Reset()

	and, or := geom.ClipMask, geom.ClipCode(0)
	for k, i := range idx {
		v := p.AddCopy(&a.slots[i])
		and &= v.ClipCodes
		or |= v.ClipCodes
		if k == provoking {
			p.Provoking = v
		}
	}
	if and&geom.ClipMask != 0 {
		return
	}

	if or&geom.ClipMask != 0 {
		if a.clipper.ClipPolygon(p, or&geom.ClipMask) {
			return
		}
	}

	if p.Len() < 3 {
		return
	}
	for _, v := range p.Vertices {
		a.toWindow(v)
	}

	p.Facing = a.st.facing(SignedArea(p.Vertices[0], p.Vertices[1], p.Vertices[2]))
	if a.st.culled(p.Facing) {
		return
	}

	a.shade(p.Vertices, p.Facing, p.Provoking)
	a.renderer.Polygon(p)
}

// shade runs lighting, texture coordinate processing and fog over the
// vertices of one primitive.
func (a *Assembler) shade(vs []*geom.Vertex, face geom.Face, provoking *geom.Vertex) {
	st := a.st

	if st.Lighting && a.lighter != nil {
		if st.Shade == Smooth {
			for _, v := range vs {
				a.lighter.Apply(v, face)
			}
		} else {
			a.lighter.Apply(provoking, face)
			for _, v := range vs {
				v.Color = provoking.Color
			}
		}
	}

	if st.TextureUnits != 0 && a.tex != nil {
		a.tex.ProcessCoordinates(vs)
	}

	// nicest fog is left to the rasterizer
	if st.Fog && st.FogHint != Nicest {
		for _, v := range vs {
			v.ComputeFog(st.FogParams)
		}
	}
}

func (a *Assembler) toWindow(v *geom.Vertex) {
	v.NDC = PerspectiveDivide(v.Clip)
	v.Window = a.st.Viewport.NDCToWindow(v.NDC)
}

// SignedArea returns (v0-v2) x (v1-v2) over window x and y.
func SignedArea(v0, v1, v2 *geom.Vertex) float32 {
	c := windowXY(v2)
	return windowXY(v0).Sub(c).Cross(windowXY(v1).Sub(c))
}

func windowXY(v *geom.Vertex) math.Vec2 {
	return math.Vec2{X: v.Window[0], Y: v.Window[1]}
}
