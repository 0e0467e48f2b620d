package pipeline

import (
	"fmt"

	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
)

// MaxEvalOrder is the largest order of an evaluator map on either axis.
const MaxEvalOrder = 30

// Channel is an evaluator attribute channel.
type Channel int

const (
	ChannelColor4 Channel = iota
	ChannelIndex
	ChannelNormal
	ChannelTexCoord1
	ChannelTexCoord2
	ChannelTexCoord3
	ChannelTexCoord4
	ChannelVertex3
	ChannelVertex4

	channelCount
)

var channelDims = [channelCount]int{4, 1, 3, 1, 2, 3, 4, 3, 4}

var channelNames = [channelCount]string{
	"color4", "index", "normal", "texcoord1", "texcoord2",
	"texcoord3", "texcoord4", "vertex3", "vertex4",
}

func (c Channel) String() string {
	if c.valid() {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

func (c Channel) valid() bool {
	return c >= 0 && c < channelCount
}

// Dimension returns the number of components the channel evaluates to.
func (c Channel) Dimension() int {
	if !c.valid() {
		return 0
	}
	return channelDims[c]
}

// ParseChannel converts a channel name into a Channel.
func ParseChannel(s string) (Channel, error) {
	for i, n := range channelNames {
		if n == s {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("evaluator channel %q: %w", s, glerr.ErrInvalidEnum)
}

// Surface describes one Bezier patch: orders along u (major) and v (minor),
// the parameter ranges that map onto [0,1] and the packed control net, u
// major, Dim floats per point.
type Surface struct {
	MajorOrder int
	MinorOrder int
	U1, U2     float32
	V1, V2     float32
	Dim        int
	Points     []float32
}

// Evaluate evaluates the patch at (u, v) in map parameters into out[:Dim].
// out is left untouched while the control net does not cover the orders.
func (s *Surface) Evaluate(u, v float32, out []float32) {
	if !s.ready() {
		return
	}
	uu := (u - s.U1) / (s.U2 - s.U1)
	vv := (v - s.V1) / (s.V2 - s.V1)
	bezierSurface(out, s.Points, s.Dim, s.MajorOrder, s.MinorOrder, uu, vv)
}

// Normal returns the unit surface normal at (u, v), or the raw cross product
// where it has zero length.
func (s *Surface) Normal(u, v float32) math.Vec3 {
	if !s.ready() {
		return math.Vec3{}
	}
	uu := (u - s.U1) / (s.U2 - s.U1)
	vv := (v - s.V1) / (s.V2 - s.V1)
	return bezierNormal(s.Points, s.Dim, s.MajorOrder, s.MinorOrder, uu, vv)
}

// ready reports whether control points have been supplied.
func (s *Surface) ready() bool {
	return len(s.Points) >= s.MajorOrder*s.MinorOrder*s.Dim && s.MajorOrder > 0
}

// Grid is the uniform parameter grid used by EvalMesh2.
type Grid struct {
	NU     int
	U1, U2 float32
	NV     int
	V1, V2 float32
}

func (g Grid) u(i int) float32 {
	if i == g.NU {
		return g.U2
	}
	return g.U1 + float32(i)*(g.U2-g.U1)/float32(g.NU)
}

func (g Grid) v(j int) float32 {
	if j == g.NV {
		return g.V2
	}
	return g.V1 + float32(j)*(g.V2-g.V1)/float32(g.NV)
}

// EvalState is the evaluator part of State.
type EvalState struct {
	Surfaces   [channelCount]Surface
	Enabled    [channelCount]bool
	AutoNormal bool
	Grid       Grid
}

func newEvalState() EvalState {
	var es EvalState
	for c := range es.Surfaces {
		es.Surfaces[c] = Surface{
			MajorOrder: 1,
			MinorOrder: 1,
			U2:         1,
			V2:         1,
			Dim:        channelDims[c],
		}
	}
	es.Grid = Grid{NU: 1, U2: 1, NV: 1, V2: 1}
	return es
}

// MeshMode selects what EvalMesh2 generates.
type MeshMode int

const (
	MeshPoint MeshMode = iota
	MeshLine
	MeshFill
)

// vertexSink receives the vertices the evaluator synthesizes.
type vertexSink interface {
	Begin(mode Primitive) error
	End() error
	Vertex4f(x, y, z, w float32) error
}

// Evaluator evaluates the enabled maps and feeds the results through the
// regular vertex path.
type Evaluator struct {
	st   *State
	sink vertexSink
}

// NewEvaluator creates an evaluator over st emitting into sink.
func NewEvaluator(st *State, sink vertexSink) *Evaluator {
	return &Evaluator{st: st, sink: sink}
}

// Configure sets the orders and parameter ranges of a channel. Control
// points are left untouched.
func (e *Evaluator) Configure(c Channel, major, minor int, u1, u2, v1, v2 float32) error {
	if err := checkMap(c, major, minor, u1, u2, v1, v2); err != nil {
		return err
	}
	e.st.Eval.Surfaces[c].setDomain(major, minor, u1, u2, v1, v2)
	return nil
}

func checkMap(c Channel, major, minor int, u1, u2, v1, v2 float32) error {
	if !c.valid() {
		return fmt.Errorf("map2 channel %d: %w", int(c), glerr.ErrInvalidEnum)
	}
	if major < 1 || major > MaxEvalOrder || minor < 1 || minor > MaxEvalOrder {
		return fmt.Errorf("map2 %s order %dx%d: %w", c, major, minor, glerr.ErrInvalidValue)
	}
	if u1 == u2 || v1 == v2 {
		return fmt.Errorf("map2 %s empty range: %w", c, glerr.ErrInvalidValue)
	}
	return nil
}

func (s *Surface) setDomain(major, minor int, u1, u2, v1, v2 float32) {
	s.MajorOrder = major
	s.MinorOrder = minor
	s.U1, s.U2 = u1, u2
	s.V1, s.V2 = v1, v2
}

// Surface returns the descriptor of a channel.
func (e *Evaluator) Surface(c Channel) (*Surface, error) {
	if !c.valid() {
		return nil, fmt.Errorf("map2 channel %d: %w", int(c), glerr.ErrInvalidEnum)
	}
	return &e.st.Eval.Surfaces[c], nil
}

// Map2 configures a channel and copies its control points. Point (i, j)
// starts at points[i*uStride+j*vStride]; both strides must cover a point.
// A rejected call leaves the channel as it was.
func (e *Evaluator) Map2(c Channel, u1, u2 float32, uStride, uOrder int,
	v1, v2 float32, vStride, vOrder int, points []float32) error {
	if err := checkMap(c, uOrder, vOrder, u1, u2, v1, v2); err != nil {
		return err
	}

	dim := c.Dimension()
	if uStride < dim || vStride < dim {
		return fmt.Errorf("map2 %s stride %d/%d below %d: %w", c, uStride, vStride, dim, glerr.ErrInvalidValue)
	}
	if need := (uOrder-1)*uStride + (vOrder-1)*vStride + dim; len(points) < need {
		return fmt.Errorf("map2 %s needs %d values, got %d: %w", c, need, len(points), glerr.ErrInvalidValue)
	}

	packed := make([]float32, uOrder*vOrder*dim)
	for i := 0; i < uOrder; i++ {
		for j := 0; j < vOrder; j++ {
			copy(packed[(i*vOrder+j)*dim:], points[i*uStride+j*vStride:][:dim])
		}
	}
	s := &e.st.Eval.Surfaces[c]
	s.setDomain(uOrder, vOrder, u1, u2, v1, v2)
	s.Points = packed
	return nil
}

// MapGrid2 defines the grid EvalMesh2 walks.
func (e *Evaluator) MapGrid2(nu int, u1, u2 float32, nv int, v1, v2 float32) error {
	if nu < 1 || nv < 1 {
		return fmt.Errorf("map grid %dx%d: %w", nu, nv, glerr.ErrInvalidValue)
	}
	e.st.Eval.Grid = Grid{NU: nu, U1: u1, U2: u2, NV: nv, V1: v1, V2: v2}
	return nil
}

// active returns the surface of c if it is enabled and has control points.
func (e *Evaluator) active(c Channel) *Surface {
	es := &e.st.Eval
	if !es.Enabled[c] || !es.Surfaces[c].ready() {
		return nil
	}
	return &es.Surfaces[c]
}

// Coord evaluates every enabled map at (u, v), latches normal, color and
// texture coordinate, and emits the position as a vertex. Attributes are
// latched before the position, so each vertex carries its own sample. The
// current attributes are restored afterwards.
func (e *Evaluator) Coord(u, v float32) error {
	cur := &e.st.Current
	saved := *cur
	defer func() { *cur = saved }()

	var r [4]float32

	pos := e.active(ChannelVertex4)
	if pos == nil {
		pos = e.active(ChannelVertex3)
	}

	if n := e.active(ChannelNormal); n != nil {
		n.Evaluate(u, v, r[:])
		cur.Normal = math.Vec3{X: r[0], Y: r[1], Z: r[2]}
	} else if e.st.Eval.AutoNormal && pos != nil {
		cur.Normal = pos.Normal(u, v)
	}

	if c := e.active(ChannelColor4); c != nil {
		c.Evaluate(u, v, r[:])
		cur.Color.R, cur.Color.G, cur.Color.B, cur.Color.A = r[0], r[1], r[2], r[3]
	}

	for _, ch := range [...]Channel{ChannelTexCoord4, ChannelTexCoord3, ChannelTexCoord2, ChannelTexCoord1} {
		t := e.active(ch)
		if t == nil {
			continue
		}
		tc := [4]float32{0, 0, 0, 1}
		t.Evaluate(u, v, tc[:])
		cur.TexCoords[0] = tc
		break
	}

	if pos == nil {
		return nil
	}
	r = [4]float32{0, 0, 0, 1}
	pos.Evaluate(u, v, r[:])
	return e.sink.Vertex4f(r[0], r[1], r[2], r[3])
}

// Mesh walks grid points i1..i2 along u and j1..j2 along v.
func (e *Evaluator) Mesh(mode MeshMode, i1, i2, j1, j2 int) error {
	g := e.st.Eval.Grid

	switch mode {
	case MeshPoint:
		return e.strip(Points, i1, i2, func(i int) error {
			for j := j1; j <= j2; j++ {
				if err := e.Coord(g.u(i), g.v(j)); err != nil {
					return err
				}
			}
			return nil
		})

	case MeshLine:
		for j := j1; j <= j2; j++ {
			if err := e.strip(LineStrip, i1, i2, func(i int) error {
				return e.Coord(g.u(i), g.v(j))
			}); err != nil {
				return err
			}
		}
		for i := i1; i <= i2; i++ {
			if err := e.strip(LineStrip, j1, j2, func(j int) error {
				return e.Coord(g.u(i), g.v(j))
			}); err != nil {
				return err
			}
		}
		return nil

	case MeshFill:
		for j := j1; j < j2; j++ {
			if err := e.strip(TriangleStrip, i1, i2, func(i int) error {
				if err := e.Coord(g.u(i), g.v(j)); err != nil {
					return err
				}
				return e.Coord(g.u(i), g.v(j+1))
			}); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("eval mesh mode %d: %w", int(mode), glerr.ErrInvalidEnum)
}

// strip emits one begin/end block calling step for lo..hi.
func (e *Evaluator) strip(mode Primitive, lo, hi int, step func(int) error) error {
	if err := e.sink.Begin(mode); err != nil {
		return err
	}
	for k := lo; k <= hi; k++ {
		if err := step(k); err != nil {
			_ = e.sink.End()
			return err
		}
	}
	return e.sink.End()
}
