package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
)

func TestRetentionRules(t *testing.T) {
	pt := func(a int) prim { return prim{Kind: "point", IDs: []int{a}, Provoking: a} }
	ln := func(a, b int) prim { return prim{Kind: "line", IDs: []int{a, b}, Provoking: b} }
	poly := func(provoking int, ids ...int) prim {
		return prim{Kind: "polygon", IDs: ids, Provoking: provoking}
	}

	// A..H are vertex ids 1..8
	const A, B, C, D, E, F, G, H = 1, 2, 3, 4, 5, 6, 7, 8

	tests := []struct {
		name string
		mode Primitive
		ids  []int
		want []prim
	}{
		{"points", Points, []int{A, B, C}, []prim{pt(A), pt(B), pt(C)}},
		{"lines", Lines, []int{A, B, C, D, E}, []prim{ln(A, B), ln(C, D)}},
		{"line strip", LineStrip, []int{A, B, C, D}, []prim{ln(A, B), ln(B, C), ln(C, D)}},
		{"line strip single", LineStrip, []int{A}, nil},
		{"line loop", LineLoop, []int{A, B, C, D}, []prim{ln(A, B), ln(B, C), ln(C, D), ln(D, A)}},
		{"line loop pair", LineLoop, []int{A, B}, []prim{ln(A, B), ln(B, A)}},
		{"line loop single", LineLoop, []int{A}, nil},
		{"triangles", Triangles, []int{A, B, C, D, E, F, G}, []prim{poly(C, A, B, C), poly(F, D, E, F)}},
		{"triangle strip", TriangleStrip, []int{A, B, C, D, E, F}, []prim{
			poly(C, A, B, C),
			poly(D, C, B, D),
			poly(E, C, D, E),
			poly(F, E, D, F),
		}},
		{"triangle fan", TriangleFan, []int{A, B, C, D, E}, []prim{
			poly(C, A, B, C),
			poly(D, A, C, D),
			poly(E, A, D, E),
		}},
		{"quads", Quads, []int{A, B, C, D, E, F, G, H, A}, []prim{
			poly(D, A, B, C, D),
			poly(H, E, F, G, H),
		}},
		{"quad strip five", QuadStrip, []int{A, B, C, D, E}, []prim{poly(D, A, B, D, C)}},
		{"quad strip six", QuadStrip, []int{A, B, C, D, E, F}, []prim{
			poly(D, A, B, D, C),
			poly(F, C, D, F, E),
		}},
		{"quad strip eight", QuadStrip, []int{A, B, C, D, E, F, G, H}, []prim{
			poly(D, A, B, D, C),
			poly(F, C, D, F, E),
			poly(H, E, F, H, G),
		}},
		{"polygon", Polygon, []int{A, B, C, D, E}, []prim{poly(E, A, B, C, D, E)}},
		{"polygon empty", Polygon, nil, nil},
		{"polygon single", Polygon, []int{A}, []prim{pt(A)}},
		{"polygon pair", Polygon, []int{A, B}, []prim{ln(A, B)}},
	}

	ignoreFacing := cmpopts.IgnoreFields(prim{}, "Facing")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, rec := idPipeline(t)
			submitIDs(t, p, tt.mode, tt.ids...)
			if diff := cmp.Diff(tt.want, rec.prims, ignoreFacing, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("primitives mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNextSlot(t *testing.T) {
	tests := []struct {
		mode Primitive
		want []int
	}{
		{Points, []int{0, 0, 0}},
		{Lines, []int{1, 0, 1, 0}},
		{LineStrip, []int{1, 1, 1, 1}},
		{LineLoop, []int{2, 2, 2, 2}},
		{Triangles, []int{1, 2, 0, 1}},
		{TriangleStrip, []int{1, 2, 0, 1, 2}},
		{TriangleFan, []int{1, 2, 1, 2}},
		{Quads, []int{1, 2, 3, 0}},
		{QuadStrip, []int{1, 3, 2, 0, 1, 3, 2}},
		{Polygon, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			p, _ := idPipeline(t)
			require.NoError(t, p.Begin(tt.mode))
			var got []int
			for i := range tt.want {
				v := p.asm.Slot()
				v.Object = vec4(float32(i+1), 0, 0, 1)
				p.proc.Process(v)
				next, err := p.asm.Submit()
				require.NoError(t, err)
				got = append(got, next)
			}
			require.NoError(t, p.End())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuadStripSlots(t *testing.T) {
	p, _ := idPipeline(t)
	submit := func(n int) {
		v := p.asm.Slot()
		v.Object = vec4(float32(n), 0, 0, 1)
		p.proc.Process(v)
		_, err := p.asm.Submit()
		require.NoError(t, err)
	}

	require.NoError(t, p.Begin(QuadStrip))
	for n := 1; n <= 4; n++ {
		submit(n)
	}
	// the third and fourth vertices sit swapped in slots 3 and 2
	assert.Equal(t, 3, id(p.asm.Vertex(3)))
	assert.Equal(t, 4, id(p.asm.Vertex(2)))
	require.NoError(t, p.End())
}

func TestPolygonOverflow(t *testing.T) {
	p, rec := idPipeline(t)
	require.NoError(t, p.Begin(Polygon))
	for i := 0; i < VertexBufferSize; i++ {
		require.NoError(t, p.Vertex2f(float32(i%50+1), float32(i%2)*0.5))
	}
	err := p.Vertex2f(1, 0)
	assert.ErrorIs(t, err, glerr.ErrInvalidOperation)
	require.NoError(t, p.End())

	require.Len(t, rec.prims, 1)
	assert.Len(t, rec.prims[0].IDs, VertexBufferSize)
}

func TestBeginEndErrors(t *testing.T) {
	p, _ := idPipeline(t)

	assert.ErrorIs(t, p.Begin(Primitive(42)), glerr.ErrInvalidEnum)
	assert.ErrorIs(t, p.End(), glerr.ErrInvalidOperation)
	assert.ErrorIs(t, p.Vertex2f(1, 1), glerr.ErrInvalidOperation)

	require.NoError(t, p.Begin(Lines))
	assert.ErrorIs(t, p.Begin(Lines), glerr.ErrInvalidOperation)
	assert.ErrorIs(t, p.Enable(Lighting), glerr.ErrInvalidOperation)
	assert.ErrorIs(t, p.PushMatrix(), glerr.ErrInvalidOperation)
	require.NoError(t, p.End())
}

func TestTrivialRejectionSkipsClipper(t *testing.T) {
	cc := &countingClipper{}
	p := New(Config{Width: 10, Height: 10, Clipper: cc})
	rec := &recorder{}
	p.asm.SetRenderer(rec)

	// both endpoints beyond x = w share the right plane
	require.NoError(t, p.Begin(Lines))
	require.NoError(t, p.Vertex2f(2, 0))
	require.NoError(t, p.Vertex2f(3, 0.5))
	require.NoError(t, p.End())

	require.NoError(t, p.Begin(Triangles))
	require.NoError(t, p.Vertex2f(2, 0))
	require.NoError(t, p.Vertex2f(3, 0))
	require.NoError(t, p.Vertex2f(2, 5)) // also above top
	require.NoError(t, p.End())

	assert.Equal(t, 0, cc.lines)
	assert.Equal(t, 0, cc.polygons)
	assert.Empty(t, rec.prims)

	// a straddling line does reach the clipper
	require.NoError(t, p.Begin(Lines))
	require.NoError(t, p.Vertex2f(0, 0))
	require.NoError(t, p.Vertex2f(2, 0))
	require.NoError(t, p.End())
	assert.Equal(t, 1, cc.lines)

	// fully inside primitives are trivially accepted
	require.NoError(t, p.Begin(Triangles))
	require.NoError(t, p.Vertex2f(0, 0))
	require.NoError(t, p.Vertex2f(0.5, 0))
	require.NoError(t, p.Vertex2f(0, 0.5))
	require.NoError(t, p.End())
	assert.Equal(t, 0, cc.polygons)
	assert.Len(t, rec.prims, 2)
}

func TestPointOutsideDiscarded(t *testing.T) {
	p := New(Config{Width: 10, Height: 10})
	rec := &recorder{}
	p.asm.SetRenderer(rec)

	require.NoError(t, p.Begin(Points))
	require.NoError(t, p.Vertex2f(0, 0))
	require.NoError(t, p.Vertex2f(0, 1.5))
	require.NoError(t, p.End())

	assert.Len(t, rec.prims, 1)
}

func TestClippedLineKeepsStripVertex(t *testing.T) {
	p := New(Config{Width: 10, Height: 10})
	var got [][2]math.Vec4
	p.asm.SetRenderer(lineFunc(func(v0, v1 *geom.Vertex) {
		got = append(got, [2]math.Vec4{v0.NDC, v1.NDC})
	}))

	// the first segment is clipped at x = 1; the second must still start
	// from the unclipped (2, 0), which puts its clipped start at y = 0.25
	require.NoError(t, p.Begin(LineStrip))
	require.NoError(t, p.Vertex2f(0, 0))
	require.NoError(t, p.Vertex2f(2, 0))
	require.NoError(t, p.Vertex2f(0, 0.5))
	require.NoError(t, p.End())

	require.Len(t, got, 2)
	assert.InDelta(t, 1, got[0][1][0], 1e-6)
	assert.InDelta(t, 0, got[0][1][1], 1e-6)
	assert.InDelta(t, 1, got[1][0][0], 1e-6)
	assert.InDelta(t, 0.25, got[1][0][1], 1e-6)
}

// lineFunc adapts a function to a renderer that only cares about lines.
type lineFunc func(v0, v1 *geom.Vertex)

func (f lineFunc) Point(*geom.Vertex)                   {}
func (f lineFunc) Line(v0, v1 *geom.Vertex)             { f(v0, v1) }
func (f lineFunc) Polygon(*geom.Polygon)                {}
func (f lineFunc) Bitmap(*geom.Bitmap, *geom.RasterPos) {}
