package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/math"
)

// prim is one primitive seen by the recorder. Vertices are identified by
// their object-space x, which tests set to a small integer id.
type prim struct {
	Kind      string
	IDs       []int
	Provoking int
	Facing    geom.Face
}

type recorder struct {
	prims   []prim
	bitmaps int
}

func id(v *geom.Vertex) int {
	return int(v.Object[0] + 0.5)
}

func (r *recorder) Point(v *geom.Vertex) {
	r.prims = append(r.prims, prim{Kind: "point", IDs: []int{id(v)}, Provoking: id(v)})
}

func (r *recorder) Line(v0, v1 *geom.Vertex) {
	r.prims = append(r.prims, prim{Kind: "line", IDs: []int{id(v0), id(v1)}, Provoking: id(v1)})
}

func (r *recorder) Polygon(p *geom.Polygon) {
	ids := make([]int, 0, p.Len())
	for _, v := range p.Vertices {
		ids = append(ids, id(v))
	}
	r.prims = append(r.prims, prim{Kind: "polygon", IDs: ids, Provoking: id(p.Provoking), Facing: p.Facing})
}

func (r *recorder) Bitmap(b *geom.Bitmap, rp *geom.RasterPos) {
	r.bitmaps++
}

// countingClipper records how often it is asked to clip and accepts
// everything.
type countingClipper struct {
	lines, polygons int
}

func (c *countingClipper) ClipLine(v0, v1 *geom.Vertex, codes geom.ClipCode) bool {
	c.lines++
	return false
}

func (c *countingClipper) ClipPolygon(p *geom.Polygon, codes geom.ClipCode) bool {
	c.polygons++
	return false
}

// idPipeline returns a pipeline whose projection maps object x in
// [0, 100] into the view volume, so vertex ids stay inside the frustum,
// with a recorder bound as the renderer.
func idPipeline(t *testing.T) (*Pipeline, *recorder) {
	t.Helper()
	p := New(Config{Width: 100, Height: 100})
	require.NoError(t, p.MatrixMode(Projection))
	require.NoError(t, p.Ortho(0, 100, -1, 1, -1, 1))
	require.NoError(t, p.MatrixMode(ModelView))

	rec := &recorder{}
	p.asm.SetRenderer(rec)
	return p, rec
}

// submitIDs emits one vertex per id in a begin/end block. Vertices get a
// small y offset per id so triangles are not degenerate.
func submitIDs(t *testing.T, p *Pipeline, mode Primitive, ids ...int) {
	t.Helper()
	require.NoError(t, p.Begin(mode))
	for i, n := range ids {
		y := float32(i%3) * 0.25
		require.NoError(t, p.Vertex4f(float32(n), y, 0, 1))
	}
	require.NoError(t, p.End())
}

func vec4(x, y, z, w float32) math.Vec4 {
	return math.Vec4{x, y, z, w}
}
