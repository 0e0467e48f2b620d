package picking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
	"github.com/Faultbox/softgl/pkg/pipeline"
	"github.com/Faultbox/softgl/pkg/render"
)

func TestParseHits(t *testing.T) {
	buf := []uint32{
		1, 900, 950, 7,
		0, 100, 200,
		2, 400, 500, 1, 2,
		99, // beyond the reported count
	}

	hits, err := ParseHits(buf, 3)
	require.NoError(t, err)

	want := []Hit{
		{Names: []uint32{}, MinDepth: 100, MaxDepth: 200},
		{Names: []uint32{1, 2}, MinDepth: 400, MaxDepth: 500},
		{Names: []uint32{7}, MinDepth: 900, MaxDepth: 950},
	}
	if diff := cmp.Diff(want, hits); diff != "" {
		t.Errorf("hits mismatch (-want +got):\n%s", diff)
	}

	name, ok := hits[1].Name()
	assert.True(t, ok)
	assert.Equal(t, uint32(2), name)
	_, ok = hits[0].Name()
	assert.False(t, ok)
}

func TestParseHitsOverflowCount(t *testing.T) {
	hits, err := ParseHits([]uint32{1, 5, 6, 3}, -1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, []uint32{3}, hits[0].Names)
}

func TestParseHitsTruncated(t *testing.T) {
	_, err := ParseHits([]uint32{2, 5, 6, 3}, 1)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = ParseHits([]uint32{0, 5}, 1)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestHitDepths(t *testing.T) {
	h := Hit{MinDepth: render.DepthToUint(0.25), MaxDepth: render.DepthToUint(1)}
	assert.InDelta(t, 0.25, h.Near(), 1e-6)
	assert.InDelta(t, 1, h.Far(), 1e-6)
}

func TestPickMatrix(t *testing.T) {
	vp := pipeline.NewViewport(0, 0, 100, 100)

	m, err := PickMatrix(75, 25, 10, 10, vp)
	require.NoError(t, err)

	// the pick center lands at the origin, its edges on the volume faces
	c := m.MulVec4(math.Vec4{0.5, 0.5, 0, 1})
	assert.InDelta(t, 0, c[0], 1e-5)
	assert.InDelta(t, 0, c[1], 1e-5)
	e := m.MulVec4(math.Vec4{0.6, 0.4, 0.3, 1})
	assert.InDelta(t, 1, e[0], 1e-5)
	assert.InDelta(t, -1, e[1], 1e-5)
	assert.InDelta(t, 0.3, e[2], 1e-6)

	_, err = PickMatrix(0, 0, 0, 5, vp)
	assert.ErrorIs(t, err, glerr.ErrInvalidValue)
}

// pickScene draws two named quads side by side and selects around (x, y).
func pickScene(t *testing.T, x, y float32) []Hit {
	t.Helper()
	p := pipeline.New(pipeline.Config{Width: 100, Height: 100})
	buf := make([]uint32, 32)
	require.NoError(t, p.SelectBuffer(len(buf), buf))

	pick, err := PickMatrix(x, y, 4, 4, p.State().Viewport)
	require.NoError(t, err)
	require.NoError(t, p.MatrixMode(pipeline.Projection))
	require.NoError(t, p.LoadMatrix(pick))
	require.NoError(t, p.MatrixMode(pipeline.ModelView))

	_, err = p.RenderMode(render.ModeSelect)
	require.NoError(t, err)
	require.NoError(t, p.PushName(0))

	quad := func(name uint32, x0, z float32) {
		require.NoError(t, p.LoadName(name))
		require.NoError(t, p.Begin(pipeline.Quads))
		require.NoError(t, p.Vertex3f(x0, -0.5, z))
		require.NoError(t, p.Vertex3f(x0+0.8, -0.5, z))
		require.NoError(t, p.Vertex3f(x0+0.8, 0.5, z))
		require.NoError(t, p.Vertex3f(x0, 0.5, z))
		require.NoError(t, p.End())
	}
	quad(1, -0.9, 0.5)
	quad(2, 0.1, -0.5)

	n, err := p.RenderMode(render.ModeRender)
	require.NoError(t, err)
	hits, err := ParseHits(buf, n)
	require.NoError(t, err)
	return hits
}

func TestPickSelectsUnderPoint(t *testing.T) {
	hits := pickScene(t, 25, 50)
	require.Len(t, hits, 1)
	assert.Equal(t, []uint32{1}, hits[0].Names)
	assert.InDelta(t, 0.75, hits[0].Near(), 1e-5)

	hits = pickScene(t, 75, 50)
	require.Len(t, hits, 1)
	assert.Equal(t, []uint32{2}, hits[0].Names)
	assert.InDelta(t, 0.25, hits[0].Near(), 1e-5)

	// the gap between the quads
	assert.Empty(t, pickScene(t, 50, 50))
}

func TestScreenToRay(t *testing.T) {
	vp := pipeline.NewViewport(0, 0, 100, 100)
	proj := math.Perspective(1, 1, 1, 10)
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(50, 50, vp, inv)
	assert.InDelta(t, 4, r.Origin.Z, 1e-3)
	assert.InDelta(t, -1, r.Direction.Z, 1e-4)

	box := NewAABB(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, math.Vec3{X: -0.5, Y: -0.5, Z: -0.5})
	d, ok := r.IntersectAABB(box)
	require.True(t, ok)
	assert.InDelta(t, 3.5, d, 1e-3)
	assert.InDelta(t, 0.5, r.At(d).Z, 1e-3)

	// a corner of the window misses the box
	_, ok = ScreenToRay(0, 0, vp, inv).IntersectAABB(box)
	assert.False(t, ok)
}

func TestIntersectFromInside(t *testing.T) {
	r := Ray{Direction: math.Vec3{X: 1}}
	d, ok := r.IntersectAABB(NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 2, Y: 1, Z: 1}))
	require.True(t, ok)
	assert.InDelta(t, 2, d, 1e-6)

	_, ok = Ray{Origin: math.Vec3{Y: 5}, Direction: math.Vec3{X: 1}}.IntersectAABB(NewAABB(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}))
	assert.False(t, ok)
}
