package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softgl/pkg/math"
)

func TestFogFactor(t *testing.T) {
	tests := []struct {
		name string
		p    FogParams
		z    float32
		want float32
	}{
		{"linear midway", FogParams{Mode: FogLinear, Start: 1, End: 3}, -2, 0.5},
		{"linear before start", FogParams{Mode: FogLinear, Start: 1, End: 3}, 0, 1},
		{"linear past end", FogParams{Mode: FogLinear, Start: 1, End: 3}, 10, 0},
		{"linear empty range", FogParams{Mode: FogLinear, Start: 2, End: 2}, 1, 0},
		{"exp", FogParams{Mode: FogExp, Density: 0.5}, -2, math32.Exp(-1)},
		{"exp2", FogParams{Mode: FogExp2, Density: 0.5}, 2, math32.Exp(-1)},
		{"exp at eye", FogParams{Mode: FogExp, Density: 3}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FogFactor(tt.p, tt.z), 1e-6)
		})
	}
}

func TestComputeFogUsesEyeDepth(t *testing.T) {
	v := Vertex{Eye: math.Vec4{5, 5, -1, 1}}
	v.ComputeFog(FogParams{Mode: FogLinear, Start: 0, End: 4})
	assert.InDelta(t, 0.75, v.Fog, 1e-6)
}

func TestFrustumCodes(t *testing.T) {
	assert.Equal(t, ClipCode(0), FrustumCodes(math.Vec4{1, -1, 0.5, 1}))
	assert.Equal(t, ClipLeft|ClipBottom|ClipNear, FrustumCodes(math.Vec4{-3, -3, -3, 2}))
	assert.Equal(t, ClipRight|ClipTop|ClipFar, FrustumCodes(math.Vec4{3, 3, 3, 2}))

	// behind the eye every coordinate compares against a negative w
	assert.Equal(t, ClipFrustumMask, FrustumCodes(math.Vec4{0, 0, 0, -1}))
}

func TestClipMasks(t *testing.T) {
	assert.Equal(t, ClipCode(1<<6), UserPlane(0))
	assert.Equal(t, ClipCode(1<<11), UserPlane(5))
	assert.Equal(t, ClipCode(0xfc0), ClipUserMask)
	assert.Equal(t, ClipCode(0xfff), ClipMask)
	assert.Zero(t, ClipFrustumMask&ClipUserMask)
}

func TestPolygonScratch(t *testing.T) {
	var p Polygon
	p.Reset()

	a := &Vertex{Fog: 1}
	c := p.AddCopy(a)
	require.NotSame(t, a, c)
	assert.Equal(t, *a, *c)
	c.Fog = 2
	assert.Equal(t, float32(1), a.Fog)

	p.AddCopy(&Vertex{Fog: 3})
	p.AddCopy(&Vertex{Fog: 4})
	require.Equal(t, 3, p.Len())

	// build a replacement list from the spare array and install it
	out := p.Spare()
	require.Empty(t, out)
	nv := p.NewVertex()
	require.NotNil(t, nv)
	nv.Fog = 9
	out = append(out, p.Vertices[2], nv)
	p.SetVertices(out)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, float32(9), p.Vertices[1].Fog)

	// the next spare list must not alias the installed one
	next := p.Spare()
	next = append(next, p.Vertices[1])
	assert.Equal(t, float32(4), p.Vertices[0].Fog)
	assert.Len(t, next, 1)

	for i := 1; i < 2*PolygonCapacity; i++ {
		require.NotNil(t, p.NewVertex())
	}
	assert.Nil(t, p.NewVertex())

	p.Reset()
	assert.Zero(t, p.Len())
	assert.Nil(t, p.Provoking)
	assert.NotNil(t, p.NewVertex())
}

func TestFaceString(t *testing.T) {
	assert.Equal(t, "front", FaceFront.String())
	assert.Equal(t, "back", FaceBack.String())
	assert.Equal(t, "front_and_back", FaceFrontAndBack.String())
	assert.Equal(t, "unknown", Face(7).String())
}

func TestBitmapBits(t *testing.T) {
	b := &Bitmap{
		Width: 10, Height: 2,
		Bits: []byte{
			0x80, 0x40, // row 0: x = 0 and x = 9
			0x01, 0x00, // row 1: x = 7
		},
	}

	assert.True(t, b.Bit(0, 0))
	assert.False(t, b.Bit(1, 0))
	assert.True(t, b.Bit(9, 0))
	assert.True(t, b.Bit(7, 1))
	assert.False(t, b.Bit(8, 1))
	assert.False(t, b.Bit(0, 5))
}

func TestBitmapAdvance(t *testing.T) {
	b := &Bitmap{XMove: 4, YMove: 2}

	rp := RasterPos{Window: math.Vec4{10, 10, 0, 1}, Valid: true}
	b.Advance(&rp)
	assert.Equal(t, math.Vec4{14, 8, 0, 1}, rp.Window)

	rp.Valid = false
	b.Advance(&rp)
	assert.Equal(t, math.Vec4{14, 8, 0, 1}, rp.Window)
}
