package pipeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softgl/pkg/math"
)

// bernstein evaluates sum C(n,i) t^i (1-t)^(n-i) P_i in float64.
func bernstein(cp []float32, stride, dim, order int, t float64) []float64 {
	out := make([]float64, dim)
	n := order - 1
	for i := 0; i < order; i++ {
		b := binomial(n, i)
		for k := 0; k < i; k++ {
			b *= t
		}
		for k := 0; k < n-i; k++ {
			b *= 1 - t
		}
		for k := 0; k < dim; k++ {
			out[k] += b * float64(cp[i*stride+k])
		}
	}
	return out
}

func binomial(n, k int) float64 {
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}

func randomNet(rng *rand.Rand, n int) []float32 {
	pts := make([]float32, n)
	for i := range pts {
		pts[i] = rng.Float32()*2 - 1
	}
	return pts
}

func TestBezierCurveMatchesBernstein(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, order := range []int{1, 2, 3, 4, 7, 16, MaxEvalOrder} {
		const dim = 3
		cp := randomNet(rng, order*dim)

		for _, tt := range []float32{0, 0.25, 0.5, 0.9, 1} {
			var got [4]float32
			bezierCurve(got[:], cp, dim, dim, order, tt)
			want := bernstein(cp, dim, dim, order, float64(tt))
			for k := 0; k < dim; k++ {
				assert.InDelta(t, want[k], got[k], 1e-4, "order %d t %v component %d", order, tt, k)
			}
		}
	}
}

func TestBezierCurveEndpoints(t *testing.T) {
	cp := []float32{1, 2, 5, 7, -3, 4, 9, 0}

	var out [2]float32
	bezierCurve(out[:], cp, 2, 2, 4, 0)
	assert.Equal(t, [2]float32{1, 2}, out)

	bezierCurve(out[:], cp, 2, 2, 4, 1)
	assert.InDelta(t, 9, out[0], 1e-6)
	assert.InDelta(t, 0, out[1], 1e-6)
}

func TestBezierSurfaceMatchesBernstein(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	cases := [][2]int{{1, 1}, {2, 3}, {3, 2}, {4, 4}, {5, 2}, {MaxEvalOrder, 3}, {2, MaxEvalOrder}}
	for _, c := range cases {
		uorder, vorder := c[0], c[1]
		const dim = 3
		pts := randomNet(rng, uorder*vorder*dim)

		for _, uv := range [][2]float32{{0, 0}, {0.3, 0.7}, {1, 0.5}, {0.5, 1}} {
			u, v := uv[0], uv[1]

			// collapse v per row with the reference, then u
			rows := make([]float32, uorder*dim)
			for i := 0; i < uorder; i++ {
				r := bernstein(pts[i*vorder*dim:], dim, dim, vorder, float64(v))
				for k := 0; k < dim; k++ {
					rows[i*dim+k] = float32(r[k])
				}
			}
			want := bernstein(rows, dim, dim, uorder, float64(u))

			var got [4]float32
			bezierSurface(got[:], pts, dim, uorder, vorder, u, v)
			for k := 0; k < dim; k++ {
				assert.InDelta(t, want[k], got[k], 1e-4, "%dx%d at %v component %d", uorder, vorder, uv, k)
			}
		}
	}
}

// bilinearPlane is a 2x2 patch spanning the unit square in z = 0, with u
// along x and v along y.
var bilinearPlane = []float32{
	0, 0, 0, 0, 1, 0,
	1, 0, 0, 1, 1, 0,
}

func TestBezierSurfaceCorners(t *testing.T) {
	var out [3]float32
	bezierSurface(out[:], bilinearPlane, 3, 2, 2, 1, 0)
	assert.Equal(t, [3]float32{1, 0, 0}, out)

	bezierSurface(out[:], bilinearPlane, 3, 2, 2, 0.5, 0.25)
	assert.InDelta(t, 0.5, out[0], 1e-6)
	assert.InDelta(t, 0.25, out[1], 1e-6)
}

func TestBezierNormal(t *testing.T) {
	n := bezierNormal(bilinearPlane, 3, 2, 2, 0.3, 0.6)
	assertVec3(t, math.Vec3{Z: 1}, n)

	// swapping the roles of u and v flips the normal
	swapped := []float32{
		0, 0, 0, 1, 0, 0,
		0, 1, 0, 1, 1, 0,
	}
	n = bezierNormal(swapped, 3, 2, 2, 0.3, 0.6)
	assertVec3(t, math.Vec3{Z: -1}, n)
}

func TestBezierNormalDegenerate(t *testing.T) {
	flat := make([]float32, 3*3*3)
	for i := 0; i < len(flat); i += 3 {
		flat[i], flat[i+1], flat[i+2] = 1, 2, 3
	}
	n := bezierNormal(flat, 3, 3, 3, 0.5, 0.5)
	assert.Equal(t, math.Vec3{}, n)

	// an order 1 axis has no derivative
	line := []float32{0, 0, 0, 1, 0, 0}
	n = bezierNormal(line, 3, 2, 1, 0.5, 0)
	assert.Equal(t, math.Vec3{}, n)
}

func TestBezierNormalHomogeneous(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const order = 4

	pos := make([]float32, order*order*3)
	for i := 0; i < order; i++ {
		for j := 0; j < order; j++ {
			p := pos[(i*order+j)*3:]
			p[0] = float32(i)
			p[1] = float32(j)
			p[2] = rng.Float32()
		}
	}

	for _, w := range []float32{1, 2.5} {
		hom := make([]float32, order*order*4)
		for k := 0; k < order*order; k++ {
			hom[k*4+0] = pos[k*3+0] * w
			hom[k*4+1] = pos[k*3+1] * w
			hom[k*4+2] = pos[k*3+2] * w
			hom[k*4+3] = w
		}

		for _, uv := range [][2]float32{{0.2, 0.2}, {0.5, 0.8}, {1, 0}} {
			want := bezierNormal(pos, 3, order, order, uv[0], uv[1])
			got := bezierNormal(hom, 4, order, order, uv[0], uv[1])
			require.InDelta(t, 1, want.Length(), 1e-4)
			assertVec3(t, want, got)
		}
	}
}

func TestSurfaceParameterRange(t *testing.T) {
	s := Surface{
		MajorOrder: 2, MinorOrder: 2,
		U1: 2, U2: 4,
		V1: -1, V2: 1,
		Dim:    3,
		Points: bilinearPlane,
	}

	var out [3]float32
	s.Evaluate(3, 0, out[:])
	assert.InDelta(t, 0.5, out[0], 1e-6)
	assert.InDelta(t, 0.5, out[1], 1e-6)

	// a reversed range walks the patch backwards
	s.U1, s.U2 = 4, 2
	s.Evaluate(4, 1, out[:])
	assert.InDelta(t, 0, out[0], 1e-6)
	assert.InDelta(t, 1, out[1], 1e-6)
}

func assertVec3(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-4, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-4, "z")
}
