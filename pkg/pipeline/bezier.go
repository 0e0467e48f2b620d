package pipeline

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/softgl/pkg/math"
)

// bezierCurve evaluates a Bezier curve of the given order at t into
// out[:dim]. Control point i starts at cp[i*stride].
//
// The Bernstein sum is folded Horner style in (1-t): each step scales the
// partial sum by (1-t) and adds the next control point weighted by
// C(n,i)*t^i, with the binomial coefficient updated incrementally.
func bezierCurve(out, cp []float32, stride, dim, order int, t float32) {
	if order < 2 {
		copy(out[:dim], cp[:dim])
		return
	}

	s := 1 - t
	bin := order - 1
	for k := 0; k < dim; k++ {
		out[k] = s*cp[k] + float32(bin)*t*cp[stride+k]
	}

	pt := t * t
	for i := 2; i < order; i++ {
		bin = bin * (order - i) / i
		row := cp[i*stride:]
		w := float32(bin) * pt
		for k := 0; k < dim; k++ {
			out[k] = s*out[k] + w*row[k]
		}
		pt *= t
	}
}

// bezierSurface evaluates a patch at (u, v) in [0,1]^2 into out[:dim].
// Control point (i, j) with i along u starts at pts[(i*vorder+j)*dim].
// The axis with the larger order is collapsed first.
func bezierSurface(out, pts []float32, dim, uorder, vorder int, u, v float32) {
	var tmp [MaxEvalOrder * 4]float32

	if uorder >= vorder {
		for j := 0; j < vorder; j++ {
			bezierCurve(tmp[j*dim:], pts[j*dim:], vorder*dim, dim, uorder, u)
		}
		bezierCurve(out, tmp[:], dim, dim, vorder, v)
		return
	}

	for i := 0; i < uorder; i++ {
		bezierCurve(tmp[i*dim:], pts[i*vorder*dim:], dim, dim, vorder, v)
	}
	bezierCurve(out, tmp[:], dim, dim, uorder, u)
}

// bezierPartials returns the partial derivatives of a patch at (u, v),
// up to a positive factor per axis. Each is the forward-difference control
// net along that axis evaluated one order lower; an axis of order 1 has a
// zero derivative.
func bezierPartials(pts []float32, dim, uorder, vorder int, u, v float32) (du, dv [4]float32) {
	var curve [MaxEvalOrder * 4]float32

	// collapse v for each row i, then difference along u
	if uorder > 1 {
		for i := 0; i < uorder; i++ {
			bezierCurve(curve[i*dim:], pts[i*vorder*dim:], dim, dim, vorder, v)
		}
		diff(curve[:], dim, uorder)
		bezierCurve(du[:], curve[:], dim, dim, uorder-1, u)
	}

	// collapse u for each column j, then difference along v
	if vorder > 1 {
		for j := 0; j < vorder; j++ {
			bezierCurve(curve[j*dim:], pts[j*dim:], vorder*dim, dim, uorder, u)
		}
		diff(curve[:], dim, vorder)
		bezierCurve(dv[:], curve[:], dim, dim, vorder-1, v)
	}
	return du, dv
}

// diff replaces the first n-1 points of a packed curve by forward differences.
func diff(c []float32, dim, n int) {
	for i := 0; i < n-1; i++ {
		for k := 0; k < dim; k++ {
			c[i*dim+k] = c[(i+1)*dim+k] - c[i*dim+k]
		}
	}
}

// bezierNormal returns normalize(dS/du x dS/dv) for a position patch of
// dimension 3 or 4. Homogeneous patches are differentiated after projection
// by the quotient rule. A zero cross product is returned as is.
func bezierNormal(pts []float32, dim, uorder, vorder int, u, v float32) math.Vec3 {
	du, dv := bezierPartials(pts, dim, uorder, vorder, u, v)

	if dim == 4 {
		var p [4]float32
		bezierSurface(p[:], pts, dim, uorder, vorder, u, v)
		// d(x/w) = (x'w - xw') / w^2; the 1/w^2 factor is common to
		// both partials and does not change the direction
		for k := 0; k < 3; k++ {
			du[k] = du[k]*p[3] - p[k]*du[3]
			dv[k] = dv[k]*p[3] - p[k]*dv[3]
		}
	}

	a := math.Vec3{X: du[0], Y: du[1], Z: du[2]}
	b := math.Vec3{X: dv[0], Y: dv[1], Z: dv[2]}
	n := a.Cross(b)
	if l := math32.Sqrt(n.Dot(n)); l != 0 {
		n = n.Scale(1 / l)
	}
	return n
}
