package debug

import "github.com/Faultbox/softgl/pkg/math"

// BoxEdges returns the 12 edges of an axis-aligned box as 24 endpoints,
// ready to submit as a Lines primitive.
func BoxEdges(lo, hi math.Vec3) []math.Vec3 {
	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	return []math.Vec3{
		// Bottom face (4 edges)
		corner(false, false, false), corner(true, false, false),
		corner(true, false, false), corner(true, false, true),
		corner(true, false, true), corner(false, false, true),
		corner(false, false, true), corner(false, false, false),
		// Top face (4 edges)
		corner(false, true, false), corner(true, true, false),
		corner(true, true, false), corner(true, true, true),
		corner(true, true, true), corner(false, true, true),
		corner(false, true, true), corner(false, true, false),
		// Vertical edges (4 edges)
		corner(false, false, false), corner(false, true, false),
		corner(true, false, false), corner(true, true, false),
		corner(true, false, true), corner(true, true, true),
		corner(false, false, true), corner(false, true, true),
	}
}

// Expand grows a box by padding on every side.
func Expand(lo, hi math.Vec3, padding float32) (math.Vec3, math.Vec3) {
	p := math.Vec3{X: padding, Y: padding, Z: padding}
	return lo.Sub(p), hi.Add(p)
}
