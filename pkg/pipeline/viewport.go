package pipeline

import "github.com/Faultbox/softgl/pkg/math"

// Viewport maps normalized device coordinates to window coordinates.
// Window x grows right and y grows down from (X, Y); depth is mapped into
// [Near, Far].
type Viewport struct {
	X, Y          int
	Width, Height int
	Near, Far     float32
}

// NewViewport returns a viewport with the default depth range [0, 1].
func NewViewport(x, y, width, height int) Viewport {
	return Viewport{X: x, Y: y, Width: width, Height: height, Near: 0, Far: 1}
}

// PerspectiveDivide divides a clip-space position by w. The result carries
// 1/w in its w component. A zero w yields non-finite values.
func PerspectiveDivide(clip math.Vec4) math.Vec4 {
	inv := 1 / clip[3]
	return math.Vec4{clip[0] * inv, clip[1] * inv, clip[2] * inv, inv}
}

// NDCToWindow maps a divided position into window space, passing w through.
func (vp Viewport) NDCToWindow(ndc math.Vec4) math.Vec4 {
	w := float32(vp.Width)
	h := float32(vp.Height)
	return math.Vec4{
		float32(vp.X) + (ndc[0]+1)*w/2,
		float32(vp.Y) + (1-ndc[1])*h/2,
		vp.Near + (ndc[2]+1)*(vp.Far-vp.Near)/2,
		ndc[3],
	}
}

// WindowToNDC inverts NDCToWindow for x, y and z.
func (vp Viewport) WindowToNDC(x, y, z float32) math.Vec3 {
	return math.Vec3{
		X: (x-float32(vp.X))*2/float32(vp.Width) - 1,
		Y: 1 - (y-float32(vp.Y))*2/float32(vp.Height),
		Z: (z-vp.Near)*2/(vp.Far-vp.Near) - 1,
	}
}
