package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/softgl/pkg/math"
	"github.com/Faultbox/softgl/pkg/pipeline"
)

// LightView looks at a bounding sphere from a directional light with an
// orthographic projection.
type LightView struct {
	Direction math.Vec3 // normalized direction towards the light
	Center    math.Vec3
	Radius    float32
}

// Matrices returns the projection and view for the light.
func (l LightView) Matrices() (proj, view math.Mat4) {
	// Position light far enough to encompass entire scene
	distance := l.Radius * 2
	pos := l.Center.Add(l.Direction.Scale(distance))

	// Avoid an up vector parallel to the light
	up := math.Vec3{Y: 1}
	if math32.Abs(l.Direction.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view = math.LookAt(pos, l.Center, up)

	padding := l.Radius * 0.1
	half := l.Radius + padding
	far := distance + l.Radius + padding
	proj = math.Ortho(-half, half, -half, half, 0.1, far)
	return proj, view
}

// Apply loads the light's projection and view into p and leaves the
// pipeline in model-view mode.
func (l LightView) Apply(p *pipeline.Pipeline) error {
	proj, view := l.Matrices()
	if err := p.MatrixMode(pipeline.Projection); err != nil {
		return err
	}
	if err := p.LoadMatrix(proj); err != nil {
		return err
	}
	if err := p.MatrixMode(pipeline.ModelView); err != nil {
		return err
	}
	return p.LoadMatrix(view)
}
