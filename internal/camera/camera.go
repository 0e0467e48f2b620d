// Package camera provides the orbit camera used to view demo scenes.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/softgl/internal/config"
	"github.com/Faultbox/softgl/pkg/math"
	"github.com/Faultbox/softgl/pkg/pipeline"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Projection
	FOV       float32 // Vertical field of view, radians
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:    6,
		Pitch:       0.5,
		FOV:         math32.Pi / 4,
		Near:        0.1,
		Far:         100,
		MinDistance: 0.5,
		MaxDistance: 50,
		MinPitch:    -1.5,
		MaxPitch:    1.5,
	}
}

// FromConfig creates a camera from degrees-based settings.
func FromConfig(c config.CameraConfig) *OrbitCamera {
	cam := NewOrbitCamera()
	cam.Distance = c.Distance
	cam.Pitch = radians(c.Pitch)
	cam.Yaw = radians(c.Yaw)
	cam.FOV = radians(c.FOV)
	cam.clamp()
	return cam
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	offset := math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for an aspect ratio
// of width/height.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Orbit rotates the camera around its center by yaw and pitch deltas in
// radians.
func (c *OrbitCamera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	c.clamp()
}

// Zoom scales the distance by factor.
func (c *OrbitCamera) Zoom(factor float32) {
	c.Distance *= factor
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToRadius centers the camera on a bounding sphere and backs off until
// it fits the field of view.
func (c *OrbitCamera) FitToRadius(center math.Vec3, radius float32) {
	c.Center = center
	c.Distance = radius / math32.Sin(c.FOV/2)
	if c.Far < c.Distance+radius {
		c.Far = 2 * (c.Distance + radius)
	}
	c.clamp()
}

// Aspect returns the width/height ratio of vp, or 1 for an empty viewport.
func Aspect(vp pipeline.Viewport) float32 {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 1
	}
	return float32(vp.Width) / float32(vp.Height)
}

// ViewProjection returns the combined projection and view for vp.
func (c *OrbitCamera) ViewProjection(vp pipeline.Viewport) math.Mat4 {
	return c.ProjectionMatrix(Aspect(vp)).Mul(c.ViewMatrix())
}

// Apply loads the camera's projection and view into p. The projection is
// sized for p's viewport and the pipeline is left in model-view mode.
func (c *OrbitCamera) Apply(p *pipeline.Pipeline) error {
	return c.ApplyRegion(p, math.Identity())
}

// ApplyRegion is Apply with region multiplied in front of the projection,
// as a pick matrix is.
func (c *OrbitCamera) ApplyRegion(p *pipeline.Pipeline, region math.Mat4) error {
	aspect := Aspect(p.State().Viewport)

	if err := p.MatrixMode(pipeline.Projection); err != nil {
		return err
	}
	if err := p.LoadMatrix(region); err != nil {
		return err
	}
	if err := p.MultMatrix(c.ProjectionMatrix(aspect)); err != nil {
		return err
	}
	if err := p.MatrixMode(pipeline.ModelView); err != nil {
		return err
	}
	return p.LoadMatrix(c.ViewMatrix())
}
