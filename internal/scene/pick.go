package scene

import (
	"fmt"

	"github.com/Faultbox/softgl/internal/camera"
	"github.com/Faultbox/softgl/internal/picking"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/pipeline"
	"github.com/Faultbox/softgl/pkg/render"
)

// Select draws s in select mode through a w x h pick region centered on
// window point (x, y) and returns the hits, nearest first.
func Select(p *pipeline.Pipeline, s *Scene, cam *camera.OrbitCamera, x, y, w, h float32, bufSize int) ([]picking.Hit, error) {
	if bufSize < 0 {
		return nil, fmt.Errorf("select buffer size %d: %w", bufSize, glerr.ErrInvalidValue)
	}
	buf := make([]uint32, bufSize)
	if err := p.SelectBuffer(bufSize, buf); err != nil {
		return nil, err
	}

	region, err := picking.PickMatrix(x, y, w, h, p.State().Viewport)
	if err != nil {
		return nil, err
	}
	if err := cam.ApplyRegion(p, region); err != nil {
		return nil, err
	}

	if _, err := p.RenderMode(render.ModeSelect); err != nil {
		return nil, err
	}
	drawErr := s.Draw(p)
	n, err := p.RenderMode(render.ModeRender)
	if drawErr != nil {
		return nil, drawErr
	}
	if err != nil {
		return nil, err
	}
	return picking.ParseHits(buf, n)
}

// RayHit is an object struck by a pick ray.
type RayHit struct {
	Object   Object
	Distance float32
}

// CastRay intersects the ray through window point (x, y) with the object
// boxes and returns the nearest one. The patch is not tested.
func CastRay(s *Scene, cam *camera.OrbitCamera, vp pipeline.Viewport, x, y float32) (RayHit, bool) {
	ray := picking.ScreenToRay(x, y, vp, cam.ViewProjection(vp).Inverse())

	var best RayHit
	found := false
	for _, o := range s.Objects {
		d, ok := ray.IntersectAABB(o.Bounds())
		if !ok || (found && d >= best.Distance) {
			continue
		}
		best = RayHit{Object: o, Distance: d}
		found = true
	}
	return best, found
}
