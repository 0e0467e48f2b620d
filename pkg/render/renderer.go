// Package render defines the primitive sink at the end of the geometry
// pipeline and its three backends: rasterize, feedback and select.
package render

import (
	"fmt"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
)

// Renderer consumes primitives that are already clipped, perspective
// divided and viewport mapped. The pipeline binds one Renderer per render
// mode change and calls it for every surviving primitive.
type Renderer interface {
	// Point renders a single vertex.
	Point(v *geom.Vertex)
	// Line renders a segment; v1 is the provoking vertex.
	Line(v0, v1 *geom.Vertex)
	// Polygon renders a polygon of at least three vertices.
	Polygon(p *geom.Polygon)
	// Bitmap draws b at the raster position and advances it.
	Bitmap(b *geom.Bitmap, rp *geom.RasterPos)
}

// Mode selects the active backend.
type Mode int

const (
	ModeRender Mode = iota
	ModeFeedback
	ModeSelect
)

func (m Mode) String() string {
	switch m {
	case ModeRender:
		return "render"
	case ModeFeedback:
		return "feedback"
	case ModeSelect:
		return "select"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "render":
		return ModeRender, nil
	case "feedback":
		return ModeFeedback, nil
	case "select":
		return ModeSelect, nil
	}
	return 0, fmt.Errorf("render mode %q: %w", s, glerr.ErrInvalidEnum)
}

// advance moves the raster position the way every backend does after a
// bitmap, drawn or not.
func advance(b *geom.Bitmap, rp *geom.RasterPos) {
	if b != nil && rp != nil {
		b.Advance(rp)
	}
}
