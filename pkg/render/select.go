package render

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
)

// MaxNameStackDepth is the capacity of the selection name stack.
const MaxNameStackDepth = 128

// Selector is the selection backend. Instead of drawing, every vertex of
// every primitive that survives clipping and culling records a hit against
// the current name stack.
//
// A hit record in the result buffer is laid out as
//
//	[depth, minZ, maxZ, name0, name1, ..., name(depth-1)]
//
// with names bottom first and depths scaled so that window z 1.0 maps to
// math.MaxInt32.
type Selector struct {
	names [MaxNameStackDepth]uint32
	depth int

	// midHit is set while the current record is open. Any name stack
	// change clears it so the next hit opens a new record.
	midHit   bool
	hits     int
	overflow bool
	active   bool

	buf    []uint32
	cursor int
	minAt  int
	maxAt  int
}

// NewSelector creates an idle selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Enter starts a selection session writing into buf[:capacity].
func (s *Selector) Enter(buf []uint32, capacity int) error {
	if capacity < 0 || capacity > len(buf) {
		return fmt.Errorf("select buffer capacity %d: %w", capacity, glerr.ErrInvalidValue)
	}
	if s.active {
		return fmt.Errorf("select buffer: %w", glerr.ErrInvalidOperation)
	}

	s.reset()
	s.buf = buf[:capacity]
	s.active = true
	return nil
}

// Exit ends the session and returns the number of hit records, negated when
// the buffer overflowed. The name stack is emptied.
func (s *Selector) Exit() int {
	n := s.hits
	if s.overflow {
		n = -n
	}
	s.reset()
	s.active = false
	return n
}

func (s *Selector) reset() {
	s.depth = 0
	s.midHit = false
	s.hits = 0
	s.overflow = false
	s.cursor = 0
	s.minAt = 0
	s.maxAt = 0
}

// Active reports whether a session is in progress.
func (s *Selector) Active() bool { return s.active }

// Hits returns the number of records opened so far.
func (s *Selector) Hits() int { return s.hits }

// Overflowed reports whether a record did not fit.
func (s *Selector) Overflowed() bool { return s.overflow }

// Depth returns the name stack depth.
func (s *Selector) Depth() int { return s.depth }

// Names returns the name stack, bottom first. The slice aliases internal
// storage.
func (s *Selector) Names() []uint32 { return s.names[:s.depth] }

// Written returns the filled part of the result buffer.
func (s *Selector) Written() []uint32 { return s.buf[:s.cursor] }

// InitNames empties the name stack.
func (s *Selector) InitNames() {
	s.depth = 0
	s.midHit = false
}

// LoadName replaces the top of the name stack.
func (s *Selector) LoadName(name uint32) error {
	if s.depth == 0 {
		return fmt.Errorf("load name: empty name stack: %w", glerr.ErrInvalidOperation)
	}
	s.names[s.depth-1] = name
	s.midHit = false
	return nil
}

// PushName pushes name onto the name stack.
func (s *Selector) PushName(name uint32) error {
	if s.depth == MaxNameStackDepth {
		return fmt.Errorf("push name: %w", glerr.ErrStackOverflow)
	}
	s.names[s.depth] = name
	s.depth++
	s.midHit = false
	return nil
}

// PopName pops the top of the name stack.
func (s *Selector) PopName() error {
	if s.depth == 0 {
		return fmt.Errorf("pop name: %w: %w", glerr.ErrStackUnderflow, glerr.ErrInvalidOperation)
	}
	s.depth--
	s.midHit = false
	return nil
}

// RecordHit folds one depth sample into the open record, opening a new
// record first when none is open. Once the buffer has overflowed nothing
// changes until the session ends.
func (s *Selector) RecordHit(iz uint32) {
	if s.overflow {
		return
	}

	if s.midHit {
		if iz < s.buf[s.minAt] {
			s.buf[s.minAt] = iz
		}
		if iz > s.buf[s.maxAt] {
			s.buf[s.maxAt] = iz
		}
		return
	}

	s.midHit = true
	if len(s.buf)-s.cursor < 3+s.depth {
		s.overflow = true
		return
	}
	s.hits++

	s.buf[s.cursor] = uint32(s.depth)
	s.minAt = s.cursor + 1
	s.maxAt = s.cursor + 2
	s.buf[s.minAt] = iz
	s.buf[s.maxAt] = iz
	s.cursor += 3
	s.cursor += copy(s.buf[s.cursor:], s.names[:s.depth])
}

// Point records a hit for v.
func (s *Selector) Point(v *geom.Vertex) {
	s.RecordHit(DepthToUint(v.Window[2]))
}

// Line records a hit for both endpoints.
func (s *Selector) Line(v0, v1 *geom.Vertex) {
	s.RecordHit(DepthToUint(v0.Window[2]))
	s.RecordHit(DepthToUint(v1.Window[2]))
}

// Polygon records a hit for every vertex.
func (s *Selector) Polygon(p *geom.Polygon) {
	for _, v := range p.Vertices {
		s.RecordHit(DepthToUint(v.Window[2]))
	}
}

// Bitmap never hits; it only advances the raster position.
func (s *Selector) Bitmap(b *geom.Bitmap, rp *geom.RasterPos) {
	advance(b, rp)
}

// DepthToUint scales a window depth in [0, 1] to [0, math.MaxInt32],
// rounding to nearest. Out of range depths are clamped and NaN maps to 0.
func DepthToUint(z float32) uint32 {
	if !(z > 0) {
		return 0
	}
	if z >= 1 {
		return gomath.MaxInt32
	}
	return uint32(gomath.Round(float64(z) * gomath.MaxInt32))
}
