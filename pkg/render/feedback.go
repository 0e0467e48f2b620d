package render

import (
	"fmt"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
)

// Feedback tokens, numerically identical to the GL enumerants.
const (
	TokenPassThrough float32 = 0x0700
	TokenPoint       float32 = 0x0701
	TokenLine        float32 = 0x0702
	TokenPolygon     float32 = 0x0703
	TokenBitmap      float32 = 0x0704
)

// FeedbackType selects which vertex attributes each feedback vertex carries.
type FeedbackType int

const (
	Feedback2D             FeedbackType = 0x0600
	Feedback3D             FeedbackType = 0x0601
	Feedback3DColor        FeedbackType = 0x0602
	Feedback3DColorTexture FeedbackType = 0x0603
	Feedback4DColorTexture FeedbackType = 0x0604
)

// ParseFeedbackType converts a config name into a FeedbackType.
func ParseFeedbackType(s string) (FeedbackType, error) {
	switch s {
	case "2d":
		return Feedback2D, nil
	case "3d":
		return Feedback3D, nil
	case "3d_color":
		return Feedback3DColor, nil
	case "3d_color_texture":
		return Feedback3DColorTexture, nil
	case "4d_color_texture":
		return Feedback4DColorTexture, nil
	}
	return 0, fmt.Errorf("feedback type %q: %w", s, glerr.ErrInvalidEnum)
}

// Size returns the number of values one feedback vertex occupies.
func (t FeedbackType) Size() int {
	switch t {
	case Feedback2D:
		return 2
	case Feedback3D:
		return 3
	case Feedback3DColor:
		return 3 + 4
	case Feedback3DColorTexture:
		return 3 + 4 + 4
	case Feedback4DColorTexture:
		return 4 + 4 + 4
	default:
		return 0
	}
}

func (t FeedbackType) valid() bool {
	return t.Size() != 0
}

// Feedback is the feedback backend. It writes a token stream describing
// each primitive in window coordinates instead of drawing it. Window y
// grows downward, as everywhere else in the pipeline. Texture values come
// from unit 0.
type Feedback struct {
	typ      FeedbackType
	buf      []float32
	cursor   int
	overflow bool
	active   bool
}

// NewFeedback creates an idle feedback backend.
func NewFeedback() *Feedback {
	return &Feedback{}
}

// Enter starts a feedback session writing into buf[:capacity].
func (f *Feedback) Enter(buf []float32, capacity int, typ FeedbackType) error {
	if !typ.valid() {
		return fmt.Errorf("feedback type %d: %w", int(typ), glerr.ErrInvalidEnum)
	}
	if capacity < 0 || capacity > len(buf) {
		return fmt.Errorf("feedback buffer capacity %d: %w", capacity, glerr.ErrInvalidValue)
	}
	if f.active {
		return fmt.Errorf("feedback buffer: %w", glerr.ErrInvalidOperation)
	}

	f.typ = typ
	f.buf = buf[:capacity]
	f.cursor = 0
	f.overflow = false
	f.active = true
	return nil
}

// Exit ends the session and returns the number of values written, negated
// when the buffer overflowed.
func (f *Feedback) Exit() int {
	n := f.cursor
	if f.overflow {
		n = -n
	}
	f.cursor = 0
	f.overflow = false
	f.active = false
	return n
}

// Active reports whether a session is in progress.
func (f *Feedback) Active() bool { return f.active }

// Overflowed reports whether a value did not fit.
func (f *Feedback) Overflowed() bool { return f.overflow }

// Written returns the filled part of the buffer.
func (f *Feedback) Written() []float32 { return f.buf[:f.cursor] }

// PassThrough writes a marker token followed by token.
func (f *Feedback) PassThrough(token float32) {
	f.put(TokenPassThrough)
	f.put(token)
}

// Point writes a point token and the vertex.
func (f *Feedback) Point(v *geom.Vertex) {
	f.put(TokenPoint)
	f.vertex(v)
}

// Line writes a line token and both endpoints.
func (f *Feedback) Line(v0, v1 *geom.Vertex) {
	f.put(TokenLine)
	f.vertex(v0)
	f.vertex(v1)
}

// Polygon writes a polygon token, the vertex count and every vertex.
func (f *Feedback) Polygon(p *geom.Polygon) {
	f.put(TokenPolygon)
	f.put(float32(p.Len()))
	for _, v := range p.Vertices {
		f.vertex(v)
	}
}

// Bitmap writes a bitmap token and the raster position, then advances it.
func (f *Feedback) Bitmap(b *geom.Bitmap, rp *geom.RasterPos) {
	if rp == nil || !rp.Valid {
		return
	}
	f.put(TokenBitmap)
	f.vertex(&geom.Vertex{Window: rp.Window, Color: rp.Color})
	advance(b, rp)
}

func (f *Feedback) vertex(v *geom.Vertex) {
	w := v.Window
	f.put(w[0])
	f.put(w[1])
	if f.typ == Feedback2D {
		return
	}
	f.put(w[2])
	if f.typ == Feedback4DColorTexture {
		f.put(w[3])
	}
	if f.typ == Feedback3D {
		return
	}

	c := v.Color
	f.put(c.R)
	f.put(c.G)
	f.put(c.B)
	f.put(c.A)
	if f.typ == Feedback3DColor {
		return
	}

	tc := v.TexCoords[0]
	for i := range tc {
		f.put(tc[i])
	}
}

// put writes one value; once the buffer is full every later value is
// dropped and the overflow flag set.
func (f *Feedback) put(x float32) {
	if f.cursor == len(f.buf) {
		f.overflow = true
		return
	}
	f.buf[f.cursor] = x
	f.cursor++
}
