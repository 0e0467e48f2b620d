package geom

import "github.com/Faultbox/softgl/pkg/math"

// RasterPos is the current raster position used to place bitmaps.
type RasterPos struct {
	Window math.Vec4
	Color  Color
	Valid  bool
}

// Bitmap is a 1-bit image drawn at the raster position.
// Rows are bottom to top, each row padded to a whole byte, MSB first.
type Bitmap struct {
	Width, Height int
	XOrig, YOrig  float32
	XMove, YMove  float32
	Bits          []byte
}

// Advance moves the raster position by the bitmap's move deltas. Window y
// grows downward, so a positive YMove moves up the screen.
func (b *Bitmap) Advance(rp *RasterPos) {
	if !rp.Valid {
		return
	}
	rp.Window[0] += b.XMove
	rp.Window[1] -= b.YMove
}

// Bit reports whether pixel (x, y) of the bitmap is set.
func (b *Bitmap) Bit(x, y int) bool {
	stride := (b.Width + 7) / 8
	i := y*stride + x/8
	if i >= len(b.Bits) {
		return false
	}
	return b.Bits[i]&(0x80>>uint(x%8)) != 0
}
