package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/softgl/pkg/geom"
)

func TestRasterPolygonFill(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	r := NewRaster(img)
	r.Clear(geom.Color{A: 1})

	white := geom.Color{R: 1, G: 1, B: 1, A: 1}
	p := &geom.Polygon{}
	p.Reset()
	p.AddCopy(windowVertex(2, 2, 0, white))
	p.AddCopy(windowVertex(14, 2, 0, white))
	p.AddCopy(windowVertex(14, 14, 0, white))
	p.AddCopy(windowVertex(2, 14, 0, white))
	r.Polygon(p)

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(8, 8))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(15, 15))
}

func TestRasterFlatUsesProvoking(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	r := NewRaster(img)
	r.Flat = true

	p := &geom.Polygon{}
	p.Reset()
	p.AddCopy(windowVertex(0, 0, 0, geom.Color{R: 1, A: 1}))
	p.AddCopy(windowVertex(8, 0, 0, geom.Color{R: 1, A: 1}))
	p.Provoking = p.AddCopy(windowVertex(8, 8, 0, geom.Color{B: 1, A: 1}))
	p.AddCopy(windowVertex(0, 8, 0, geom.Color{R: 1, A: 1}))
	r.Polygon(p)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(4, 4))
}

func TestRasterLineAndPoint(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	r := NewRaster(img)
	green := geom.Color{G: 1, A: 1}

	// a one pixel wide line centered on a row covers exactly that row
	r.Line(windowVertex(0, 4.5, 0, green), windowVertex(8, 4.5, 0, green))
	assert.Equal(t, uint8(255), img.RGBAAt(3, 4).G)
	assert.Equal(t, uint8(0), img.RGBAAt(3, 2).G)
	assert.Equal(t, uint8(0), img.RGBAAt(3, 6).G)

	r.PointSize = 2
	r.Point(windowVertex(1, 1, 0, geom.Color{R: 1, A: 1}))
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(255), img.RGBAAt(1, 1).R)
	assert.Equal(t, uint8(0), img.RGBAAt(3, 3).R)
}

func TestRasterBitmap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	r := NewRaster(img)

	rp := &geom.RasterPos{Valid: true, Color: geom.Color{R: 1, A: 1}}
	rp.Window[0], rp.Window[1] = 2, 5
	b := &geom.Bitmap{Width: 2, Height: 2, XMove: 3, Bits: []byte{0x80, 0x40}}
	r.Bitmap(b, rp)

	assert.Equal(t, uint8(255), img.RGBAAt(2, 5).R)
	assert.Equal(t, uint8(255), img.RGBAAt(3, 4).R)
	assert.Equal(t, uint8(0), img.RGBAAt(3, 5).R)
	assert.Equal(t, float32(5), rp.Window[0])

	rp.Valid = false
	r.Bitmap(b, rp)
	assert.Equal(t, float32(5), rp.Window[0])
}

func TestRasterSkipsUnrepresentableCoordinates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	r := NewRaster(img)
	r.Clear(geom.Color{A: 1})
	red := geom.Color{R: 1, A: 1}

	for _, bad := range []float32{math32.NaN(), math32.Inf(1), math32.Inf(-1), 1e30} {
		assert.NotPanics(t, func() {
			r.Point(windowVertex(bad, 2, 0, red))
			r.Line(windowVertex(1, 1, 0, red), windowVertex(6, bad, 0, red))

			p := &geom.Polygon{}
			p.Reset()
			p.AddCopy(windowVertex(bad, bad, 0, red))
			p.AddCopy(windowVertex(7, 1, 0, red))
			p.AddCopy(windowVertex(1, 7, 0, red))
			r.Polygon(p)
		}, "coordinate %v", bad)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}
