package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/Faultbox/softgl/pkg/geom"
)

// Raster is the rasterize backend. It fills window-space primitives into an
// RGBA image with a single color per primitive; window y grows downward like
// image rows. It keeps no depth buffer, so primitives land in submission
// order.
type Raster struct {
	dst *image.RGBA
	z   vector.Rasterizer

	// Flat colors polygons from the provoking vertex; otherwise the vertex
	// colors are averaged.
	Flat      bool
	PointSize float32
	LineWidth float32
}

// NewRaster creates a rasterizer drawing into dst.
func NewRaster(dst *image.RGBA) *Raster {
	r := &Raster{
		dst:       dst,
		PointSize: 1,
		LineWidth: 1,
	}
	b := dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	return r
}

// Image returns the target image.
func (r *Raster) Image() *image.RGBA {
	return r.dst
}

// Clear fills the target with c.
func (r *Raster) Clear(c geom.Color) {
	col := toRGBA(c)
	b := r.dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.dst.SetRGBA(x, y, col)
		}
	}
}

// maxCoord bounds window coordinates to what the rasterizer's 22.9 fixed
// point math represents.
const maxCoord = 1 << 21

// drawable reports whether every vertex has finite window x and y within
// maxCoord. A vertex with clip w of 0 passes the frustum test and divides
// to NaN; such primitives are dropped.
func drawable(vs ...*geom.Vertex) bool {
	for _, v := range vs {
		for _, c := range v.Window[:2] {
			if math32.IsNaN(c) || math32.IsInf(c, 0) || math32.Abs(c) > maxCoord {
				return false
			}
		}
	}
	return true
}

// Point fills a square of PointSize pixels centered on v.
func (r *Raster) Point(v *geom.Vertex) {
	if !drawable(v) {
		return
	}
	h := r.PointSize / 2
	x, y := v.Window[0], v.Window[1]

	r.begin()
	r.z.MoveTo(x-h, y-h)
	r.z.LineTo(x+h, y-h)
	r.z.LineTo(x+h, y+h)
	r.z.LineTo(x-h, y+h)
	r.z.ClosePath()
	r.fill(v.Color)
}

// Line fills a LineWidth wide quad along the segment in the color of v1.
func (r *Raster) Line(v0, v1 *geom.Vertex) {
	if !drawable(v0, v1) {
		return
	}
	dx := v1.Window[0] - v0.Window[0]
	dy := v1.Window[1] - v0.Window[1]
	l := math32.Sqrt(dx*dx + dy*dy)
	if l == 0 {
		r.Point(v1)
		return
	}
	nx := -dy / l * r.LineWidth / 2
	ny := dx / l * r.LineWidth / 2

	r.begin()
	r.z.MoveTo(v0.Window[0]+nx, v0.Window[1]+ny)
	r.z.LineTo(v1.Window[0]+nx, v1.Window[1]+ny)
	r.z.LineTo(v1.Window[0]-nx, v1.Window[1]-ny)
	r.z.LineTo(v0.Window[0]-nx, v0.Window[1]-ny)
	r.z.ClosePath()
	r.fill(v1.Color)
}

// Polygon fills the polygon outline.
func (r *Raster) Polygon(p *geom.Polygon) {
	if p.Len() < 3 || !drawable(p.Vertices...) {
		return
	}

	r.begin()
	for i, v := range p.Vertices {
		if i == 0 {
			r.z.MoveTo(v.Window[0], v.Window[1])
			continue
		}
		r.z.LineTo(v.Window[0], v.Window[1])
	}
	r.z.ClosePath()
	r.fill(r.polygonColor(p))
}

func (r *Raster) polygonColor(p *geom.Polygon) geom.Color {
	if r.Flat && p.Provoking != nil {
		return p.Provoking.Color
	}
	var c geom.Color
	for _, v := range p.Vertices {
		c.R += v.Color.R
		c.G += v.Color.G
		c.B += v.Color.B
		c.A += v.Color.A
	}
	n := float32(p.Len())
	return geom.Color{R: c.R / n, G: c.G / n, B: c.B / n, A: c.A / n}
}

// Bitmap sets every marked pixel of b, anchored at the raster position
// offset by the bitmap origin, then advances the raster position.
func (r *Raster) Bitmap(b *geom.Bitmap, rp *geom.RasterPos) {
	if rp == nil || !rp.Valid {
		return
	}
	if math32.IsNaN(rp.Window[0]) || math32.IsNaN(rp.Window[1]) {
		advance(b, rp)
		return
	}

	col := toRGBA(rp.Color)
	x0 := int(math32.Floor(rp.Window[0] - b.XOrig))
	y0 := int(math32.Floor(rp.Window[1] + b.YOrig))
	bounds := r.dst.Bounds()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if !b.Bit(x, y) {
				continue
			}
			// bitmap rows run bottom to top
			pt := image.Pt(x0+x, y0-y)
			if pt.In(bounds) {
				r.dst.SetRGBA(pt.X, pt.Y, col)
			}
		}
	}
	advance(b, rp)
}

func (r *Raster) begin() {
	b := r.dst.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
}

func (r *Raster) fill(c geom.Color) {
	r.z.Draw(r.dst, r.dst.Bounds(), image.NewUniform(toNRGBA(c)), image.Point{})
}

func toNRGBA(c geom.Color) color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func toRGBA(c geom.Color) color.RGBA {
	return color.RGBAModel.Convert(toNRGBA(c)).(color.RGBA)
}

func unit8(f float32) uint8 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
