// Package clip clips lines and polygons against the view frustum in clip
// space and against user planes in eye space.
package clip

import (
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/math"
)

// Clipper clips against the six frustum planes and the user planes whose
// bits are requested. User plane equations are read through Planes, so the
// owner can update them without telling the clipper.
type Clipper struct {
	Planes *[geom.MaxUserClipPlanes]math.Vec4
}

// New creates a clipper reading user plane equations from planes.
func New(planes *[geom.MaxUserClipPlanes]math.Vec4) *Clipper {
	return &Clipper{Planes: planes}
}

// distance returns the signed distance of v from the plane selected by bit;
// negative means outside.
func (c *Clipper) distance(v *geom.Vertex, bit geom.ClipCode) float32 {
	p := v.Clip
	switch bit {
	case geom.ClipLeft:
		return p[3] + p[0]
	case geom.ClipRight:
		return p[3] - p[0]
	case geom.ClipBottom:
		return p[3] + p[1]
	case geom.ClipTop:
		return p[3] - p[1]
	case geom.ClipNear:
		return p[3] + p[2]
	case geom.ClipFar:
		return p[3] - p[2]
	}
	for i := 0; i < geom.MaxUserClipPlanes; i++ {
		if bit == geom.UserPlane(i) {
			if c.Planes == nil {
				return 0
			}
			return v.Eye.Dot(c.Planes[i])
		}
	}
	return 0
}

// ClipLine clips the segment v0-v1 in place against every plane in codes.
// It reports true when the segment lies entirely outside.
func (c *Clipper) ClipLine(v0, v1 *geom.Vertex, codes geom.ClipCode) bool {
	var a, b geom.Vertex
	for bit := geom.ClipCode(1); bit&geom.ClipMask != 0; bit <<= 1 {
		if codes&bit == 0 {
			continue
		}
		d0 := c.distance(v0, bit)
		d1 := c.distance(v1, bit)
		switch {
		case d0 < 0 && d1 < 0:
			return true
		case d0 < 0:
			a, b = *v0, *v1
			lerp(v0, &a, &b, d0/(d0-d1))
		case d1 < 0:
			a, b = *v0, *v1
			lerp(v1, &a, &b, d0/(d0-d1))
		}
	}
	return false
}

// ClipPolygon clips p against every plane in codes with Sutherland-Hodgman,
// drawing new vertices from the polygon's scratch pool. It reports true when
// fewer than three vertices remain.
func (c *Clipper) ClipPolygon(p *geom.Polygon, codes geom.ClipCode) bool {
	for bit := geom.ClipCode(1); bit&geom.ClipMask != 0; bit <<= 1 {
		if codes&bit == 0 {
			continue
		}

		in := p.Vertices
		out := p.Spare()
		n := len(in)
		for i := 0; i < n; i++ {
			cur, next := in[i], in[(i+1)%n]
			dc := c.distance(cur, bit)
			dn := c.distance(next, bit)

			if dc >= 0 {
				if len(out) == cap(out) {
					return true
				}
				out = append(out, cur)
			}
			if (dc >= 0) != (dn >= 0) {
				nv := p.NewVertex()
				if nv == nil || len(out) == cap(out) {
					return true
				}
				// interpolate from the inside vertex for a stable result
				if dc >= 0 {
					lerp(nv, cur, next, dc/(dc-dn))
				} else {
					lerp(nv, next, cur, dn/(dn-dc))
				}
				out = append(out, nv)
			}
		}

		p.SetVertices(out)
		if len(out) < 3 {
			return true
		}
	}
	return false
}

// lerp writes a + t*(b-a) into dst for every interpolated attribute.
// dst may alias neither a nor b.
func lerp(dst, a, b *geom.Vertex, t float32) {
	dst.Object = a.Object.Lerp(b.Object, t)
	dst.Eye = a.Eye.Lerp(b.Eye, t)
	dst.Clip = a.Clip.Lerp(b.Clip, t)
	dst.Normal = lerp3(a.Normal, b.Normal, t)
	dst.EyeNormal = lerp3(a.EyeNormal, b.EyeNormal, t)
	dst.Color = geom.Color{
		R: a.Color.R + (b.Color.R-a.Color.R)*t,
		G: a.Color.G + (b.Color.G-a.Color.G)*t,
		B: a.Color.B + (b.Color.B-a.Color.B)*t,
		A: a.Color.A + (b.Color.A-a.Color.A)*t,
	}
	for i := range dst.TexCoords {
		dst.TexCoords[i] = a.TexCoords[i].Lerp(b.TexCoords[i], t)
	}
	dst.Fog = a.Fog + (b.Fog-a.Fog)*t
	dst.ClipCodes = 0
}

func lerp3(a, b math.Vec3, t float32) math.Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}
