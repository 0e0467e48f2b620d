package pipeline

import (
	"github.com/Faultbox/softgl/pkg/geom"
)

// Clipper clips primitives that straddle clip planes. Both methods report
// true when the primitive is entirely outside.
type Clipper interface {
	// ClipLine moves the endpoints in place.
	ClipLine(v0, v1 *geom.Vertex, codes geom.ClipCode) bool
	// ClipPolygon may replace the polygon's vertex list with a longer one.
	ClipPolygon(p *geom.Polygon, codes geom.ClipCode) bool
}

// Lighter replaces a vertex color with its lit color.
type Lighter interface {
	Apply(v *geom.Vertex, face geom.Face)
}

// TexCoordProcessor rewrites the texture coordinates of assembled vertices.
type TexCoordProcessor interface {
	ProcessCoordinates(vs []*geom.Vertex)
}

// TextureMatrices is the default TexCoordProcessor: it multiplies each
// enabled unit's coordinates by that unit's texture matrix.
type TextureMatrices struct {
	st *State
}

// NewTextureMatrices creates the processor for st.
func NewTextureMatrices(st *State) *TextureMatrices {
	return &TextureMatrices{st: st}
}

// ProcessCoordinates implements TexCoordProcessor.
func (t *TextureMatrices) ProcessCoordinates(vs []*geom.Vertex) {
	for unit := 0; unit < geom.MaxTextureUnits; unit++ {
		if t.st.TextureUnits&(1<<uint(unit)) == 0 {
			continue
		}
		m := t.st.Texture[unit].Top()
		for _, v := range vs {
			v.TexCoords[unit] = m.MulVec4(v.TexCoords[unit])
		}
	}
}
