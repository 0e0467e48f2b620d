package pipeline

import (
	"github.com/Faultbox/softgl/pkg/geom"
)

// Processor is the per-vertex transform stage.
type Processor struct {
	st *State
}

// NewProcessor creates a processor reading transforms and enables from st.
func NewProcessor(st *State) *Processor {
	return &Processor{st: st}
}

// Process transforms v, whose Object position is already set, into eye and
// clip space and computes its clip codes. The current normal, color and
// texture coordinates are latched into v first. Process never fails;
// degenerate matrices propagate as NaN or Inf.
func (p *Processor) Process(v *geom.Vertex) {
	st := p.st

	needNormal := st.Lighting
	v.Normal = st.Current.Normal
	v.Color = st.Current.Color
	v.TexCoords = st.Current.TexCoords
	v.Fog = 0

	v.Eye = st.ModelView.Top().MulVec4(v.Object)

	if needNormal {
		n := st.ModelView.InverseTranspose().TransformDirection(v.Normal)
		if st.Normalize {
			n = n.Normalize()
		}
		v.EyeNormal = n
	}

	var codes geom.ClipCode
	if st.ClipEnabled != 0 {
		for i := 0; i < geom.MaxUserClipPlanes; i++ {
			bit := geom.UserPlane(i)
			if st.ClipEnabled&bit != 0 && v.Eye.Dot(st.ClipPlanes[i]) < 0 {
				codes |= bit
			}
		}
	}

	v.Clip = st.Projection.Top().MulVec4(v.Eye)
	v.ClipCodes = codes | geom.FrustumCodes(v.Clip)
}
