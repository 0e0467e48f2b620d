package pipeline

import (
	"fmt"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
)

// Winding is the front-face convention.
type Winding int

const (
	CCW Winding = iota
	CW
)

// ShadeModel selects smooth or flat shading.
type ShadeModel int

const (
	Smooth ShadeModel = iota
	Flat
)

// Hint is a quality hint.
type Hint int

const (
	DontCare Hint = iota
	Fastest
	Nicest
)

// Capability is a state that Enable and Disable toggle.
type Capability int

const (
	Lighting Capability = iota
	Normalize
	CullFace
	Fog
	AutoNormal
	ClipPlane0 // ClipPlane0+i enables user plane i
)

const (
	ClipPlane5 = ClipPlane0 + geom.MaxUserClipPlanes - 1
	Texture0   = ClipPlane0 + geom.MaxUserClipPlanes // Texture0+i enables unit i
	Texture3   = Texture0 + geom.MaxTextureUnits - 1

	// Map2Color4+c enables evaluator channel c.
	Map2Color4 = Texture0 + geom.MaxTextureUnits
)

const (
	Map2Index     = Map2Color4 + Capability(ChannelIndex)
	Map2Normal    = Map2Color4 + Capability(ChannelNormal)
	Map2TexCoord1 = Map2Color4 + Capability(ChannelTexCoord1)
	Map2TexCoord2 = Map2Color4 + Capability(ChannelTexCoord2)
	Map2TexCoord3 = Map2Color4 + Capability(ChannelTexCoord3)
	Map2TexCoord4 = Map2Color4 + Capability(ChannelTexCoord4)
	Map2Vertex3   = Map2Color4 + Capability(ChannelVertex3)
	Map2Vertex4   = Map2Color4 + Capability(ChannelVertex4)
)

// Current holds the attributes latched into each new vertex.
type Current struct {
	Normal    math.Vec3
	Color     geom.Color
	TexCoords [geom.MaxTextureUnits]math.Vec4
}

// State is the context threaded through every stage. A State belongs to a
// single pipeline and is never shared.
type State struct {
	Lighting  bool
	Normalize bool
	CullFace  bool
	Fog       bool

	CullMode  geom.Face
	FrontFace Winding
	Shade     ShadeModel
	FogHint   Hint
	FogParams geom.FogParams

	// ClipPlanes holds user plane equations in eye space.
	ClipPlanes   [geom.MaxUserClipPlanes]math.Vec4
	ClipEnabled  geom.ClipCode
	TextureUnits uint32 // bit i set when unit i is enabled

	Current  Current
	Viewport Viewport

	ModelView  MatrixStack
	Projection MatrixStack
	Texture    [geom.MaxTextureUnits]MatrixStack

	Eval EvalState
}

// NewState returns the initial GL state for a width x height viewport.
func NewState(width, height int) *State {
	st := &State{
		CullMode: geom.FaceBack,
		FogParams: geom.FogParams{
			Mode:    geom.FogExp,
			Density: 1,
			End:     1,
		},
		Viewport:   NewViewport(0, 0, width, height),
		ModelView:  NewMatrixStack(MaxModelViewDepth),
		Projection: NewMatrixStack(MaxProjectionDepth),
	}
	st.Current.Color = geom.Color{R: 1, G: 1, B: 1, A: 1}
	st.Current.Normal = math.Vec3{Z: 1}
	for i := range st.Current.TexCoords {
		st.Current.TexCoords[i] = math.Vec4{0, 0, 0, 1}
		st.Texture[i] = NewMatrixStack(MaxTextureDepth)
	}
	st.Eval = newEvalState()
	return st
}

// SetCapability enables or disables c.
func (st *State) SetCapability(c Capability, on bool) error {
	switch {
	case c == Lighting:
		st.Lighting = on
	case c == Normalize:
		st.Normalize = on
	case c == CullFace:
		st.CullFace = on
	case c == Fog:
		st.Fog = on
	case c == AutoNormal:
		st.Eval.AutoNormal = on
	case c >= ClipPlane0 && c <= ClipPlane5:
		bit := geom.UserPlane(int(c - ClipPlane0))
		if on {
			st.ClipEnabled |= bit
		} else {
			st.ClipEnabled &^= bit
		}
	case c >= Texture0 && c <= Texture3:
		bit := uint32(1) << uint(c-Texture0)
		if on {
			st.TextureUnits |= bit
		} else {
			st.TextureUnits &^= bit
		}
	case c >= Map2Color4 && c <= Map2Vertex4:
		st.Eval.Enabled[c-Map2Color4] = on
	default:
		return fmt.Errorf("capability %d: %w", int(c), glerr.ErrInvalidEnum)
	}
	return nil
}

// IsEnabled reports whether c is enabled.
func (st *State) IsEnabled(c Capability) (bool, error) {
	switch {
	case c == Lighting:
		return st.Lighting, nil
	case c == Normalize:
		return st.Normalize, nil
	case c == CullFace:
		return st.CullFace, nil
	case c == Fog:
		return st.Fog, nil
	case c == AutoNormal:
		return st.Eval.AutoNormal, nil
	case c >= ClipPlane0 && c <= ClipPlane5:
		return st.ClipEnabled&geom.UserPlane(int(c-ClipPlane0)) != 0, nil
	case c >= Texture0 && c <= Texture3:
		return st.TextureUnits&(1<<uint(c-Texture0)) != 0, nil
	case c >= Map2Color4 && c <= Map2Vertex4:
		return st.Eval.Enabled[c-Map2Color4], nil
	}
	return false, fmt.Errorf("capability %d: %w", int(c), glerr.ErrInvalidEnum)
}

// facing maps a window-space signed area to a face under the current
// front-face convention. Window y grows downward, so a counter-clockwise
// triangle on screen has a negative area.
func (st *State) facing(area float32) geom.Face {
	ccw := area < 0
	if ccw == (st.FrontFace == CCW) {
		return geom.FaceFront
	}
	return geom.FaceBack
}

// culled reports whether a polygon facing f is discarded.
func (st *State) culled(f geom.Face) bool {
	if !st.CullFace {
		return false
	}
	return st.CullMode == geom.FaceFrontAndBack || st.CullMode == f
}
