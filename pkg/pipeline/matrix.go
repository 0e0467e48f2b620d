package pipeline

import (
	"fmt"

	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
)

// Matrix stack depths.
const (
	MaxModelViewDepth  = 32
	MaxProjectionDepth = 2
	MaxTextureDepth    = 2
)

// MatrixStack is a bounded stack of transforms. The top's inverse transpose
// is computed on first use and cached until the top changes.
type MatrixStack struct {
	entries [MaxModelViewDepth]math.Mat4
	max     int
	top     int

	invT      math.Mat4
	invTValid bool
}

// NewMatrixStack returns a stack of the given depth holding the identity.
func NewMatrixStack(depth int) MatrixStack {
	if depth > MaxModelViewDepth {
		depth = MaxModelViewDepth
	}
	s := MatrixStack{max: depth}
	s.entries[0] = math.Identity()
	return s
}

// Top returns the current matrix.
func (s *MatrixStack) Top() math.Mat4 {
	return s.entries[s.top]
}

// Depth returns the number of matrices on the stack.
func (s *MatrixStack) Depth() int {
	return s.top + 1
}

// Load replaces the current matrix.
func (s *MatrixStack) Load(m math.Mat4) {
	s.entries[s.top] = m
	s.invTValid = false
}

// Mult post-multiplies the current matrix by m.
func (s *MatrixStack) Mult(m math.Mat4) {
	s.Load(s.entries[s.top].Mul(m))
}

// Push duplicates the current matrix.
func (s *MatrixStack) Push() error {
	if s.top+1 >= s.max {
		return fmt.Errorf("push matrix: %w", glerr.ErrStackOverflow)
	}
	s.entries[s.top+1] = s.entries[s.top]
	s.top++
	return nil
}

// Pop restores the previous matrix.
func (s *MatrixStack) Pop() error {
	if s.top == 0 {
		return fmt.Errorf("pop matrix: %w", glerr.ErrStackUnderflow)
	}
	s.top--
	s.invTValid = false
	return nil
}

// InverseTranspose returns the inverse transpose of the current matrix.
func (s *MatrixStack) InverseTranspose() math.Mat4 {
	if !s.invTValid {
		s.invT = s.entries[s.top].InverseTranspose()
		s.invTValid = true
	}
	return s.invT
}

// MatrixMode selects the stack that matrix calls operate on.
type MatrixMode int

const (
	ModelView MatrixMode = iota
	Projection
	TextureMatrix
)

// stack returns the stack selected by mode; texture stacks are per unit.
func (st *State) stack(mode MatrixMode, unit int) (*MatrixStack, error) {
	switch mode {
	case ModelView:
		return &st.ModelView, nil
	case Projection:
		return &st.Projection, nil
	case TextureMatrix:
		return &st.Texture[unit], nil
	}
	return nil, fmt.Errorf("matrix mode %d: %w", int(mode), glerr.ErrInvalidEnum)
}
