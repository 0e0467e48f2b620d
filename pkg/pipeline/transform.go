package pipeline

import (
	"fmt"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
)

// MatrixMode selects the stack later matrix calls apply to.
func (p *Pipeline) MatrixMode(m MatrixMode) error {
	if err := p.outside("matrix mode"); err != nil {
		return err
	}
	if _, err := p.st.stack(m, p.activeTexture); err != nil {
		return err
	}
	p.matrixMode = m
	return nil
}

// ActiveTexture selects the unit whose texture matrix TextureMatrix mode
// edits.
func (p *Pipeline) ActiveTexture(unit int) error {
	if unit < 0 || unit >= geom.MaxTextureUnits {
		return fmt.Errorf("active texture %d: %w", unit, glerr.ErrInvalidEnum)
	}
	p.activeTexture = unit
	return nil
}

func (p *Pipeline) current(op string) (*MatrixStack, error) {
	if err := p.outside(op); err != nil {
		return nil, err
	}
	return p.st.stack(p.matrixMode, p.activeTexture)
}

// LoadIdentity replaces the current matrix with the identity.
func (p *Pipeline) LoadIdentity() error {
	return p.LoadMatrix(math.Identity())
}

// LoadMatrix replaces the current matrix.
func (p *Pipeline) LoadMatrix(m math.Mat4) error {
	s, err := p.current("load matrix")
	if err != nil {
		return err
	}
	s.Load(m)
	return nil
}

// MultMatrix post-multiplies the current matrix.
func (p *Pipeline) MultMatrix(m math.Mat4) error {
	s, err := p.current("mult matrix")
	if err != nil {
		return err
	}
	s.Mult(m)
	return nil
}

// PushMatrix duplicates the current matrix.
func (p *Pipeline) PushMatrix() error {
	s, err := p.current("push matrix")
	if err != nil {
		return err
	}
	return s.Push()
}

// PopMatrix restores the previous matrix.
func (p *Pipeline) PopMatrix() error {
	s, err := p.current("pop matrix")
	if err != nil {
		return err
	}
	return s.Pop()
}

// Translate multiplies by a translation.
func (p *Pipeline) Translate(x, y, z float32) error {
	return p.MultMatrix(math.Translate(x, y, z))
}

// Scale multiplies by a scale.
func (p *Pipeline) Scale(x, y, z float32) error {
	return p.MultMatrix(math.Scale(x, y, z))
}

// Rotate multiplies by a rotation of angle radians around axis.
func (p *Pipeline) Rotate(angle float32, axis math.Vec3) error {
	return p.MultMatrix(math.Rotate(angle, axis))
}

// Frustum multiplies by a perspective projection.
func (p *Pipeline) Frustum(left, right, bottom, top, near, far float32) error {
	if near <= 0 || far <= 0 || left == right || bottom == top || near == far {
		return fmt.Errorf("frustum: %w", glerr.ErrInvalidValue)
	}
	return p.MultMatrix(math.Frustum(left, right, bottom, top, near, far))
}

// Ortho multiplies by an orthographic projection.
func (p *Pipeline) Ortho(left, right, bottom, top, near, far float32) error {
	if left == right || bottom == top || near == far {
		return fmt.Errorf("ortho: %w", glerr.ErrInvalidValue)
	}
	return p.MultMatrix(math.Ortho(left, right, bottom, top, near, far))
}
