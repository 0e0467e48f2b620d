package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/softgl/internal/logger"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/render"
)

// bind hands the backend of the current mode to the assembler.
func (p *Pipeline) bind() {
	switch p.mode {
	case render.ModeSelect:
		p.asm.SetRenderer(p.selector)
	case render.ModeFeedback:
		p.asm.SetRenderer(p.feedback)
	default:
		p.raster.Flat = p.st.Shade == Flat
		p.asm.SetRenderer(p.raster)
	}
}

// Mode returns the current render mode.
func (p *Pipeline) Mode() render.Mode {
	return p.mode
}

// RenderMode switches the render mode. Leaving select mode returns the hit
// count and leaving feedback mode the number of values written; either is
// negative when its buffer overflowed. Leaving render mode returns 0.
func (p *Pipeline) RenderMode(mode render.Mode) (int, error) {
	if err := p.outside("render mode"); err != nil {
		return 0, err
	}

	switch mode {
	case render.ModeRender:
	case render.ModeSelect:
		if p.selectCap < 0 {
			return 0, fmt.Errorf("select mode without select buffer: %w", glerr.ErrInvalidOperation)
		}
	case render.ModeFeedback:
		if p.feedbackCap < 0 {
			return 0, fmt.Errorf("feedback mode without feedback buffer: %w", glerr.ErrInvalidOperation)
		}
	default:
		return 0, fmt.Errorf("render mode %d: %w", int(mode), glerr.ErrInvalidEnum)
	}

	var result int
	switch p.mode {
	case render.ModeSelect:
		result = p.selector.Exit()
		if result < 0 {
			logger.Warn("selection buffer overflow",
				zap.Int("hits", -result),
				zap.Int("capacity", p.selectCap),
			)
		}
	case render.ModeFeedback:
		result = p.feedback.Exit()
		if result < 0 {
			logger.Warn("feedback buffer overflow",
				zap.Int("values", -result),
				zap.Int("capacity", p.feedbackCap),
			)
		}
	}

	switch mode {
	case render.ModeSelect:
		if err := p.selector.Enter(p.selectBuf, p.selectCap); err != nil {
			return result, err
		}
	case render.ModeFeedback:
		if err := p.feedback.Enter(p.feedbackBuf, p.feedbackCap, p.feedbackType); err != nil {
			return result, err
		}
	}

	if mode != p.mode {
		logger.Debug("render mode", zap.Stringer("from", p.mode), zap.Stringer("to", mode))
	}
	p.mode = mode
	p.bind()
	return result, nil
}

// SelectBuffer sets the buffer select mode writes hit records into.
func (p *Pipeline) SelectBuffer(capacity int, buf []uint32) error {
	if capacity < 0 || capacity > len(buf) {
		return fmt.Errorf("select buffer capacity %d: %w", capacity, glerr.ErrInvalidValue)
	}
	if p.mode == render.ModeSelect {
		return fmt.Errorf("select buffer in select mode: %w", glerr.ErrInvalidOperation)
	}
	p.selectBuf = buf
	p.selectCap = capacity
	return nil
}

// FeedbackBuffer sets the buffer and vertex layout for feedback mode.
func (p *Pipeline) FeedbackBuffer(capacity int, typ render.FeedbackType, buf []float32) error {
	if typ.Size() == 0 {
		return fmt.Errorf("feedback type %d: %w", int(typ), glerr.ErrInvalidEnum)
	}
	if capacity < 0 || capacity > len(buf) {
		return fmt.Errorf("feedback buffer capacity %d: %w", capacity, glerr.ErrInvalidValue)
	}
	if p.mode == render.ModeFeedback {
		return fmt.Errorf("feedback buffer in feedback mode: %w", glerr.ErrInvalidOperation)
	}
	p.feedbackBuf = buf
	p.feedbackCap = capacity
	p.feedbackType = typ
	return nil
}

// Name stack calls are ignored outside select mode.

// InitNames empties the name stack.
func (p *Pipeline) InitNames() error {
	if err := p.outside("init names"); err != nil {
		return err
	}
	if p.mode == render.ModeSelect {
		p.selector.InitNames()
	}
	return nil
}

// LoadName replaces the top of the name stack.
func (p *Pipeline) LoadName(name uint32) error {
	if err := p.outside("load name"); err != nil {
		return err
	}
	if p.mode != render.ModeSelect {
		return nil
	}
	return p.selector.LoadName(name)
}

// PushName pushes a name.
func (p *Pipeline) PushName(name uint32) error {
	if err := p.outside("push name"); err != nil {
		return err
	}
	if p.mode != render.ModeSelect {
		return nil
	}
	return p.selector.PushName(name)
}

// PopName pops a name.
func (p *Pipeline) PopName() error {
	if err := p.outside("pop name"); err != nil {
		return err
	}
	if p.mode != render.ModeSelect {
		return nil
	}
	return p.selector.PopName()
}

// PassThrough writes a marker into the feedback stream; it is ignored in
// other modes.
func (p *Pipeline) PassThrough(token float32) error {
	if err := p.outside("pass through"); err != nil {
		return err
	}
	if p.mode == render.ModeFeedback {
		p.feedback.PassThrough(token)
	}
	return nil
}
