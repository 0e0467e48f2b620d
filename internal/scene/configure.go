package scene

import (
	"fmt"

	"github.com/Faultbox/softgl/internal/config"
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/pipeline"
)

// ParseCullFace converts a cull setting. "none" disables culling.
func ParseCullFace(s string) (enabled bool, face geom.Face, err error) {
	switch s {
	case "none", "":
		return false, geom.FaceBack, nil
	case "front":
		return true, geom.FaceFront, nil
	case "back":
		return true, geom.FaceBack, nil
	case "front_and_back":
		return true, geom.FaceFrontAndBack, nil
	}
	return false, 0, fmt.Errorf("cull face %q: %w", s, glerr.ErrInvalidEnum)
}

// ParseFrontFace converts a winding name.
func ParseFrontFace(s string) (pipeline.Winding, error) {
	switch s {
	case "ccw":
		return pipeline.CCW, nil
	case "cw":
		return pipeline.CW, nil
	}
	return 0, fmt.Errorf("front face %q: %w", s, glerr.ErrInvalidEnum)
}

// ParseShadeModel converts a shade model name.
func ParseShadeModel(s string) (pipeline.ShadeModel, error) {
	switch s {
	case "smooth":
		return pipeline.Smooth, nil
	case "flat":
		return pipeline.Flat, nil
	}
	return 0, fmt.Errorf("shade model %q: %w", s, glerr.ErrInvalidEnum)
}

// ParseFogMode converts a fog mode name.
func ParseFogMode(s string) (geom.FogMode, error) {
	switch s {
	case "linear":
		return geom.FogLinear, nil
	case "exp":
		return geom.FogExp, nil
	case "exp2":
		return geom.FogExp2, nil
	}
	return 0, fmt.Errorf("fog mode %q: %w", s, glerr.ErrInvalidEnum)
}

// ParseHint converts a hint name.
func ParseHint(s string) (pipeline.Hint, error) {
	switch s {
	case "dont_care", "":
		return pipeline.DontCare, nil
	case "fastest":
		return pipeline.Fastest, nil
	case "nicest":
		return pipeline.Nicest, nil
	}
	return 0, fmt.Errorf("hint %q: %w", s, glerr.ErrInvalidEnum)
}

// NewPipeline creates a pipeline sized for cfg and configured from it.
func NewPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	p := pipeline.New(pipeline.Config{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height})
	if err := Configure(p, cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Configure applies the pipeline, viewport and evaluator settings of cfg
// to p.
func Configure(p *pipeline.Pipeline, cfg *config.Config) error {
	pc := cfg.Pipeline

	if err := p.Viewport(0, 0, cfg.Viewport.Width, cfg.Viewport.Height); err != nil {
		return err
	}
	if err := p.DepthRange(cfg.Viewport.Near, cfg.Viewport.Far); err != nil {
		return err
	}

	if err := setCapability(p, pipeline.Lighting, pc.Lighting); err != nil {
		return err
	}
	if err := setCapability(p, pipeline.Normalize, pc.Normalize); err != nil {
		return err
	}
	if err := setCapability(p, pipeline.AutoNormal, cfg.Evaluator.AutoNormal); err != nil {
		return err
	}

	cull, face, err := ParseCullFace(pc.CullFace)
	if err != nil {
		return err
	}
	if err := setCapability(p, pipeline.CullFace, cull); err != nil {
		return err
	}
	if err := p.CullFace(face); err != nil {
		return err
	}

	winding, err := ParseFrontFace(pc.FrontFace)
	if err != nil {
		return err
	}
	if err := p.FrontFace(winding); err != nil {
		return err
	}

	shade, err := ParseShadeModel(pc.ShadeModel)
	if err != nil {
		return err
	}
	if err := p.ShadeModel(shade); err != nil {
		return err
	}

	return configureFog(p, pc.Fog)
}

func configureFog(p *pipeline.Pipeline, fc config.FogConfig) error {
	mode, err := ParseFogMode(fc.Mode)
	if err != nil {
		return err
	}
	hint, err := ParseHint(fc.Hint)
	if err != nil {
		return err
	}
	params := geom.FogParams{
		Mode:    mode,
		Density: fc.Density,
		Start:   fc.Start,
		End:     fc.End,
	}
	if err := p.Fog(params); err != nil {
		return err
	}
	if err := p.FogHint(hint); err != nil {
		return err
	}
	return setCapability(p, pipeline.Fog, fc.Enabled)
}

func setCapability(p *pipeline.Pipeline, c pipeline.Capability, on bool) error {
	if on {
		return p.Enable(c)
	}
	return p.Disable(c)
}
