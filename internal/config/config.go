// Package config handles softgl configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings of the geometry tool.
type Config struct {
	Viewport  ViewportConfig  `yaml:"viewport"`
	Camera    CameraConfig    `yaml:"camera"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Evaluator EvaluatorConfig `yaml:"evaluator"`
	Selection SelectionConfig `yaml:"selection"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ViewportConfig holds the output image size and depth range.
type ViewportConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

// CameraConfig places the orbit camera. Angles are in degrees.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"`
	Yaw      float32 `yaml:"yaw"`
	FOV      float32 `yaml:"fov"`
}

// PipelineConfig holds fixed-function state.
type PipelineConfig struct {
	Lighting   bool      `yaml:"lighting"`
	Normalize  bool      `yaml:"normalize"`
	CullFace   string    `yaml:"cull_face"`  // none, front, back, front_and_back
	FrontFace  string    `yaml:"front_face"` // ccw, cw
	ShadeModel string    `yaml:"shade_model"`
	Fog        FogConfig `yaml:"fog"`
}

// FogConfig holds fog settings.
type FogConfig struct {
	Enabled bool    `yaml:"enabled"`
	Mode    string  `yaml:"mode"` // linear, exp, exp2
	Density float32 `yaml:"density"`
	Start   float32 `yaml:"start"`
	End     float32 `yaml:"end"`
	Hint    string  `yaml:"hint"` // dont_care, fastest, nicest
}

// EvaluatorConfig holds the mesh grid used for surfaces.
type EvaluatorConfig struct {
	NU         int  `yaml:"nu"`
	NV         int  `yaml:"nv"`
	AutoNormal bool `yaml:"auto_normal"`
}

// SelectionConfig holds picking settings.
type SelectionConfig struct {
	BufferSize int     `yaml:"buffer_size"`
	PickWidth  float32 `yaml:"pick_width"`
	PickHeight float32 `yaml:"pick_height"`
}

// FeedbackConfig holds feedback settings.
type FeedbackConfig struct {
	BufferSize int    `yaml:"buffer_size"`
	Type       string `yaml:"type"` // 2d, 3d, 3d_color, 3d_color_texture, 4d_color_texture
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  640,
			Height: 480,
			Near:   0,
			Far:    1,
		},
		Camera: CameraConfig{
			Distance: 6,
			Pitch:    30,
			Yaw:      20,
			FOV:      45,
		},
		Pipeline: PipelineConfig{
			Lighting:   true,
			Normalize:  true,
			CullFace:   "none",
			FrontFace:  "ccw",
			ShadeModel: "smooth",
			Fog: FogConfig{
				Enabled: false,
				Mode:    "linear",
				Density: 1,
				Start:   4,
				End:     12,
				Hint:    "dont_care",
			},
		},
		Evaluator: EvaluatorConfig{
			NU:         16,
			NV:         16,
			AutoNormal: true,
		},
		Selection: SelectionConfig{
			BufferSize: 512,
			PickWidth:  5,
			PickHeight: 5,
		},
		Feedback: FeedbackConfig{
			BufferSize: 4096,
			Type:       "3d_color",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the numeric settings. Names of modes are checked where
// they are applied.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d must be positive", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %g out of (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera distance %g must be positive", c.Camera.Distance))
	}
	if c.Evaluator.NU < 1 || c.Evaluator.NV < 1 {
		errs = append(errs, fmt.Errorf("evaluator grid %dx%d must be at least 1x1", c.Evaluator.NU, c.Evaluator.NV))
	}
	if c.Selection.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("selection buffer size %d is negative", c.Selection.BufferSize))
	}
	if c.Selection.PickWidth <= 0 || c.Selection.PickHeight <= 0 {
		errs = append(errs, fmt.Errorf("pick region %gx%g must be positive", c.Selection.PickWidth, c.Selection.PickHeight))
	}
	if c.Feedback.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("feedback buffer size %d is negative", c.Feedback.BufferSize))
	}
	return errors.Join(errs...)
}
