package config

import (
	"flag"
	"fmt"
	"strconv"
)

// Flag names shared by every subcommand.
const (
	flagConfig   = "config"
	flagDebug    = "debug"
	flagWidth    = "width"
	flagHeight   = "height"
	flagShade    = "shade"
	flagCull     = "cull"
	flagLighting = "lighting"
	flagGrid     = "grid"
)

// RegisterFlags adds the config override flags to fs. Call it before
// fs.Parse.
func RegisterFlags(fs *flag.FlagSet) {
	fs.String(flagConfig, "", "Path to config file")
	fs.Bool(flagDebug, false, "Enable debug logging")
	fs.Int(flagWidth, 0, "Viewport width")
	fs.Int(flagHeight, 0, "Viewport height")
	fs.String(flagShade, "", "Shade model: smooth or flat")
	fs.String(flagCull, "", "Cull face: none, front, back or front_and_back")
	fs.Bool(flagLighting, true, "Enable lighting")
	fs.Int(flagGrid, 0, "Evaluator grid divisions along u and v")
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath(fs *flag.FlagSet) string {
	return flagString(fs, flagConfig)
}

func flagString(fs *flag.FlagSet, name string) string {
	f := fs.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// applyFlags applies the flags set on the command line. Flags left at
// their defaults do not override the file.
func applyFlags(cfg *Config, fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case flagDebug:
			if v == "true" {
				cfg.Logging.Level = "debug"
			}
		case flagWidth:
			cfg.Viewport.Width, err = positive(f.Name, v)
		case flagHeight:
			cfg.Viewport.Height, err = positive(f.Name, v)
		case flagShade:
			cfg.Pipeline.ShadeModel = v
		case flagCull:
			cfg.Pipeline.CullFace = v
		case flagLighting:
			cfg.Pipeline.Lighting = v == "true"
		case flagGrid:
			var n int
			if n, err = positive(f.Name, v); err == nil {
				cfg.Evaluator.NU, cfg.Evaluator.NV = n, n
			}
		}
	})
	return err
}

func positive(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("flag -%s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("flag -%s: %d is not positive", name, n)
	}
	return n, nil
}
