package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/softgl/internal/camera"
	"github.com/Faultbox/softgl/internal/config"
	"github.com/Faultbox/softgl/internal/debug"
	"github.com/Faultbox/softgl/internal/logger"
	"github.com/Faultbox/softgl/internal/scene"
	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/lighting"
	"github.com/Faultbox/softgl/pkg/pipeline"
	"github.com/Faultbox/softgl/pkg/render"
)

var background = geom.Color{R: 0.1, G: 0.12, B: 0.15, A: 1}

// session is the demo scene loaded into a configured pipeline.
type session struct {
	cfg   *config.Config
	p     *pipeline.Pipeline
	scene *scene.Scene
	cam   *camera.OrbitCamera
}

// newFlagSet creates a subcommand flag set carrying the config flags.
func newFlagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	config.RegisterFlags(fs)
	fit := fs.Bool("fit", false, "Move the camera to frame the whole scene")
	return fs, fit
}

// setup parses args, loads the config, starts logging and prepares the
// demo scene.
func setup(fs *flag.FlagSet, fit *bool, args []string) (*session, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	p, err := scene.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	s := scene.Demo()
	if err := s.Setup(p, cfg.Evaluator.NU, cfg.Evaluator.NV); err != nil {
		return nil, err
	}

	cam := camera.FromConfig(cfg.Camera)
	if *fit {
		cam.FitToRadius(s.Bounds())
	}

	logger.Debug("session ready",
		zap.String("command", fs.Name()),
		zap.Int("width", cfg.Viewport.Width),
		zap.Int("height", cfg.Viewport.Height),
	)
	return &session{cfg: cfg, p: p, scene: s, cam: cam}, nil
}

func cmdRender(args []string, stdout io.Writer) error {
	fs, fit := newFlagSet("render")
	out := fs.String("o", "", "Output PNG path (default: timestamped name in the current directory)")
	outline := fs.Bool("outline", false, "Draw box outlines")
	fromLight := fs.Bool("light", false, "View the scene from the sun with an orthographic projection")

	ss, err := setup(fs, fit, args)
	if err != nil {
		return err
	}
	ss.scene.Outlines = *outline

	if *fromLight {
		center, radius := ss.scene.Bounds()
		lv := camera.LightView{
			Direction: lighting.SunDirection(scene.SunLongitude, scene.SunLatitude),
			Center:    center,
			Radius:    radius,
		}
		err = lv.Apply(ss.p)
	} else {
		err = ss.cam.Apply(ss.p)
	}
	if err != nil {
		return err
	}
	ss.p.Raster().Clear(background)
	if err := ss.scene.Draw(ss.p); err != nil {
		return err
	}

	img := ss.p.Raster().Image()
	path := *out
	if path == "" {
		path, err = debug.NewScreenshotCapture(".", "softgl").CaptureFromImage(img)
	} else {
		err = debug.SavePNG(img, path)
	}
	if err != nil {
		return err
	}

	logger.Info("rendered scene", zap.String("path", path))
	fmt.Fprintln(stdout, path)
	return nil
}

func cmdPick(args []string, stdout io.Writer) error {
	fs, fit := newFlagSet("pick")
	ss, err := setup(fs, fit, args)
	if err != nil {
		return err
	}
	x, y, err := parsePair(fs, "pick [options] <x> <y>")
	if err != nil {
		return err
	}

	sel := ss.cfg.Selection
	hits, err := scene.Select(ss.p, ss.scene, ss.cam, x, y, sel.PickWidth, sel.PickHeight, sel.BufferSize)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Fprintln(stdout, "no hits")
	}
	for i, h := range hits {
		name, _ := h.Name()
		fmt.Fprintf(stdout, "%d. %-8s names=%v depth=[%.4f, %.4f]\n",
			i+1, ss.scene.Label(name), h.Names, h.Near(), h.Far())
	}

	if rh, ok := scene.CastRay(ss.scene, ss.cam, ss.p.State().Viewport, x, y); ok {
		fmt.Fprintf(stdout, "ray: %s at distance %.3f\n", rh.Object.Label, rh.Distance)
	}
	return nil
}

func cmdFeedback(args []string, stdout io.Writer) error {
	fs, fit := newFlagSet("feedback")
	typeName := fs.String("type", "", "Feedback type: 2d, 3d, 3d_color, 3d_color_texture, 4d_color_texture")
	limit := fs.Int("limit", 0, "Print at most N records (0 = all)")

	ss, err := setup(fs, fit, args)
	if err != nil {
		return err
	}
	if *typeName == "" {
		*typeName = ss.cfg.Feedback.Type
	}
	typ, err := render.ParseFeedbackType(*typeName)
	if err != nil {
		return err
	}

	size := ss.cfg.Feedback.BufferSize
	buf := make([]float32, size)
	if err := ss.p.FeedbackBuffer(size, typ, buf); err != nil {
		return err
	}
	if err := ss.cam.Apply(ss.p); err != nil {
		return err
	}
	if _, err := ss.p.RenderMode(render.ModeFeedback); err != nil {
		return err
	}
	drawErr := ss.scene.Draw(ss.p)
	n, err := ss.p.RenderMode(render.ModeRender)
	if drawErr != nil {
		return drawErr
	}
	if err != nil {
		return err
	}

	overflow := n < 0
	if overflow {
		n = -n
	}
	records, err := render.ParseFeedback(buf[:n], typ)
	if err != nil && !overflow {
		return err
	}

	counts := map[string]int{}
	for i, r := range records {
		counts[r.Kind()]++
		if *limit > 0 && i >= *limit {
			continue
		}
		fmt.Fprintln(stdout, formatRecord(r))
	}

	fmt.Fprintf(stdout, "%d values: %d polygons, %d lines, %d points\n",
		n, counts["polygon"], counts["line"], counts["point"])
	if overflow {
		fmt.Fprintf(stdout, "buffer of %d values overflowed\n", size)
	}
	return nil
}

func formatRecord(r render.Record) string {
	var b strings.Builder
	b.WriteString(r.Kind())
	if r.Token == render.TokenPassThrough {
		fmt.Fprintf(&b, " %g", r.Value)
	}
	for _, v := range r.Vertices {
		b.WriteString(" (")
		for i, x := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(float64(x), 'f', 3, 32))
		}
		b.WriteString(")")
	}
	return b.String()
}

func cmdEval(args []string, stdout io.Writer) error {
	fs, fit := newFlagSet("eval")
	ss, err := setup(fs, fit, args)
	if err != nil {
		return err
	}
	u, v, err := parsePair(fs, "eval [options] <u> <v>")
	if err != nil {
		return err
	}

	surf, err := ss.p.Evaluator().Surface(pipeline.ChannelVertex3)
	if err != nil {
		return err
	}
	pos := make([]float32, 3)
	surf.Evaluate(u, v, pos)
	n := surf.Normal(u, v)

	fmt.Fprintf(stdout, "position: (%.4f, %.4f, %.4f)\n", pos[0], pos[1], pos[2])
	fmt.Fprintf(stdout, "normal:   (%.4f, %.4f, %.4f)\n", n.X, n.Y, n.Z)
	return nil
}

func cmdConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	out := fs.String("o", config.FileName, "Output path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.Default().SaveTo(*out); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return nil
}

// parsePair reads two float positional arguments.
func parsePair(fs *flag.FlagSet, usage string) (float32, float32, error) {
	if fs.NArg() != 2 {
		return 0, 0, fmt.Errorf("usage: geomtool %s", usage)
	}
	var vals [2]float32
	for i := range vals {
		f, err := strconv.ParseFloat(fs.Arg(i), 32)
		if err != nil {
			return 0, 0, fmt.Errorf("argument %q: %w", fs.Arg(i), err)
		}
		vals[i] = float32(f)
	}
	return vals[0], vals[1], nil
}
