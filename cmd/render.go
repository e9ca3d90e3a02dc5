package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/olekukonko/tablewriter"
	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/imageio"
	"github.com/pgadula/raytracing/pkg/renderer"
	"github.com/pgadula/raytracing/pkg/scene"
	"github.com/urfave/cli"
)

// Render a still image by accumulating one or more frames.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx.Args().First(), ctx.GlobalString("scenes"))
	if err != nil {
		return err
	}
	if sc, err = applyRenderFlags(ctx, sc); err != nil {
		return err
	}

	frames := ctx.Int("frames")
	if frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", frames)
	}

	cfg := renderer.DefaultFrameConfig()
	cfg.TileSize = ctx.Int("tile-size")
	cfg.NumWorkers = ctx.Int("workers")
	cfg.Seed = ctx.Int64("seed")
	cfg.MaxFrames = frames

	r, err := renderer.NewFrameRenderer(sc, cfg, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %q at %dx%d: %d frame(s), depth %d, %d spp, %d workers",
		sc.Name, sc.Render.Width, sc.Render.Height, frames, sc.Render.MaxDepth, sc.Render.SamplesPerPixel, r.NumWorkers())

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, errs := r.RenderProgressive(runCtx, renderer.RenderOptions{
		MaxFrames: frames,
		Pointer:   pointerFlag(ctx),
	})

	var (
		last  renderer.FrameResult
		stats []renderer.FrameStats
	)
	for result := range results {
		last = result
		stats = append(stats, result.Stats)
	}
	if err := <-errs; err != nil {
		return err
	}
	if last.Image == nil {
		return fmt.Errorf("no frames were rendered")
	}

	out := ctx.String("out")
	if out == "" {
		out = defaultOutputPath(sc.Name, time.Now())
	}
	img := imageio.Upscale(last.Image, ctx.Int("scale"), ctx.Bool("smooth"))
	if err := imageio.WriteFile(out, img); err != nil {
		return err
	}

	displayFrameStats(stats, renderer.CalculateAverageLuminance(last.Image))
	logger.Noticef("wrote %s", out)
	return nil
}

// loadScene resolves a scene argument. Paths ending in .json are loaded
// directly; anything else is a built-in name or a file:<name> ID.
func loadScene(arg, dir string) (*scene.Scene, error) {
	if arg == "" {
		arg = "default"
	}
	if strings.EqualFold(filepath.Ext(arg), ".json") {
		return scene.LoadFile(arg)
	}
	return scene.Resolve(arg, dir)
}

// applyRenderFlags overrides the scene's render settings with the flags the
// user actually passed.
func applyRenderFlags(ctx *cli.Context, sc *scene.Scene) (*scene.Scene, error) {
	cfg := sc.Render
	if ctx.IsSet("width") {
		cfg.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Height = ctx.Int("height")
	}
	if ctx.IsSet("depth") {
		cfg.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("spp") {
		cfg.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("intensity") {
		cfg.Intensity = ctx.Float64("intensity")
	}
	if cfg == sc.Render {
		return sc, nil
	}
	return sc.WithRender(cfg)
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	dir := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return unicode.ToLower(r)
		}
		return '-'
	}, sceneName)
	if dir == "" {
		dir = "scene"
	}
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func pointerFlag(ctx *cli.Context) *core.Vec2 {
	if !ctx.IsSet("pointer-x") && !ctx.IsSet("pointer-y") {
		return nil
	}
	p := core.NewVec2(ctx.Float64("pointer-x"), ctx.Float64("pointer-y"))
	return &p
}

func displayFrameStats(stats []renderer.FrameStats, luminance float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Tiles", "Samples", "Samples/s", "Render time"})

	var total renderer.FrameStats
	for _, stat := range stats {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Frame),
			fmt.Sprintf("%d", stat.Tiles),
			fmt.Sprintf("%d", stat.TotalSamples),
			fmt.Sprintf("%.0f", stat.SamplesPerSecond()),
			stat.Duration.String(),
		})
		total.TotalSamples += stat.TotalSamples
		total.Duration += stat.Duration
	}
	table.SetFooter([]string{
		"", fmt.Sprintf("luma %.3f", luminance), fmt.Sprintf("%d", total.TotalSamples),
		fmt.Sprintf("%.0f", total.SamplesPerSecond()), total.Duration.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
