// Command srdemo renders a scene with the sr software rasterizer and writes
// the frames as PNG or BMP files.
//
// Usage:
//
//	srdemo [-scene scene.toml] [-frames 36] [-out frame_%03d.png]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/sr"
	"github.com/gogpu/sr/scene"
)

type config struct {
	scene   string
	width   int
	height  int
	frames  int
	out     string
	format  string
	scale   int
	workers int
	verbose bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.scene, "scene", "", "scene file (.toml, .yaml); empty renders the built-in cube")
	flag.IntVar(&cfg.width, "width", 0, "image width (0: from scene)")
	flag.IntVar(&cfg.height, "height", 0, "image height (0: from scene)")
	flag.IntVar(&cfg.frames, "frames", 1, "number of frames to render")
	flag.StringVar(&cfg.out, "out", "frame.png", "output file; use a %03d verb for multiple frames")
	flag.StringVar(&cfg.format, "format", "", "output format: png or bmp (default: from -out extension)")
	flag.IntVar(&cfg.scale, "scale", 1, "integer nearest-neighbour upscale factor")
	flag.IntVar(&cfg.workers, "workers", 0, "rasterization workers (0: GOMAXPROCS)")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "srdemo",
	})
	if cfg.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	sr.SetLogger(slog.New(logger))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("render failed", "err", err)
	}
}

func run(cfg config, logger *log.Logger) error {
	if cfg.frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", cfg.frames)
	}
	if cfg.scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", cfg.scale)
	}
	format, err := formatOf(cfg.format, cfg.out)
	if err != nil {
		return err
	}

	sc, err := loadScene(cfg.scene)
	if err != nil {
		return err
	}
	if cfg.width > 0 {
		sc.Width = cfg.width
	}
	if cfg.height > 0 {
		sc.Height = cfg.height
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	s, err := scene.Build(sc, filepath.Dir(cfg.scene))
	if err != nil {
		return err
	}

	r := sr.NewRenderer(sc.Width, sc.Height, sr.WithWorkers(cfg.workers))
	defer r.Close()

	logger.Info("rendering", "frames", cfg.frames, "size", fmt.Sprintf("%dx%d", sc.Width, sc.Height),
		"models", len(sc.Models), "workers", r.Workers())

	var bar *progressbar.ProgressBar
	if cfg.frames > 1 {
		bar = progressbar.Default(int64(cfg.frames), "frames")
	}

	// Rendering reuses one framebuffer, so it stays on this goroutine;
	// encoding works on copies and runs in parallel.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	start := time.Now()
	for i := 0; i < cfg.frames; i++ {
		s.Render(r, i)
		img := upscale(r.Framebuffer().ToImage(), cfg.scale)
		name := frameName(cfg.out, i, cfg.frames)

		g.Go(func() error {
			if err := writeImage(name, img, format); err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	st := r.Stats()
	logger.Info("done",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"primitives", st.Primitives,
		"clipped", st.Clipped,
		"shaded", st.PixelsShaded,
		"out", frameName(cfg.out, 0, cfg.frames))
	return nil
}

func loadScene(path string) (*scene.Config, error) {
	if path == "" {
		return scene.Default(), nil
	}
	return scene.Load(path)
}
