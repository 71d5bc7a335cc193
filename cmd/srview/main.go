// Command srview shows a scene rendered by the sr software rasterizer in a
// window, reloading the scene file whenever it changes. R reloads the scene
// and every asset it uses; Esc quits.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/sr"
	"github.com/gogpu/sr/scene"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (.toml, .yaml); empty shows the built-in cube")
		workers   = flag.Int("workers", 0, "rasterization workers (0: GOMAXPROCS)")
		zoom      = flag.Int("zoom", 1, "window size multiplier")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "srview",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	sr.SetLogger(slog.New(logger))

	if err := run(*scenePath, *workers, max(*zoom, 1), logger); err != nil {
		logger.Fatal("viewer failed", "err", err)
	}
}

func run(path string, workers, zoom int, logger *log.Logger) error {
	cfg := scene.Default()
	if path != "" {
		var err error
		if cfg, err = scene.Load(path); err != nil {
			return err
		}
	}
	assets := scene.NewAssets(64)
	s, err := scene.BuildWith(cfg, filepath.Dir(path), assets)
	if err != nil {
		return err
	}

	v := &viewer{
		r:      sr.NewRenderer(cfg.Width, cfg.Height, sr.WithWorkers(workers)),
		path:   path,
		assets: assets,
		logger: logger,
	}
	defer v.r.Close()
	v.scene.Store(s)

	if path != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := scene.Watch(ctx, path, func(c *scene.Config, err error) {
				if err != nil {
					return // already logged by Watch
				}
				ns, err := scene.BuildWith(c, filepath.Dir(path), assets)
				if err != nil {
					logger.Warn("rebuild failed", "err", err)
					return
				}
				assets.LogStats()
				v.scene.Store(ns)
			})
			if err != nil {
				logger.Warn("hot reload disabled", "err", err)
			}
		}()
	}

	ebiten.SetWindowTitle("srview")
	ebiten.SetWindowSize(cfg.Width*zoom, cfg.Height*zoom)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err = ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// viewer renders the current scene on every tick and presents the color
// buffer through an ebiten image.
type viewer struct {
	r      *sr.Renderer
	path   string
	assets *scene.Assets
	logger *log.Logger

	// scene is swapped by the reload goroutine.
	scene atomic.Pointer[scene.Scene]

	frame int
	pix   []byte
	img   *ebiten.Image
}

func (v *viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reload()
	}

	s := v.scene.Load()
	if w, h := s.Config.Width, s.Config.Height; w != v.r.Width() || h != v.r.Height() {
		v.r.Resize(w, h)
		ebiten.SetWindowSize(w, h)
	}

	v.r.ResetStats()
	s.Render(v.r, v.frame)
	v.frame++
	return nil
}

// reload rebuilds the scene from disk with an empty asset cache.
func (v *viewer) reload() {
	cfg := scene.Default()
	if v.path != "" {
		c, err := scene.Load(v.path)
		if err != nil {
			v.logger.Warn("reload failed", "err", err)
			return
		}
		cfg = c
	}
	v.assets.Purge()
	s, err := scene.BuildWith(cfg, filepath.Dir(v.path), v.assets)
	if err != nil {
		v.logger.Warn("rebuild failed", "err", err)
		return
	}
	v.scene.Store(s)
	v.frame = 0
	v.logger.Info("scene reloaded", "path", v.path)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	err := v.r.Present(sr.PresenterFunc(func(pixels []uint32, w, h int) error {
		if v.img == nil || v.img.Bounds().Dx() != w || v.img.Bounds().Dy() != h {
			if v.img != nil {
				v.img.Deallocate()
			}
			v.img = ebiten.NewImage(w, h)
			v.pix = make([]byte, 4*w*h)
		}
		sr.ARGBToRGBA(v.pix, pixels)
		v.img.WritePixels(v.pix)
		return nil
	}))
	if err != nil {
		v.logger.Error("present failed", "err", err)
		return
	}
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return max(v.r.Width(), 1), max(v.r.Height(), 1)
}
