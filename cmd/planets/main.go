// planets - Procedural planets in the terminal
// Renders a shaded sphere (or any OBJ/GLB mesh) with one of five
// noise-driven planet materials.
//
// Controls:
//
//	1-5         - Select shader (rocky, gas giant, crystal, nebula, metallic)
//	Mouse drag  - Orbit the camera
//	Scroll      - Zoom in/out
//	W/S/A/D     - Orbit the camera (arrows work too)
//	+/-         - Adjust zoom
//	Space       - Toggle planet rotation
//	R           - Reset camera
//	X           - Toggle wireframe overlay
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	P           - Save a PNG snapshot of the current frame
//	?           - Toggle HUD overlay
//	Esc         - Quit (or cancel light mode)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/planets/internal/config"
	"github.com/taigrr/planets/internal/logger"
	"github.com/taigrr/planets/pkg/render"
	"github.com/taigrr/planets/pkg/shader"
)

const (
	orbitStep   = 0.15
	zoomStep    = 0.5
	dragScale   = 0.05
	eventBuffer = 64
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "planets - Procedural planets in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: planets [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  1-5         - Select shader\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  Space       - Toggle rotation\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  L           - Position light (mouse to aim, click to set)\n")
		fmt.Fprintf(os.Stderr, "  P           - Save PNG snapshot\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	if err := realMain(); err != nil {
		logger.Error("planets exited", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Println(path)
		return nil
	}

	// The viewer owns the terminal; it logs to the file only.
	headless := config.SnapshotPath() != ""
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, headless); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting planets",
		zap.String("config", cfg.Path),
		zap.String("shader", cfg.Scene.Shader),
		zap.Int("workers", cfg.WorkerCount()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if headless {
		return snapshot(ctx, cfg, config.SnapshotPath(), config.SnapshotTime())
	}
	return run(ctx, cfg)
}

func run(ctx context.Context, cfg *config.Config) error {
	s, err := newScene(cfg)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking, SGR extended mode.
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fb := render.NewFramebuffer(render.TerminalSize(width, height))
	r := render.NewRenderer(fb, cfg.WorkerCount())
	hud := NewHUD(s.mesh.TriangleCount())
	log := logger.Named("viewer")

	// Events are handled on the render goroutine so the scene has a
	// single owner.
	events := make(chan any, eventBuffer)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	reloads := make(chan *config.Config, 1)
	if cfg.Path != "" {
		go func() {
			err := config.Watch(ctx, cfg.Path,
				func(c *config.Config) {
					select {
					case reloads <- c:
					default:
					}
				},
				func(err error) { log.Warn("config reload failed", zap.Error(err)) },
			)
			if err != nil {
				log.Warn("config watch stopped", zap.Error(err))
			}
		}()
	}

	var (
		mouseDown              bool
		lastMouseX, lastMouseY int
		aiming                 bool
	)
	pendingLight, savedLight := s.light, s.light

	handle := func(ev any) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			fb = render.NewFramebuffer(render.TerminalSize(width, height))
			r.FB = fb

		case uv.KeyPressEvent:
			if aiming {
				if ev.MatchString("escape") {
					aiming = false
					s.light = savedLight
				}
				return
			}
			if r := []rune(ev.Text); len(r) == 1 {
				if k, ok := shader.KindForKey(r[0]); ok {
					s.setShader(k)
					return
				}
			}
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
				cancel()
			case ev.MatchString("r"):
				s.camera.Reset()
			case ev.MatchString("w", "up"):
				s.camera.Orbit(0, orbitStep)
			case ev.MatchString("s", "down"):
				s.camera.Orbit(0, -orbitStep)
			case ev.MatchString("a", "left"):
				s.camera.Orbit(-orbitStep, 0)
			case ev.MatchString("d", "right"):
				s.camera.Orbit(orbitStep, 0)
			case ev.MatchString("+", "="):
				s.camera.Zoom(-zoomStep)
			case ev.MatchString("-", "_"):
				s.camera.Zoom(zoomStep)
			case ev.MatchString("space"):
				s.spin.Toggle()
			case ev.MatchString("x"):
				s.wire = !s.wire
			case ev.MatchString("l"):
				aiming = true
				savedLight = s.light
				pendingLight = s.light
			case ev.MatchString("p"):
				path := fmt.Sprintf("planets-%s-%d.png", s.kind, time.Now().Unix())
				if err := fb.SavePNG(path); err != nil {
					log.Warn("snapshot failed", zap.Error(err))
				} else {
					log.Info("snapshot written", zap.String("path", path))
				}
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				hud.Visible = !hud.Visible
			}

		case uv.MouseClickEvent:
			if aiming {
				s.light = pendingLight
				aiming = false
				return
			}
			mouseDown = true
			lastMouseX, lastMouseY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if aiming {
				pendingLight = s.lightFromScreen(ev.X, ev.Y, width, height)
				s.light = pendingLight
				return
			}
			if mouseDown {
				dx := ev.X - lastMouseX
				dy := ev.Y - lastMouseY
				s.camera.Orbit(float64(dx)*dragScale, float64(dy)*dragScale)
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				s.camera.Zoom(-zoomStep)
			case uv.MouseWheelDown:
				s.camera.Zoom(zoomStep)
			}
		}
	}

	targetDuration := time.Second / time.Duration(cfg.Render.FPS)
	start := time.Now()

	for {
		// Drain pending input before drawing.
	drain:
		for {
			select {
			case ev := <-events:
				handle(ev)
			case c := <-reloads:
				s.apply(c)
				r.Workers = c.WorkerCount()
				targetDuration = time.Second / time.Duration(c.Render.FPS)
				log.Info("config reloaded", zap.String("shader", c.Scene.Shader))
			default:
				break drain
			}
		}
		if ctx.Err() != nil {
			return nil
		}

		now := time.Now()
		s.camera.Update()
		s.spin.Update()

		stats, err := s.draw(ctx, r, now.Sub(start).Seconds())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		fb.Draw(term, image.Rect(0, 0, width, height))
		hud.Tick(stats)
		hud.Render(term, width, height, s, aiming)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
