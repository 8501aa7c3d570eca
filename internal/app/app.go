// Package app implements the globe viewer main loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/internal/config"
	"github.com/Faultbox/midgard-globe/internal/engine/camera"
	"github.com/Faultbox/midgard-globe/internal/engine/debug"
	"github.com/Faultbox/midgard-globe/internal/engine/input"
	"github.com/Faultbox/midgard-globe/internal/engine/renderer"
	"github.com/Faultbox/midgard-globe/internal/engine/window"
	"github.com/Faultbox/midgard-globe/internal/globe"
	"github.com/Faultbox/midgard-globe/internal/palette"
	"github.com/Faultbox/midgard-globe/internal/scene"
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	cat     *catalog.Catalog
	log     *zap.Logger
	palette palette.Palette

	// status is the latest table on disk, used for completion colouring and
	// progress. Selection keeps using cat.
	status   *catalog.Catalog
	reloaded chan *catalog.Catalog

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	ctl      *globe.Controller
	shots    *debug.Screenshots

	captureNext bool

	loadErr chan error
	cancel  context.CancelFunc
	running bool
}

// New creates the window, renderer and controller and starts building the
// scene in the background.
func New(cfg *config.Config, cat *catalog.Catalog, log *zap.Logger) (*App, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	a := &App{
		cfg:      cfg,
		cat:      cat,
		log:      log,
		palette:  pal,
		status:   cat,
		reloaded: make(chan *catalog.Catalog, 1),
		loadErr:  make(chan error, 1),
	}

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		Background: palette.MustHex(palette.DarkState),
	}, log.Named("renderer"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := a.window.Size()
	a.input = input.New(w, h)

	cam := camera.NewGlobeCamera(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far,
		cfg.Camera.BaseDistance*float32(cfg.Controller.DefaultZoom))
	cam.Resize(w, h)

	opts := scene.DefaultOptions()
	opts.Background = cfg.Data.Background
	a.scene = scene.New(cam, opts, log.Named("scene"))

	a.shots = debug.NewScreenshots(cfg.Data.ScreenshotDir, "globe")

	a.ctl = globe.New(cfg.Globe(), cat, a.scene, a.window,
		globe.WithLogger(log.Named("globe")),
		globe.WithSelectionListener(a.onSelectionChange))

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go func() {
		a.loadErr <- a.scene.Load(ctx, cat.All())
	}()
	if cfg.Data.Watch {
		a.watch(ctx)
	}

	a.updateTitle("")
	log.Info("viewer initialized", zap.Int("entities", cat.Len()))
	return a, nil
}

// Run runs the main loop until the window closes or a fatal error occurs.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Window.FPSLimit)
	}

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.dispatch()

		// 2. Pick up the background scene build
		select {
		case err := <-a.loadErr:
			if err != nil {
				return fmt.Errorf("loading scene: %w", err)
			}
		default:
		}
		if a.scene.Loaded() && !a.renderer.Uploaded() {
			a.renderer.Upload(a.scene.Geometry())
		}
		select {
		case c := <-a.reloaded:
			a.status = c
			a.updateTitle(a.ctl.Selected())
			a.log.Info("entity table reloaded", zap.Int("completed", c.Progress().Completed))
		default:
		}

		// 3. Animate
		a.ctl.Update(dt)

		// 4. Render and present
		a.render()
		if a.captureNext {
			a.captureNext = false
			a.capture()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")
	if a.cancel != nil {
		a.cancel()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// dispatch routes this frame's events to the controller.
func (a *App) dispatch() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.scene.Camera().Resize(e.Width, e.Height)
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventKeyDown:
			a.handleKey(e.Key)
		case input.EventPointerDown:
			a.ctl.PointerDown(e.Pointer)
		case input.EventPointerMove:
			a.ctl.PointerMove(e.Pointer)
		case input.EventPointerUp:
			a.ctl.PointerUp(e.Pointer)
		case input.EventWheel:
			a.ctl.Wheel(e.Wheel)
		case input.EventTouchDown:
			a.ctl.TouchDown(e.Touch)
		case input.EventTouchMove:
			a.ctl.TouchMove(e.Touch)
		case input.EventTouchUp:
			a.ctl.TouchUp(e.Touch)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		if a.ctl.Selected() != "" {
			a.ctl.ClearSelection()
			return
		}
		a.running = false
	case sdl.SCANCODE_TAB:
		if next, ok := a.cat.Next(a.ctl.Selected()); ok {
			a.ctl.Select(next.ID)
		}
	case sdl.SCANCODE_F12:
		a.captureNext = true
	}
}

// capture saves the frame just drawn, before it is presented.
func (a *App) capture() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.Save(pixels, w, h, a.ctl.Selected())
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// watch follows the entity table on disk. Only the latest reload is kept
// when the main loop falls behind.
func (a *App) watch(ctx context.Context) {
	w, err := catalog.NewWatcher(a.cfg.Data.Entities)
	if err != nil {
		a.log.Warn("entity table will not be reloaded", zap.Error(err))
		return
	}
	go func() {
		_ = w.Run(ctx, func(c *catalog.Catalog) {
			select {
			case <-a.reloaded:
			default:
			}
			a.reloaded <- c
		}, func(err error) {
			a.log.Warn("reloading entity table", zap.Error(err))
		})
	}()
}

func (a *App) render() {
	view, proj := a.scene.ViewProjection()
	model := a.scene.Model()
	selected := a.ctl.Selected()

	var light mgl32.Vec3
	if a.cfg.Camera.SunLight {
		sun := model.Mul4x1(scene.SunDirection(time.Now()).Vec4(0)).Vec3()
		light = sun.Mul(-1)
	}

	a.renderer.Draw(renderer.Frame{
		View:       view,
		Projection: proj,
		Model:      model,
		LightDir:   light,
		Color: func(name string) mgl32.Vec3 {
			role := palette.Classify(name, selected, a.cfg.Data.Background, a.completed)
			return a.palette.Colour(role)
		},
	})
}

func (a *App) completed(id string) bool {
	e, ok := a.status.Get(id)
	return ok && e.Completed
}

func (a *App) onSelectionChange(id string) {
	a.updateTitle(id)
}

func (a *App) updateTitle(id string) {
	p := a.status.Progress()
	title := fmt.Sprintf("%s (%d/%d, %d%%)", a.cfg.Window.Title, p.Completed, p.Total, p.Percent)
	if e, ok := a.cat.Get(id); ok {
		title = e.DisplayName() + " - " + title
	}
	if a.window != nil {
		a.window.SetTitle(title)
	}
}
