package app

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/catalog"
	"github.com/Faultbox/orrery/internal/celestial"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/debug"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/stats"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/logger"
)

// Title is the window title.
const Title = "Orrery"

// MaxFrameDelta caps the animation step after a stall (window drag, breakpoint).
const MaxFrameDelta = 0.1

// App is the viewer: window, renderer and the scene context it draws.
type App struct {
	cfg *config.Config

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	assets      *assets.Manager
	stats       *stats.Stats
	screenshots *debug.ScreenshotCapture

	scene  *SceneContext
	loader *texture.Loader
	sky    *skyboxFaces

	// Texture paths that failed to load, retried after a catalog reload
	failedTextures map[string]bool

	catalogUpdates      <-chan []catalog.Entry
	screenshotRequested bool
}

// New creates the window and renderer and populates the scene.
// Window failures wrap window.ErrSceneTargetUnavailable.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("catalog", cfg.Scene.CatalogPath),
	)

	entries, err := loadCatalog(cfg.Scene.CatalogPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:         cfg,
		input:       input.New(),
		assets:      assets.NewManager(),
		stats:       stats.New(),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "orrery"),

		failedTextures: make(map[string]bool),
	}

	a.scene, err = NewSceneContext(cfg, entries, newRand(cfg.Scene.Seed))
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	if err := a.assets.AddDir(cfg.Assets.Root); err != nil {
		// Everything renders untextured
		logger.Warn("asset root unavailable", zap.String("root", cfg.Assets.Root), zap.Error(err))
	}

	// Window first: the renderer needs its GL context
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
		HighDPI:    cfg.Graphics.HighDPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: lighting.Black,
		MSAA:       a.window.MSAA() > 0,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.scene.Resize(a.window.GetSize())

	logger.Info("viewer initialized successfully")
	return a, nil
}

// loadCatalog returns the built-in catalog when path is empty.
func loadCatalog(path string) ([]catalog.Entry, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	entries, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return entries, nil
}

// newRand returns a seeded source, or nil to use the global one.
func newRand(seed uint64) celestial.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Run drives the render loop until the window closes, Escape is pressed or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.loader = texture.NewLoader(ctx, a.assets, a.cfg.Assets.LoadWorkers, a.cfg.Assets.MaxTextureDim)
	defer a.loader.Close()

	if bg := a.scene.Scene.Background; bg != nil {
		a.sky = newSkyboxFaces(bg.Faces)
		for _, face := range bg.Faces {
			a.loader.Request(face)
		}
	}
	a.requestTextures()

	if a.cfg.Scene.WatchCatalog && a.cfg.Scene.CatalogPath != "" {
		updates, err := catalog.Watch(ctx, a.cfg.Scene.CatalogPath)
		if err != nil {
			logger.Warn("catalog watch disabled", zap.Error(err))
		} else {
			a.catalogUpdates = updates
		}
	}

	logger.Info("starting render loop")

	lastTime := time.Now()
	for {
		if ctx.Err() != nil {
			logger.Info("render loop cancelled")
			return nil
		}

		a.stats.Begin()

		now := time.Now()
		dt := clampDelta(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			return nil
		}
		if quit := a.handleEvents(); quit {
			return nil
		}

		// 2. Pick up finished background work
		a.drainTextures()
		a.drainCatalog()

		// 3. Update scene state before it is drawn
		a.scene.Update(dt)

		// 4. Render
		a.renderer.Render(a.scene.Scene, a.scene.Camera)
		if a.screenshotRequested {
			a.screenshotRequested = false
			a.captureScreenshot()
		}

		// 5. Present
		a.window.SwapBuffers()

		if a.stats.End() {
			a.reportStats()
		}
	}
}

// clampDelta keeps the frame delta in [0, MaxFrameDelta].
func clampDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}

// handleEvents applies this frame's input. Returns true to quit.
func (a *App) handleEvents() bool {
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			dw, dh := a.window.DrawableSize()
			a.renderer.Resize(dw, dh)
			a.scene.Resize(ev.Width, ev.Height)

		case input.EventMouseMove:
			w, h := a.window.GetSize()
			a.scene.PointerMove(float32(ev.MouseX), float32(ev.MouseY), float32(w), float32(h))
			dx, dy := float32(ev.DeltaX), float32(ev.DeltaY)
			switch {
			case a.input.IsButtonDown(sdl.BUTTON_LEFT):
				a.scene.Controls.HandleDrag(dx, dy)
			case a.input.IsButtonDown(sdl.BUTTON_RIGHT):
				a.scene.Pan(dx, dy)
			}

		case input.EventMouseLeave:
			a.scene.PointerLeave()

		case input.EventMouseDown:
			if ev.Button == sdl.BUTTON_LEFT {
				a.scene.PointerDown()
			}

		case input.EventMouseWheel:
			a.scene.Controls.HandleZoom(float32(ev.DeltaY))

		case input.EventKeyDown:
			if ev.Repeat {
				continue
			}
			switch ev.Key {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_F12:
				a.screenshotRequested = true
			case sdl.SCANCODE_R:
				a.scene.Controls.Reset()
				logger.Debug("controls reset")
			}
		}
	}
	return false
}

func (a *App) requestTextures() {
	for _, path := range a.scene.Textures() {
		a.loader.Request(path)
	}
}

// drainTextures uploads decoded textures. Bodies render untextured until
// their texture arrives or if it failed.
func (a *App) drainTextures() {
	for _, res := range a.loader.Poll() {
		if a.sky != nil && a.sky.accept(res) {
			if faces, ok := a.sky.complete(); ok {
				if err := a.renderer.SetSkyboxFaces(faces); err != nil {
					logger.Warn("skybox unavailable, using clear color", zap.Error(err))
				}
				a.sky = nil
			} else if a.sky.failed {
				logger.Warn("skybox unavailable, using clear color", zap.String("face", res.Path))
				a.sky = nil
			}
			continue
		}
		if res.Err != nil {
			a.failedTextures[res.Path] = true
			continue
		}
		delete(a.failedTextures, res.Path)
		a.renderer.SetTexture(res.Path, res.Image)
	}
}

// drainCatalog rebuilds the bodies when the watched catalog changed.
func (a *App) drainCatalog() {
	if a.catalogUpdates == nil {
		return
	}
	select {
	case entries, ok := <-a.catalogUpdates:
		if !ok {
			a.catalogUpdates = nil
			return
		}
		if err := a.scene.Reload(entries); err != nil {
			logger.Warn("catalog rejected, keeping current bodies", zap.Error(err))
			return
		}
		// The edit may have fixed a texture path or the file may exist now
		for path := range a.failedTextures {
			a.loader.Forget(path)
			delete(a.failedTextures, path)
		}
		a.requestTextures()
	default:
	}
}

func (a *App) captureScreenshot() {
	pixels, w, h, err := a.renderer.Capture(a.scene.Scene, a.scene.Camera, a.cfg.Debug.ScreenshotScale)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *App) reportStats() {
	snap, ok := a.stats.Snapshot()
	if !ok {
		return
	}
	hits, misses := a.assets.Stats()
	logger.Debug("frame stats",
		zap.Int("fps", snap.FPS),
		zap.Duration("frame_time", snap.FrameTime),
		zap.Duration("max_frame", snap.MaxFrame),
		zap.Uint64("frames", snap.Frames),
		zap.Int("asset_cache_hits", hits),
		zap.Int("asset_cache_misses", misses),
	)
	if a.cfg.Debug.ShowStats {
		a.window.SetTitle(fmt.Sprintf("%s - %s", Title, snap))
	}
}

// Close releases the renderer and window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.assets.Close()
}

// skyboxFaces collects the six cube faces as they finish decoding.
type skyboxFaces struct {
	paths  [6]string
	images [6]*image.RGBA
	failed bool
}

func newSkyboxFaces(paths [6]string) *skyboxFaces {
	return &skyboxFaces{paths: paths}
}

// accept stores res if it is one of the faces. Returns false for other paths.
func (s *skyboxFaces) accept(res texture.Result) bool {
	for i, p := range s.paths {
		if p != res.Path {
			continue
		}
		if res.Err != nil {
			s.failed = true
		} else {
			s.images[i] = res.Image
		}
		return true
	}
	return false
}

// complete returns the faces once all six decoded.
func (s *skyboxFaces) complete() ([6]*image.RGBA, bool) {
	if s.failed {
		return s.images, false
	}
	for _, img := range s.images {
		if img == nil {
			return s.images, false
		}
	}
	return s.images, true
}
