package playground

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/assets"
	"github.com/Faultbox/terrain-playground/internal/config"
	"github.com/Faultbox/terrain-playground/internal/engine/camera"
	"github.com/Faultbox/terrain-playground/internal/engine/debug"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/input"
	"github.com/Faultbox/terrain-playground/internal/engine/scene"
	"github.com/Faultbox/terrain-playground/internal/engine/scene/shaders"
	"github.com/Faultbox/terrain-playground/internal/playground/controls"
)

// CuePlayer plays a named, preloaded sound.
type CuePlayer interface {
	Play(name string) error
}

// PixelReader reads back the last presented surface image as bottom-up
// RGBA8 rows.
type PixelReader interface {
	ReadPixels() ([]byte, int, int, error)
}

// Deps are the frontend-provided collaborators of a Runner. Pixels and
// Audio may be nil.
type Deps struct {
	Device  gpu.Device
	Surface gpu.Surface
	Pixels  PixelReader
	Audio   CuePlayer
	Logger  *zap.Logger
	// KeyboardControls binds arrows, PgUp/PgDn, +/-, W and Escape for
	// frontends without a panel.
	KeyboardControls bool
}

// Runner owns the controls and the active scene, and renders one frame
// per redraw.
type Runner struct {
	cfg *config.Config
	log *zap.Logger

	dev     gpu.Device
	surface gpu.Surface
	pixels  PixelReader
	audio   CuePlayer
	keys    bool

	dispatcher *scene.Dispatcher
	controls   controls.Controls
	timer      debug.FrameTimer
	shots      *debug.ScreenshotCapture
	watcher    *assets.Watcher
	models     chan string

	width, height int
	dirty         bool
	redraw        bool
	overlay       bool
	screenshot    bool
	quit          bool
	lastShot      string
}

// New configures the surface and builds the initial scene. Any error is
// fatal to the frontend.
func New(cfg *config.Config, d Deps) (*Runner, error) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	r := &Runner{
		cfg:      cfg,
		log:      d.Logger,
		dev:      d.Device,
		surface:  d.Surface,
		pixels:   d.Pixels,
		audio:    d.Audio,
		keys:     d.KeyboardControls,
		controls: controls.FromConfig(cfg.Controls),
		models:   make(chan string, 1),
		width:    cfg.Graphics.Width,
		height:   cfg.Graphics.Height,
		overlay:  cfg.Debug.Overlay,
	}

	format := gpu.PreferredFormat(d.Surface.Formats())
	samples := gpu.PickSampleCount(d.Device, format, cfg.Graphics.MSAA)
	sc := gpu.SurfaceConfig{Width: r.width, Height: r.height, Format: format, VSync: cfg.Graphics.VSync}
	if err := d.Surface.Configure(d.Device, sc); err != nil {
		return nil, fmt.Errorf("configure surface: %w", err)
	}

	opts := scene.Options{
		Logger:  r.log.Named("scene"),
		Shaders: shaders.Embedded(),
		Terrain: TerrainOptions(cfg.Terrain),
	}
	if dir := cfg.Debug.ShaderDir; dir != "" {
		set, err := shaders.Load(dir)
		if err != nil {
			r.log.Error("custom shaders unreadable, using embedded", zap.String("dir", dir), zap.Error(err))
		} else {
			opts.Shaders = set
		}
		if r.watcher, err = assets.Watch(dir, shaders.Extensions(), r.log); err != nil {
			r.log.Warn("shader hot reload disabled", zap.Error(err))
		}
	}
	if path := cfg.Scene.Model; path != "" {
		m, err := assets.LoadModelFile(path)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("model %s: %w", path, err)
		}
		opts.Model = m
	}

	r.dispatcher = scene.NewDispatcher(d.Device, sc, samples, opts)

	kind, err := scene.ParseKind(cfg.Scene.Initial)
	if err != nil {
		r.Close()
		return nil, err
	}
	if err := r.dispatcher.Switch(kind); err != nil {
		r.Close()
		return nil, fmt.Errorf("initial scene: %w", err)
	}

	if dir := cfg.Debug.ScreenshotDir; dir != "" {
		if r.shots, err = debug.NewScreenshotCapture(dir, "playground", cfg.Debug.ScreenshotFormat); err != nil {
			r.log.Warn("screenshots disabled", zap.Error(err))
		}
	}

	r.log.Info("playground ready",
		zap.Stringer("scene", kind),
		zap.Int("samples", samples),
		zap.Stringer("format", format),
		zap.Bool("wireframe", d.Device.Features().Has(gpu.FeaturePolygonModeLine)))
	return r, nil
}

// HandleEvent applies one input event. Only scene construction failures
// are returned; they are fatal.
func (r *Runner) HandleEvent(e input.Event) error {
	switch e.Type {
	case input.EventQuit:
		r.quit = true
	case input.EventWindowResize:
		r.Resize(e.Width, e.Height)
	case input.EventKeyDown:
		return r.handleKey(e)
	}
	return nil
}

// HandleBatch applies a batch of events in order, then the caller redraws
// once.
func (r *Runner) HandleBatch(b *input.Batch) error {
	for _, e := range b.Events() {
		if err := r.HandleEvent(e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) handleKey(e input.Event) error {
	switch e.Key {
	case input.Key1:
		if !e.Repeat {
			return r.SwitchScene(scene.KindObj)
		}
	case input.Key2:
		if !e.Repeat {
			return r.SwitchScene(scene.KindTerrain)
		}
	case input.KeyF12:
		if !e.Repeat {
			r.overlay = !r.overlay
		}
	case input.KeyF11:
		if !e.Repeat {
			r.screenshot = true
		}
	}
	if r.keys {
		r.handleControlKey(e)
	}
	return nil
}

func (r *Runner) handleControlKey(e input.Event) {
	c := r.controls
	switch e.Key {
	case input.KeyEscape:
		r.quit = true
	case input.KeyUp:
		r.Apply(c.Rotate(0, 1))
	case input.KeyDown:
		r.Apply(c.Rotate(0, -1))
	case input.KeyPageUp:
		r.Apply(c.Rotate(1, 1))
	case input.KeyPageDown:
		r.Apply(c.Rotate(1, -1))
	case input.KeyRight:
		r.Apply(c.Rotate(2, 1))
	case input.KeyLeft:
		r.Apply(c.Rotate(2, -1))
	case input.KeyPlus:
		r.Apply(c.ZoomBy(1))
	case input.KeyMinus:
		r.Apply(c.ZoomBy(-1))
	case input.KeyW:
		if !e.Repeat {
			r.Apply(c.ToggleWireframe())
		}
	}
}

// Apply folds control messages into the state read by the next frame.
func (r *Runner) Apply(msgs ...controls.Message) {
	r.controls = r.controls.Apply(msgs...)
}

// Resize marks the surface dirty. It is reconfigured at the next frame.
func (r *Runner) Resize(width, height int) {
	// An unsized framebuffer reports negative sizes; treat it as minimised.
	width, height = max(width, 0), max(height, 0)
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.dirty = true
}

// SwitchScene releases the active scene and builds kind. A failure leaves
// no scene and is fatal.
func (r *Runner) SwitchScene(kind scene.Kind) error {
	if err := r.dispatcher.Switch(kind); err != nil {
		return fmt.Errorf("switch to %s: %w", kind, err)
	}
	r.cue()
	return nil
}

// RequestModel queues an OBJ file to show at the next frame. It may be
// called from any goroutine; a request already queued is replaced.
func (r *Runner) RequestModel(path string) {
	for {
		select {
		case r.models <- path:
			return
		default:
		}
		select {
		case <-r.models:
		default:
		}
	}
}

// Frame handles pending reloads and resizes, then renders and presents.
// dtMs is the time since the previous frame. A transient surface failure
// skips the frame and sets NeedsRedraw; other errors are fatal.
func (r *Runner) Frame(dtMs float64) error {
	if err := r.pollReload(); err != nil {
		return err
	}
	if err := r.pollModel(); err != nil {
		return err
	}
	if r.dirty {
		if err := r.reconfigure(); err != nil {
			return err
		}
	}

	st, err := r.surface.CurrentTexture()
	if errors.Is(err, gpu.ErrSurfaceUnavailable) {
		r.redraw = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}

	target := st.Texture()
	aspect := camera.Aspect(target.Width(), target.Height())
	r.dispatcher.Render(r.controls.View(), target, aspect, r.dev.Queue())
	st.Present()

	if r.screenshot {
		r.screenshot = false
		r.takeScreenshot()
	}
	r.timer.Update(dtMs)
	return nil
}

func (r *Runner) reconfigure() error {
	r.dirty = false
	sc := r.surface.Config()
	sc.Width, sc.Height = r.width, r.height
	if err := r.surface.Configure(r.dev, sc); err != nil {
		return fmt.Errorf("reconfigure surface: %w", err)
	}
	if err := r.dispatcher.Resize(r.width, r.height, sc); err != nil {
		return err
	}
	r.log.Debug("surface resized", zap.Int("width", r.width), zap.Int("height", r.height))
	return nil
}

func (r *Runner) pollReload() error {
	if r.watcher == nil {
		return nil
	}
	select {
	case name := <-r.watcher.Changes():
		r.log.Info("shader changed", zap.String("file", name))
		return r.ReloadShaders()
	default:
		return nil
	}
}

// ReloadShaders reads the shader directory again and rebuilds the active
// scene. Shaders that fail to build are replaced by the embedded ones.
func (r *Runner) ReloadShaders() error {
	dir := r.cfg.Debug.ShaderDir
	if dir == "" {
		return nil
	}
	set, err := shaders.Load(dir)
	if err != nil {
		r.log.Error("shader reload failed", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	opts := r.dispatcher.Options()
	opts.Shaders = set
	r.dispatcher.SetOptions(opts)
	if err := r.dispatcher.Rebuild(); err != nil {
		return fmt.Errorf("rebuild after shader reload: %w", err)
	}
	return nil
}

func (r *Runner) pollModel() error {
	select {
	case path := <-r.models:
		return r.loadModel(path)
	default:
		return nil
	}
}

func (r *Runner) loadModel(path string) error {
	m, err := assets.LoadModelFile(path)
	if err != nil {
		r.log.Error("model load failed, keeping current scene", zap.String("path", path), zap.Error(err))
		return nil
	}
	opts := r.dispatcher.Options()
	opts.Model = m
	r.dispatcher.SetOptions(opts)
	r.log.Info("model loaded", zap.String("path", path))
	return r.SwitchScene(scene.KindObj)
}

func (r *Runner) takeScreenshot() {
	if r.shots == nil || r.pixels == nil {
		r.log.Warn("screenshot unavailable")
		return
	}
	pix, w, h, err := r.pixels.ReadPixels()
	if err != nil {
		r.log.Error("screenshot readback failed", zap.Error(err))
		return
	}
	path, err := r.shots.CaptureFromPixels(pix, w, h)
	if err != nil {
		r.log.Error("screenshot failed", zap.Error(err))
		return
	}
	r.lastShot = path
	r.log.Info("screenshot saved", zap.String("path", path))
	r.cue()
}

func (r *Runner) cue() {
	if r.audio == nil {
		return
	}
	if err := r.audio.Play(assets.CueSound); err != nil {
		r.log.Debug("cue not played", zap.Error(err))
	}
}

// NeedsRedraw reports, once, that the last frame was skipped.
func (r *Runner) NeedsRedraw() bool {
	v := r.redraw
	r.redraw = false
	return v
}

// ShouldQuit reports whether a quit was requested.
func (r *Runner) ShouldQuit() bool { return r.quit }

// Controls returns the current control state.
func (r *Runner) Controls() controls.Controls { return r.controls }

// OverlayVisible reports whether the debug overlay is on.
func (r *Runner) OverlayVisible() bool { return r.overlay }

// LastScreenshot returns the path of the last screenshot written.
func (r *Runner) LastScreenshot() string { return r.lastShot }

// Scene returns the active scene kind.
func (r *Runner) Scene() scene.Kind { return r.dispatcher.Kind() }

// Status returns the overlay numbers.
func (r *Runner) Status() Status {
	return Status{
		FPS:       r.timer.FPS(),
		FrameTime: r.timer.FrameTime(),
		Scene:     r.dispatcher.Stats(),
	}
}

// Close releases the scene and stops the shader watcher.
func (r *Runner) Close() {
	if r.watcher != nil {
		if err := r.watcher.Close(); err != nil {
			r.log.Warn("closing shader watcher", zap.Error(err))
		}
		r.watcher = nil
	}
	if r.dispatcher != nil {
		r.dispatcher.Release()
	}
}
