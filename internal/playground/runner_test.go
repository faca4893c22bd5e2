package playground

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrain-playground/internal/assets"
	"github.com/Faultbox/terrain-playground/internal/config"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu/gputest"
	"github.com/Faultbox/terrain-playground/internal/engine/input"
	"github.com/Faultbox/terrain-playground/internal/engine/scene"
)

type fakeAudio struct{ played []string }

func (a *fakeAudio) Play(name string) error {
	a.played = append(a.played, name)
	return nil
}

type fakePixels struct{ err error }

func (p fakePixels) ReadPixels() ([]byte, int, int, error) {
	if p.err != nil {
		return nil, 0, 0, p.err
	}
	return make([]byte, 4*4*3), 4, 3, nil
}

type harness struct {
	r       *Runner
	dev     *gputest.Device
	surface *gputest.Surface
	audio   *fakeAudio
	cfg     *config.Config
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Graphics.Width, cfg.Graphics.Height = 320, 200
	cfg.Terrain.GridRadius = 1
	cfg.Debug.ScreenshotDir = t.TempDir()
	return cfg
}

func newHarness(t *testing.T, cfg *config.Config, keys bool) *harness {
	t.Helper()
	h := &harness{
		dev:   gputest.NewDevice(gpu.FeaturePolygonModeLine),
		audio: &fakeAudio{},
		cfg:   cfg,
	}
	h.surface = gputest.NewSurface(h.dev)
	r, err := New(cfg, Deps{
		Device:           h.dev,
		Surface:          h.surface,
		Pixels:           fakePixels{},
		Audio:            h.audio,
		KeyboardControls: keys,
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	h.r = r
	return h
}

func TestNewBuildsInitialScene(t *testing.T) {
	h := newHarness(t, testConfig(t), false)

	assert.Equal(t, scene.KindTerrain, h.r.Scene())
	assert.Equal(t, 9, h.r.Status().Scene.Chunks)
	assert.Equal(t, 4, h.r.Status().Scene.SampleCount)
	assert.Equal(t, gpu.FormatRGBA8UnormSRGB, h.surface.Config().Format)
	assert.Equal(t, 320, h.surface.Config().Width)
}

func TestNewRejectsUnknownScene(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Initial = "water"
	dev := gputest.NewDevice(0)
	_, err := New(cfg, Deps{Device: dev, Surface: gputest.NewSurface(dev)})
	assert.Error(t, err)
}

func TestNewFailsWhenSceneCannotBuild(t *testing.T) {
	dev := gputest.NewDevice(0)
	dev.FailPipelines = true
	_, err := New(testConfig(t), Deps{Device: dev, Surface: gputest.NewSurface(dev)})
	assert.Error(t, err)
}

func TestFrameRendersAndPresents(t *testing.T) {
	h := newHarness(t, testConfig(t), false)

	require.NoError(t, h.r.Frame(16))
	assert.Equal(t, 1, h.surface.Presented)
	assert.Len(t, h.dev.Submitted(), 1)
	assert.Len(t, gputest.Draws(h.dev.LastFrame()), 9)
	assert.False(t, h.r.NeedsRedraw())
}

func TestSceneKeys(t *testing.T) {
	h := newHarness(t, testConfig(t), false)

	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.Key1)))
	assert.Equal(t, scene.KindObj, h.r.Scene())
	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.Key2)))
	assert.Equal(t, scene.KindTerrain, h.r.Scene())
	assert.Equal(t, []string{assets.CueSound, assets.CueSound}, h.audio.played)

	// Held keys do not rebuild.
	require.NoError(t, h.r.HandleEvent(input.Event{Type: input.EventKeyDown, Key: input.Key1, Repeat: true}))
	assert.Equal(t, scene.KindTerrain, h.r.Scene())
}

func TestSwitchFailureIsReturned(t *testing.T) {
	h := newHarness(t, testConfig(t), false)
	h.dev.FailPipelines = true

	err := h.r.HandleEvent(input.KeyPress(input.Key1))
	assert.Error(t, err)
	assert.Equal(t, scene.KindNone, h.r.Scene())
}

func TestTransientSurfaceFailureRequestsRedraw(t *testing.T) {
	h := newHarness(t, testConfig(t), false)
	h.surface.Unavailable = true

	require.NoError(t, h.r.Frame(16))
	assert.True(t, h.r.NeedsRedraw())
	assert.False(t, h.r.NeedsRedraw(), "reported once")
	assert.Empty(t, h.dev.Submitted())

	h.surface.Unavailable = false
	require.NoError(t, h.r.Frame(16))
	assert.Len(t, h.dev.Submitted(), 1)
}

func TestOutOfMemoryIsFatal(t *testing.T) {
	h := newHarness(t, testConfig(t), false)
	h.surface.OutOfMemory = true

	err := h.r.Frame(16)
	assert.True(t, errors.Is(err, gpu.ErrOutOfMemory))
}

func TestResizeIsAppliedAtNextFrame(t *testing.T) {
	h := newHarness(t, testConfig(t), false)

	require.NoError(t, h.r.HandleEvent(input.Resize(640, 480)))
	assert.Equal(t, 320, h.surface.Config().Width, "deferred until redraw")

	require.NoError(t, h.r.Frame(16))
	assert.Equal(t, 640, h.surface.Config().Width)
	st := h.r.Status().Scene
	assert.Equal(t, 640, st.Width)
	assert.Equal(t, 480, st.Height)
}

func TestMinimisedWindowSkipsFrames(t *testing.T) {
	h := newHarness(t, testConfig(t), false)
	live := h.dev.Live()

	require.NoError(t, h.r.HandleEvent(input.Resize(0, 0)))
	assert.NotPanics(t, func() { require.NoError(t, h.r.Frame(16)) })
	assert.True(t, h.r.NeedsRedraw())
	assert.Empty(t, h.dev.Submitted())
	assert.Equal(t, live.Textures-1, h.dev.Live().Textures, "only the surface texture is gone")

	require.NoError(t, h.r.HandleEvent(input.Resize(320, 200)))
	require.NoError(t, h.r.Frame(16))
	assert.Len(t, h.dev.Submitted(), 1)
	assert.Equal(t, live, h.dev.Live())
}

func TestUnsizedFramebufferStartsFromConfig(t *testing.T) {
	h := newHarness(t, testConfig(t), false)
	assert.Equal(t, 320, h.surface.Config().Width)

	// A window without a framebuffer yet reports -1 x -1.
	h.r.Resize(-1, -1)
	require.NoError(t, h.r.Frame(16))
	assert.Empty(t, h.dev.Submitted())
	assert.True(t, h.r.NeedsRedraw())

	h.r.Resize(640, 480)
	require.NoError(t, h.r.Frame(16))
	assert.Len(t, h.dev.Submitted(), 1)
	assert.Equal(t, 640, h.surface.Config().Width)
}

func TestOverlayToggle(t *testing.T) {
	h := newHarness(t, testConfig(t), false)
	assert.False(t, h.r.OverlayVisible())
	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.KeyF12)))
	assert.True(t, h.r.OverlayVisible())
	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.KeyF12)))
	assert.False(t, h.r.OverlayVisible())
}

func TestScreenshot(t *testing.T) {
	cfg := testConfig(t)
	h := newHarness(t, cfg, false)

	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.KeyF11)))
	require.NoError(t, h.r.Frame(16))

	path := h.r.LastScreenshot()
	require.NotEmpty(t, path)
	assert.Equal(t, cfg.Debug.ScreenshotDir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".png"))
	_, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{assets.CueSound}, h.audio.played)

	// One key press, one file.
	require.NoError(t, h.r.Frame(16))
	entries, err := os.ReadDir(cfg.Debug.ScreenshotDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestScreenshotReadbackFailureIsNotFatal(t *testing.T) {
	dev := gputest.NewDevice(0)
	r, err := New(testConfig(t), Deps{Device: dev, Surface: gputest.NewSurface(dev), Pixels: fakePixels{err: errors.New("no context")}})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.HandleEvent(input.KeyPress(input.KeyF11)))
	require.NoError(t, r.Frame(16))
	assert.Empty(t, r.LastScreenshot())
}

func TestKeyboardControls(t *testing.T) {
	h := newHarness(t, testConfig(t), true)

	batch := input.NewBatch()
	batch.Add(input.KeyPress(input.KeyRight))
	batch.Add(input.KeyPress(input.KeyRight))
	batch.Add(input.KeyPress(input.KeyUp))
	batch.Add(input.KeyPress(input.KeyPlus))
	batch.Add(input.KeyPress(input.KeyW))
	require.NoError(t, h.r.HandleBatch(batch))

	c := h.r.Controls()
	assert.InDelta(t, 0.02, c.Camera.Z(), 1e-6)
	assert.InDelta(t, 0.01, c.Camera.X(), 1e-6)
	assert.InDelta(t, 1.05, c.Zoom, 1e-6)
	assert.True(t, c.Wireframe)

	require.NoError(t, h.r.Frame(16))
	assert.Len(t, gputest.Draws(h.dev.LastFrame()), 18, "fill and wireframe passes")

	assert.False(t, h.r.ShouldQuit())
	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.KeyEscape)))
	assert.True(t, h.r.ShouldQuit())
}

func TestControlKeysIgnoredWithPanel(t *testing.T) {
	h := newHarness(t, testConfig(t), false)

	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.KeyW)))
	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.KeyEscape)))
	assert.False(t, h.r.Controls().Wireframe)
	assert.False(t, h.r.ShouldQuit())

	require.NoError(t, h.r.HandleEvent(input.Event{Type: input.EventQuit}))
	assert.True(t, h.r.ShouldQuit())
}

func TestRequestModel(t *testing.T) {
	h := newHarness(t, testConfig(t), false)

	dir := t.TempDir()
	good := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(good, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))
	bad := filepath.Join(dir, "empty.obj")
	require.NoError(t, os.WriteFile(bad, []byte("# nothing\n"), 0o644))

	h.r.RequestModel(bad)
	require.NoError(t, h.r.Frame(16))
	assert.Equal(t, scene.KindTerrain, h.r.Scene(), "broken model keeps the current scene")

	h.r.RequestModel(filepath.Join(dir, "missing.obj"))
	h.r.RequestModel(good)
	require.NoError(t, h.r.Frame(16))
	require.Equal(t, scene.KindObj, h.r.Scene())
	assert.Equal(t, "tri.obj", h.r.dispatcher.Obj().ModelName())
	assert.Equal(t, 1, h.r.Status().Scene.Triangles)
}

func TestReloadShadersFallsBack(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Debug.ShaderDir = dir
	h := newHarness(t, cfg, false)
	require.NoError(t, h.r.HandleEvent(input.KeyPress(input.Key1)))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "obj.frag"), nil, 0o644))
	require.NoError(t, h.r.ReloadShaders())
	assert.Equal(t, scene.KindObj, h.r.Scene())
	assert.True(t, h.r.dispatcher.Options().Shaders.IsEmbedded())
}

func TestTerrainOptionsFromConfig(t *testing.T) {
	c := config.Default().Terrain
	c.Seed, c.ZScale, c.Octaves = 9, 3, 4
	o := TerrainOptions(c)
	assert.Equal(t, int64(9), o.Seed)
	assert.Equal(t, c.GridRadius, o.Radius)
	assert.Equal(t, float32(3), o.Chunk.ZScale.Z())
	assert.Equal(t, float32(1), o.Chunk.ZScale.X())
	assert.Equal(t, int32(4), o.Noise.Octaves)
	assert.Equal(t, scene.DefaultTerrainOptions().Chunk, TerrainOptions(config.Default().Terrain).Chunk)
}

func TestStatusLines(t *testing.T) {
	s := Status{
		FPS:       59.94,
		FrameTime: 16.68,
		Scene: scene.Stats{
			Kind:        scene.KindTerrain,
			Chunks:      25,
			Vertices:    1234567,
			Triangles:   2500,
			SampleCount: 4,
			Width:       1280,
			Height:      720,
		},
	}
	lines := s.Lines()
	assert.Contains(t, lines, "FPS: 59.9 (16.68 ms)")
	assert.Contains(t, lines, "Scene: terrain")
	assert.Contains(t, lines, "Chunks: 25")
	assert.Contains(t, lines, "Vertices: 1,234,567  Triangles: 2,500")
	assert.Contains(t, lines, "MSAA: 4x  Wireframe: unavailable")
	assert.Contains(t, lines, "Surface: 1,280 x 720")
	assert.True(t, strings.HasPrefix(s.Title("playground"), "playground | FPS"))

	s.Scene.Kind = scene.KindObj
	for _, l := range s.Lines() {
		assert.NotContains(t, l, "Chunks")
	}
}
