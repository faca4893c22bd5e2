package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrain-playground/internal/engine/camera"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu/gputest"
)

var testSurface = gpu.SurfaceConfig{Width: 320, Height: 200, Format: gpu.FormatRGBA8Unorm}

// smallOptions keeps terrain tests fast: a 3×3 grid.
func smallOptions() Options {
	o := DefaultOptions()
	o.Terrain.Radius = 1
	o.Terrain.Seed = 42
	return o
}

func newSurface(t *testing.T, dev *gputest.Device, cfg gpu.SurfaceConfig) gpu.Texture {
	t.Helper()
	s := gputest.NewSurface(dev)
	require.NoError(t, s.Configure(dev, cfg))
	st, err := s.CurrentTexture()
	require.NoError(t, err)
	return st.Texture()
}

func floats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

func TestWireframeUnavailableIsNoOp(t *testing.T) {
	dev := gputest.NewDevice(0)
	target := newSurface(t, dev, testSurface)

	s, err := NewTerrainScene(dev, testSurface, 1, smallOptions())
	require.NoError(t, err)
	defer s.Release()
	assert.False(t, s.Stats().WireframeAvailable)

	v := DefaultView()
	s.Render(v, target, camera.Aspect(320, 200), dev, dev.Queue())
	off := dev.LastFrame()

	v.Wireframe = true
	s.Render(v, target, camera.Aspect(320, 200), dev, dev.Queue())
	on := dev.LastFrame()

	assert.Equal(t, off, on)
	assert.Empty(t, dev.Problems())
}

func TestWireframeDrawsSecondPassInSameRenderPass(t *testing.T) {
	dev := gputest.NewDevice(gpu.FeaturePolygonModeLine)
	target := newSurface(t, dev, testSurface)

	s, err := NewTerrainScene(dev, testSurface, 1, smallOptions())
	require.NoError(t, err)
	defer s.Release()

	v := DefaultView()
	v.Wireframe = true
	s.Render(v, target, 1.6, dev, dev.Queue())
	frame := dev.LastFrame()

	draws := gputest.Draws(frame)
	assert.Len(t, draws, 2*9)
	assert.Equal(t, 2*9, s.Stats().DrawCalls)

	var passes, pipelines int
	for _, c := range frame {
		switch c.Op {
		case gputest.OpBeginPass:
			passes++
		case gputest.OpSetPipeline:
			pipelines++
		}
	}
	assert.Equal(t, 1, passes)
	assert.Equal(t, 2, pipelines)
	assert.Equal(t, "terrain wireframe", s.r.pipes.wireframe.(*gputest.Pipeline).Label())
	assert.Empty(t, dev.Problems())
}

func TestWireframePipelineState(t *testing.T) {
	src := pipelineSource{label: "x", vertex: "v", fragment: "f", wireFragment: "w", textures: map[string]int{"t": 0}}
	d := wireframePipelineDesc(src, gpu.FormatRGBA8Unorm, 4)
	assert.Equal(t, gpu.PolygonLine, d.PolygonMode)
	assert.Equal(t, gpu.BlendAlpha, d.Blend)
	assert.Equal(t, gpu.CompareLess, d.DepthCompare)
	assert.True(t, d.DepthWrite)
	assert.Equal(t, 4, d.SampleCount)
	assert.Equal(t, "w", d.FragmentSource)
	assert.Nil(t, d.Textures)

	std := standardPipelineDesc(src, gpu.FormatRGBA8Unorm, 4)
	assert.Equal(t, gpu.CullBack, std.CullMode)
	assert.Equal(t, gpu.BlendReplace, std.Blend)
	assert.Equal(t, map[string]int{"Camera": 0}, std.UniformBlocks)
}

func TestResizeZeroKeepsTargets(t *testing.T) {
	dev := gputest.NewDevice(0)
	s, err := NewObjScene(dev, testSurface, 4, DefaultOptions())
	require.NoError(t, err)
	defer s.Release()

	before := s.r.targets
	live := dev.Live()

	assert.NotPanics(t, func() {
		require.NoError(t, s.Resize(0, 0, dev, gpu.SurfaceConfig{Format: testSurface.Format}))
		require.NoError(t, s.Resize(0, 480, dev, testSurface))
	})
	assert.Same(t, before, s.r.targets)
	assert.Equal(t, live, dev.Live())
}

func TestResizeReallocatesTargets(t *testing.T) {
	dev := gputest.NewDevice(0)
	s, err := NewObjScene(dev, testSurface, 4, DefaultOptions())
	require.NoError(t, err)
	defer s.Release()

	live := dev.Live()
	cfg := gpu.SurfaceConfig{Width: 640, Height: 480, Format: testSurface.Format}
	require.NoError(t, s.Resize(640, 480, dev, cfg))

	assert.Equal(t, 640, s.r.targets.depth.Width())
	assert.Equal(t, 480, s.r.targets.msaa.Height())
	assert.Equal(t, live, dev.Live(), "old targets are released")
	assert.Empty(t, dev.Problems())
}

func TestMSAAResolvesIntoTarget(t *testing.T) {
	dev := gputest.NewDevice(0)
	target := newSurface(t, dev, testSurface)

	s, err := NewObjScene(dev, testSurface, 4, DefaultOptions())
	require.NoError(t, err)
	defer s.Release()
	s.Render(DefaultView(), target, 1.6, dev, dev.Queue())

	pass := dev.LastFrame()[0].Pass
	require.NotNil(t, pass)
	assert.Equal(t, 4, pass.Color.View.SampleCount())
	assert.Same(t, target, pass.Color.Resolve)
	assert.Equal(t, gpu.StoreDiscard, pass.Color.Store)
	assert.Equal(t, ClearColor, pass.Color.Clear)
	assert.Equal(t, float32(1), pass.Depth.Clear)
	assert.Equal(t, 4, pass.Depth.View.SampleCount())
	assert.Empty(t, dev.Problems())
}

func TestSingleSampleRendersDirectly(t *testing.T) {
	dev := gputest.NewDevice(0)
	target := newSurface(t, dev, testSurface)

	s, err := NewObjScene(dev, testSurface, 1, DefaultOptions())
	require.NoError(t, err)
	defer s.Release()
	assert.Nil(t, s.r.targets.msaa)

	s.Render(DefaultView(), target, 1.6, dev, dev.Queue())
	pass := dev.LastFrame()[0].Pass
	assert.Same(t, target, pass.Color.View)
	assert.Nil(t, pass.Color.Resolve)
	assert.Equal(t, gpu.StoreStore, pass.Color.Store)
}

func TestRenderWritesViewProjection(t *testing.T) {
	dev := gputest.NewDevice(0)
	target := newSurface(t, dev, testSurface)

	s, err := NewTerrainScene(dev, testSurface, 1, smallOptions())
	require.NoError(t, err)
	defer s.Release()

	v := View{Camera: mgl32.Vec3{0.1, 0, 0.25}, Zoom: 2}
	s.Render(v, target, 1.6, dev, dev.Queue())

	want := camera.NewRig(camera.TerrainEye).ViewProjection(v.Camera, v.Zoom, 1.6)
	got := floats(s.r.camera.(*gputest.Buffer).Data)
	assert.Equal(t, want[:], got)
}

func TestRenderAdaptsToTargetSize(t *testing.T) {
	dev := gputest.NewDevice(0)
	s, err := NewObjScene(dev, gpu.SurfaceConfig{Format: testSurface.Format}, 1, DefaultOptions())
	require.NoError(t, err)
	defer s.Release()
	assert.Nil(t, s.r.targets)

	target := newSurface(t, dev, testSurface)
	s.Render(DefaultView(), target, 1.6, dev, dev.Queue())
	require.NotNil(t, s.r.targets)
	assert.Equal(t, 320, s.r.targets.width)
	assert.Len(t, dev.Submitted(), 1)
}

func TestObjInstances(t *testing.T) {
	inst := ObjInstances()
	require.Len(t, inst, 49)

	// Row-major from (-900,-900); the centre is index 24.
	assert.Equal(t, mgl32.Ident4(), inst[24].Model)
	assert.Equal(t, mgl32.Vec3{-900, -900, 0}, inst[0].Model.Col(3).Vec3())
	assert.Equal(t, mgl32.Vec3{900, 900, 0}, inst[48].Model.Col(3).Vec3())

	// The rim instance on +x is tilted π/4 about X and not about Y.
	rot := inst[24+3].Model.Mat3()
	want := mgl32.Rotate3DX(math.Pi / 4)
	assert.True(t, rot.ApproxEqualThreshold(want, 1e-5))
}

func TestObjSceneStats(t *testing.T) {
	dev := gputest.NewDevice(gpu.FeaturePolygonModeLine)
	s, err := NewObjScene(dev, testSurface, 2, DefaultOptions())
	require.NoError(t, err)
	defer s.Release()

	st := s.Stats()
	assert.Equal(t, KindObj, st.Kind)
	assert.Equal(t, 49, st.Instances)
	assert.Equal(t, 1, st.Meshes)
	assert.Equal(t, 720, st.Triangles)
	assert.Equal(t, 2, st.SampleCount)
	assert.True(t, st.WireframeAvailable)
	assert.Equal(t, "models/sphere.obj", s.ModelName())
}

func TestFailedConstructionLeaksNothing(t *testing.T) {
	dev := gputest.NewDevice(gpu.FeaturePolygonModeLine)
	dev.FailPipelines = true

	_, err := NewObjScene(dev, testSurface, 4, DefaultOptions())
	assert.Error(t, err)
	_, err = NewTerrainScene(dev, testSurface, 4, smallOptions())
	assert.Error(t, err)

	assert.Equal(t, 0, dev.Live().Total())
	assert.Empty(t, dev.Problems())
}

func TestReleaseFreesEverything(t *testing.T) {
	dev := gputest.NewDevice(gpu.FeaturePolygonModeLine)
	terrainScene, err := NewTerrainScene(dev, testSurface, 4, smallOptions())
	require.NoError(t, err)
	objScene, err := NewObjScene(dev, testSurface, 4, DefaultOptions())
	require.NoError(t, err)

	terrainScene.Release()
	objScene.Release()
	assert.Equal(t, 0, dev.Live().Total())
	assert.Empty(t, dev.Problems())
}
