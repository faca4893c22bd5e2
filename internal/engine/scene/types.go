// Package scene renders the two demo scenes, an instanced model field and
// a procedural terrain, through the gpu abstraction.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/assets"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/noise"
	"github.com/Faultbox/terrain-playground/internal/engine/scene/shaders"
	"github.com/Faultbox/terrain-playground/internal/engine/terrain"
)

// Vertex is the vertex buffer element shared by both scenes.
type Vertex = terrain.Vertex

// VertexSize is the byte stride of Vertex.
const VertexSize = terrain.VertexSize

// Instance is one per-instance model transform, column-major.
type Instance struct {
	Model mgl32.Mat4
}

// InstanceSize is the byte stride of Instance.
const InstanceSize = 16 * 4

// Shader locations of the instance matrix columns.
const firstInstanceLocation = 5

// CameraUniformSize is the size of the Camera std140 block: one mat4.
const CameraUniformSize = 16 * 4

// View is what the controls feed into a frame.
type View struct {
	// Camera holds rotations about X, Y and Z as fractions of a full turn.
	Camera    mgl32.Vec3
	Zoom      float32
	Wireframe bool
}

// DefaultView is the unrotated, unzoomed view.
func DefaultView() View {
	return View{Zoom: 1}
}

// Stats summarises what a scene draws.
type Stats struct {
	Kind        Kind
	Chunks      int
	Meshes      int
	Materials   int
	Instances   int
	DrawCalls   int
	Vertices    int
	Triangles   int
	SampleCount int
	// WireframeAvailable is false when the device lacks line polygon mode.
	WireframeAvailable bool
	Width, Height      int
}

// TerrainOptions configures the terrain scene.
type TerrainOptions struct {
	Seed   int64
	Radius int
	Chunk  terrain.ChunkParams
	Noise  noise.Params
}

// DefaultTerrainOptions returns a radius-2 grid of default chunks.
func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{
		Radius: 2,
		Chunk:  terrain.DefaultChunkParams(),
		Noise:  noise.DefaultParams(),
	}
}

// Options are the construction inputs both scenes share.
type Options struct {
	Logger  *zap.Logger
	Shaders shaders.Set
	// Model replaces the bundled OBJ in the Obj scene.
	Model   *assets.Model
	Terrain TerrainOptions
}

// DefaultOptions returns embedded shaders and default terrain.
func DefaultOptions() Options {
	return Options{
		Logger:  zap.NewNop(),
		Shaders: shaders.Embedded(),
		Terrain: DefaultTerrainOptions(),
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// vertexLayout describes Vertex at slot 0.
func vertexLayout() gpu.VertexBufferLayout {
	return gpu.VertexBufferLayout{
		Stride:   VertexSize,
		StepMode: gpu.StepVertex,
		Attributes: []gpu.VertexAttribute{
			{Location: 0, Format: gpu.VertexFloat32x3, Offset: 0},
			{Location: 1, Format: gpu.VertexFloat32x2, Offset: 12},
			{Location: 2, Format: gpu.VertexFloat32x3, Offset: 20},
		},
	}
}

// instanceLayout describes Instance at slot 1: a mat4 takes four vec4
// locations.
func instanceLayout() gpu.VertexBufferLayout {
	attrs := make([]gpu.VertexAttribute, 4)
	for i := range attrs {
		attrs[i] = gpu.VertexAttribute{
			Location: firstInstanceLocation + i,
			Format:   gpu.VertexFloat32x4,
			Offset:   i * 16,
		}
	}
	return gpu.VertexBufferLayout{
		Stride:     InstanceSize,
		StepMode:   gpu.StepInstance,
		Attributes: attrs,
	}
}

// Bind group layouts. Bindings are texture units for textures and buffer
// binding points for uniforms.
var (
	// CameraLayout holds the view-projection uniform block.
	CameraLayout = gpu.BindGroupLayout{
		Label:   "camera",
		Entries: []gpu.LayoutEntry{{Binding: 0, Kind: gpu.BindingUniformBuffer}},
	}
	// TerrainMaterialLayout holds a chunk's height (0) and normal (1) maps.
	TerrainMaterialLayout = gpu.BindGroupLayout{
		Label: "terrain material",
		Entries: []gpu.LayoutEntry{
			{Binding: 0, Kind: gpu.BindingSampledTexture},
			{Binding: 1, Kind: gpu.BindingSampledTexture},
		},
	}
	// DiffuseMaterialLayout holds a model material's diffuse map.
	DiffuseMaterialLayout = gpu.BindGroupLayout{
		Label:   "diffuse material",
		Entries: []gpu.LayoutEntry{{Binding: 0, Kind: gpu.BindingSampledTexture}},
	}
)

// Bind group indices used in passes.
const (
	materialGroup = 0
	cameraGroup   = 1
)

func releaseAll(rs ...gpu.Resource) {
	for _, r := range rs {
		if r != nil {
			r.Release()
		}
	}
}
