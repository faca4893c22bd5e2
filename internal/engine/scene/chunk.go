package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/terrain"
)

// Chunk is one uploaded terrain tile.
type Chunk struct {
	X, Y     int
	Position mgl32.Vec3
	Model    *Model
	Corners  [4]float32
}

// Release frees the chunk's GPU resources.
func (c *Chunk) Release() {
	if c.Model != nil {
		c.Model.Release()
		c.Model = nil
	}
}

// NewChunk uploads a chunk's mesh, an R32F height map sampled with mirror
// repeat, and an RGBA32F normal map clamped to edge. Both use nearest
// filtering and are bound per layout: 0 height, 1 normal.
func NewChunk(dev gpu.Device, data *terrain.ChunkData, layout gpu.BindGroupLayout) (*Chunk, error) {
	name := fmt.Sprintf("chunk %d,%d", data.X, data.Y)
	mat, err := newTerrainMaterial(dev, name, data, layout)
	if err != nil {
		return nil, err
	}
	mesh, err := newMesh(dev, name, data.Vertices, data.Indices, 0)
	if err != nil {
		mat.Release()
		return nil, err
	}
	return &Chunk{
		X:        data.X,
		Y:        data.Y,
		Position: data.Position,
		Corners:  data.Corners,
		Model:    &Model{Meshes: []*Mesh{mesh}, Materials: []*Material{mat}},
	}, nil
}

func newTerrainMaterial(dev gpu.Device, name string, data *terrain.ChunkData, layout gpu.BindGroupLayout) (*Material, error) {
	m := &Material{Name: name}
	fail := func(err error) (*Material, error) {
		m.Release()
		return nil, fmt.Errorf("%s material: %w", name, err)
	}

	var err error
	m.Texture, err = dev.CreateTexture(gpu.TextureDesc{
		Label:       name + " height",
		Width:       data.Height.Width,
		Height:      data.Height.Height,
		Format:      gpu.FormatR32Float,
		SampleCount: 1,
		Usage:       gpu.TextureBinding,
		Data:        gpu.BytesOf(data.Height.Pix),
	})
	if err != nil {
		return fail(err)
	}
	heightSampler, err := dev.CreateSampler(gpu.SamplerDesc{
		Label:   name + " height sampler",
		Address: gpu.AddressMirrorRepeat,
		Filter:  gpu.FilterNearest,
	})
	if err != nil {
		return fail(err)
	}
	m.Samplers = append(m.Samplers, heightSampler)

	m.Normal, err = dev.CreateTexture(gpu.TextureDesc{
		Label:       name + " normal",
		Width:       data.Normal.Width,
		Height:      data.Normal.Height,
		Format:      gpu.FormatRGBA32Float,
		SampleCount: 1,
		Usage:       gpu.TextureBinding,
		Data:        gpu.BytesOf(data.Normal.Pix),
	})
	if err != nil {
		return fail(err)
	}
	normalSampler, err := dev.CreateSampler(gpu.SamplerDesc{
		Label:   name + " normal sampler",
		Address: gpu.AddressClampToEdge,
		Filter:  gpu.FilterNearest,
	})
	if err != nil {
		return fail(err)
	}
	m.Samplers = append(m.Samplers, normalSampler)

	m.BindGroup, err = dev.CreateBindGroup(gpu.BindGroupDesc{
		Label:  name,
		Layout: layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Texture: m.Texture, Sampler: heightSampler},
			{Binding: 1, Texture: m.Normal, Sampler: normalSampler},
		},
	})
	if err != nil {
		return fail(err)
	}
	return m, nil
}
