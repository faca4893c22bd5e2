package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Faultbox/terrain-playground/internal/assets"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/texture"
)

// Mesh is one indexed draw.
type Mesh struct {
	Name         string
	VertexBuffer gpu.Buffer
	IndexBuffer  gpu.Buffer
	NumElements  int
	NumVertices  int
	Material     int
}

// Release frees the mesh buffers.
func (m *Mesh) Release() {
	releaseAll(m.VertexBuffer, m.IndexBuffer)
	m.VertexBuffer, m.IndexBuffer = nil, nil
}

// Material binds a primary texture (height or diffuse) and an optional
// normal texture to shader slots.
type Material struct {
	Name      string
	Texture   gpu.Texture
	Normal    gpu.Texture
	Samplers  []gpu.Sampler
	BindGroup gpu.BindGroup
}

// Release frees the material's textures, samplers and bind group.
func (m *Material) Release() {
	releaseAll(m.BindGroup, m.Texture, m.Normal)
	for _, s := range m.Samplers {
		releaseAll(s)
	}
	m.BindGroup, m.Texture, m.Normal, m.Samplers = nil, nil, nil, nil
}

// Model is meshes plus the materials they index.
type Model struct {
	Meshes    []*Mesh
	Materials []*Material
}

// Release frees every mesh and material.
func (m *Model) Release() {
	for _, mesh := range m.Meshes {
		mesh.Release()
	}
	for _, mat := range m.Materials {
		mat.Release()
	}
	m.Meshes, m.Materials = nil, nil
}

// Counts returns vertices and triangles over all meshes.
func (m *Model) Counts() (vertices, triangles int) {
	for _, mesh := range m.Meshes {
		vertices += mesh.NumVertices
		triangles += mesh.NumElements / 3
	}
	return vertices, triangles
}

func newMesh(dev gpu.Device, name string, vertices []Vertex, indices []uint32, material int) (*Mesh, error) {
	vb, err := dev.CreateBuffer(gpu.BufferDesc{
		Label:    name + " vertices",
		Usage:    gpu.BufferVertex,
		Contents: gpu.BytesOf(vertices),
	})
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", name, err)
	}
	ib, err := dev.CreateBuffer(gpu.BufferDesc{
		Label:    name + " indices",
		Usage:    gpu.BufferIndex,
		Contents: gpu.BytesOf(indices),
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("mesh %s: %w", name, err)
	}
	return &Mesh{
		Name:         name,
		VertexBuffer: vb,
		IndexBuffer:  ib,
		NumElements:  len(indices),
		NumVertices:  len(vertices),
		Material:     material,
	}, nil
}

// checkerTexture is the stand-in diffuse map for untextured materials.
func checkerTexture() *image.RGBA {
	return texture.Checker(64, 8,
		color.RGBA{R: 220, G: 220, B: 220, A: 255},
		color.RGBA{R: 90, G: 110, B: 160, A: 255})
}

func newDiffuseMaterial(dev gpu.Device, name string, img *image.RGBA) (*Material, error) {
	if img == nil {
		img = checkerTexture()
	}
	img = texture.ToRGBA(img)

	m := &Material{Name: name}
	tex, err := dev.CreateTexture(gpu.TextureDesc{
		Label:       name + " diffuse",
		Width:       img.Rect.Dx(),
		Height:      img.Rect.Dy(),
		Format:      gpu.FormatRGBA8Unorm,
		SampleCount: 1,
		Usage:       gpu.TextureBinding,
		Data:        img.Pix,
	})
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", name, err)
	}
	m.Texture = tex

	sampler, err := dev.CreateSampler(gpu.SamplerDesc{
		Label:   name + " diffuse sampler",
		Address: gpu.AddressRepeat,
		Filter:  gpu.FilterLinear,
	})
	if err != nil {
		m.Release()
		return nil, fmt.Errorf("material %s: %w", name, err)
	}
	m.Samplers = append(m.Samplers, sampler)

	m.BindGroup, err = dev.CreateBindGroup(gpu.BindGroupDesc{
		Label:   name,
		Layout:  DiffuseMaterialLayout,
		Entries: []gpu.BindGroupEntry{{Binding: 0, Texture: tex, Sampler: sampler}},
	})
	if err != nil {
		m.Release()
		return nil, fmt.Errorf("material %s: %w", name, err)
	}
	return m, nil
}

// NewModel uploads a parsed OBJ model. Materials without a diffuse map get
// a checker texture; meshes without a material use an extra default one.
func NewModel(dev gpu.Device, src *assets.Model) (*Model, error) {
	m := &Model{}
	for i, md := range src.Data.Materials {
		mat, err := newDiffuseMaterial(dev, md.Name, src.Textures[i])
		if err != nil {
			m.Release()
			return nil, err
		}
		m.Materials = append(m.Materials, mat)
	}

	fallback := -1
	for i, md := range src.Data.Meshes {
		material := md.Material
		if material < 0 {
			if fallback < 0 {
				mat, err := newDiffuseMaterial(dev, "default", nil)
				if err != nil {
					m.Release()
					return nil, err
				}
				m.Materials = append(m.Materials, mat)
				fallback = len(m.Materials) - 1
			}
			material = fallback
		}

		vertices := make([]Vertex, len(md.Vertices))
		for j, v := range md.Vertices {
			vertices[j] = Vertex{Position: v.Position, TexCoord: v.TexCoord, Normal: v.Normal}
		}
		name := md.Name
		if name == "" {
			name = fmt.Sprintf("mesh %d", i)
		}
		mesh, err := newMesh(dev, name, vertices, md.Indices, material)
		if err != nil {
			m.Release()
			return nil, err
		}
		m.Meshes = append(m.Meshes, mesh)
	}
	return m, nil
}
