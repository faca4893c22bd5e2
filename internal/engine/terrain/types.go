// Package terrain builds procedural terrain chunks from a noise field.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one mesh vertex as laid out in the GPU vertex buffer.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// VertexSize is the byte stride of Vertex.
const VertexSize = 8 * 4

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// HeightMap is a single-channel float image, row-major, row 0 at the
// chunk's minimum y.
type HeightMap struct {
	Width  int
	Height int
	Pix    []float32
}

// At returns the texel at column x, row y.
func (h *HeightMap) At(x, y int) float32 {
	return h.Pix[y*h.Width+x]
}

// NormalMap is an RGBA float image holding normals remapped to [0,1].
// Alpha is always 1.
type NormalMap struct {
	Width  int
	Height int
	Pix    []float32
}

// Encoded returns the stored RGB texel at column x, row y.
func (n *NormalMap) Encoded(x, y int) [3]float32 {
	i := (y*n.Width + x) * 4
	return [3]float32{n.Pix[i], n.Pix[i+1], n.Pix[i+2]}
}

// Normal returns the decoded normal at column x, row y.
func (n *NormalMap) Normal(x, y int) mgl32.Vec3 {
	return DecodeNormal(n.Encoded(x, y))
}

// ChunkParams fixes the size and shape of every chunk in a terrain.
type ChunkParams struct {
	// Resolution is the number of height texel intervals per chunk side.
	Resolution int
	// ChunkWidth is the world-space side length of one chunk.
	ChunkWidth float32
	// ZScale scales mesh positions per axis; only z exaggerates.
	ZScale mgl32.Vec3
	// NoiseScale is the noise-space side length of one chunk.
	NoiseScale float64
}

// DefaultChunkParams returns 8 texel intervals over 100 world units with a
// fivefold vertical exaggeration and 0.2 noise units per chunk.
func DefaultChunkParams() ChunkParams {
	return ChunkParams{
		Resolution: 8,
		ChunkWidth: 100,
		ZScale:     mgl32.Vec3{1, 1, 5},
		NoiseScale: 0.2,
	}
}

// ChunkData is the CPU side of one terrain tile.
type ChunkData struct {
	X, Y     int
	Position mgl32.Vec3
	Vertices []Vertex
	Indices  []uint32
	Height   *HeightMap
	Normal   *NormalMap
	// Corners holds the raw noise heights at quad corners (0,0), (1,0),
	// (0,1), (1,1), in vertex order.
	Corners [4]float32
	Bounds  Bounds
}
