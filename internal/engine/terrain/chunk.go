package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrain-playground/internal/engine/noise"
)

// ChunkBounds returns the noise-space interval covered by chunk index i.
// Neighbouring chunks compute their shared endpoint with the same
// expression, so it is bit-identical on both sides.
func ChunkBounds(i int, scale float64) noise.Bounds {
	return noise.Bounds{Min: float64(i) * scale, Max: float64(i+1) * scale}
}

// BuildChunk samples the noise field for tile (cx, cy) and assembles its
// quad, height map and normal map. The quad's corner heights are the very
// samples at the corners of the height map, so the mesh and texture agree
// and shared edges match across neighbours.
func BuildChunk(cx, cy int, src noise.Source, p ChunkParams) *ChunkData {
	res := p.Resolution
	padded := noise.NewSampler(src).SamplePadded(res,
		ChunkBounds(cx, p.NoiseScale),
		ChunkBounds(cy, p.NoiseScale))

	first, last := 1, res+1
	corners := [4]float32{
		float32(padded.At(first, first)),
		float32(padded.At(first, last)),
		float32(padded.At(last, first)),
		float32(padded.At(last, last)),
	}

	offset := mgl32.Vec3{float32(cx), float32(cy), 0}
	verts, bounds := buildQuad(offset, corners, p.ChunkWidth, p.ZScale)

	indices := make([]uint32, len(quadIndices))
	copy(indices, quadIndices)

	return &ChunkData{
		X:        cx,
		Y:        cy,
		Position: offset.Mul(p.ChunkWidth),
		Vertices: verts,
		Indices:  indices,
		Height:   BuildHeightMap(padded),
		Normal:   BuildNormalMap(padded, 1/float64(res), p.ZScale[2]),
		Corners:  corners,
		Bounds:   bounds,
	}
}

// GridCoords lists the chunk coordinates of a square grid of the given
// radius around the origin, row by row.
func GridCoords(radius int) [][2]int {
	coords := make([][2]int, 0, (2*radius+1)*(2*radius+1))
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			coords = append(coords, [2]int{x, y})
		}
	}
	return coords
}
