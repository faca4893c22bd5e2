package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrain-playground/internal/engine/noise"
)

func TestBuildChunkShape(t *testing.T) {
	p := DefaultChunkParams()
	c := BuildChunk(0, 0, noise.NewPerlin(0), p)

	require.Len(t, c.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 3, 2, 1}, c.Indices)
	assert.Equal(t, 9, c.Height.Width)
	assert.Equal(t, 9, c.Height.Height)
	assert.Equal(t, 9, c.Normal.Width)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Position)

	wantUV := [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, v := range c.Vertices {
		assert.Equal(t, wantUV[i], v.TexCoord)
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	}
}

func TestBuildChunkWorldPlacement(t *testing.T) {
	p := DefaultChunkParams()
	c := BuildChunk(2, -1, noise.NewPerlin(0), p)

	assert.Equal(t, mgl32.Vec3{200, -100, 0}, c.Position)

	wantXY := [][2]float32{{200, -100}, {300, -100}, {200, 0}, {300, 0}}
	for i, v := range c.Vertices {
		assert.InDelta(t, wantXY[i][0], v.Position[0], 1e-4, "vertex %d x", i)
		assert.InDelta(t, wantXY[i][1], v.Position[1], 1e-4, "vertex %d y", i)
		assert.InDelta(t, c.Corners[i]*p.ChunkWidth*p.ZScale[2], v.Position[2], 1e-4, "vertex %d z", i)
	}

	assert.InDelta(t, 200, c.Bounds.Min[0], 1e-4)
	assert.InDelta(t, 300, c.Bounds.Max[0], 1e-4)
}

func TestCornerTexelsMatchVertexHeights(t *testing.T) {
	p := DefaultChunkParams()
	c := BuildChunk(0, 0, noise.NewPerlin(1234), p)

	res := p.Resolution
	texels := [4]float32{
		c.Height.At(0, 0),
		c.Height.At(res, 0),
		c.Height.At(0, res),
		c.Height.At(res, res),
	}
	for i := range texels {
		assert.InDelta(t, c.Corners[i], texels[i]-0.5, 1e-6, "corner %d", i)
		assert.InDelta(t, c.Corners[i]*p.ChunkWidth*p.ZScale[2], c.Vertices[i].Position[2], 1e-3, "corner %d", i)
	}
}

func TestSeamContinuity(t *testing.T) {
	src := noise.NewPerlin(0)
	p := DefaultChunkParams()
	res := p.Resolution

	pairs := []struct {
		name string
		a, b [2]int
	}{
		{"x neighbours", [2]int{0, 0}, [2]int{1, 0}},
		{"x neighbours negative", [2]int{-2, 3}, [2]int{-1, 3}},
		{"y neighbours", [2]int{0, 0}, [2]int{0, 1}},
		{"y neighbours negative", [2]int{4, -3}, [2]int{4, -2}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			a := BuildChunk(tt.a[0], tt.a[1], src, p)
			b := BuildChunk(tt.b[0], tt.b[1], src, p)

			if tt.b[0] != tt.a[0] {
				// a's east edge is b's west edge
				assert.Equal(t, a.Corners[1], b.Corners[0])
				assert.Equal(t, a.Corners[3], b.Corners[2])
				assert.Equal(t, a.Vertices[1].Position, b.Vertices[0].Position)
				assert.Equal(t, a.Vertices[3].Position, b.Vertices[2].Position)
				for row := 0; row <= res; row++ {
					assert.Equal(t, a.Height.At(res, row), b.Height.At(0, row), "row %d", row)
				}
			} else {
				// a's far y edge is b's near y edge
				assert.Equal(t, a.Corners[2], b.Corners[0])
				assert.Equal(t, a.Corners[3], b.Corners[1])
				assert.Equal(t, a.Vertices[2].Position, b.Vertices[0].Position)
				assert.Equal(t, a.Vertices[3].Position, b.Vertices[1].Position)
				for col := 0; col <= res; col++ {
					assert.Equal(t, a.Height.At(col, res), b.Height.At(col, 0), "col %d", col)
				}
			}
		})
	}
}

func TestBuildChunkDeterministic(t *testing.T) {
	p := DefaultChunkParams()
	a := BuildChunk(3, 5, noise.NewPerlin(99), p)
	b := BuildChunk(3, 5, noise.NewPerlin(99), p)

	assert.Equal(t, a.Corners, b.Corners)
	assert.Equal(t, a.Height.Pix, b.Height.Pix)
	assert.Equal(t, a.Normal.Pix, b.Normal.Pix)
}

func TestGridCoords(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 0}}, GridCoords(0))

	coords := GridCoords(1)
	require.Len(t, coords, 9)
	assert.Equal(t, [2]int{-1, -1}, coords[0])
	assert.Equal(t, [2]int{1, -1}, coords[2])
	assert.Equal(t, [2]int{1, 1}, coords[8])
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}}
	b := Bounds{Min: [3]float32{-1, 0.5, 0}, Max: [3]float32{0.5, 2, 3}}

	u := a.Union(b)
	assert.Equal(t, [3]float32{-1, 0, 0}, u.Min)
	assert.Equal(t, [3]float32{1, 2, 3}, u.Max)
}
