package terrain

import "github.com/go-gl/mathgl/mgl32"

// quadIndices are the two counter-clockwise triangles of a unit quad whose
// corners are ordered (0,0), (1,0), (0,1), (1,1).
var quadIndices = []uint32{0, 1, 2, 3, 2, 1}

// buildQuad lays out the four corners of a chunk quad in world space.
// Corner z holds the raw noise height before scaling.
func buildQuad(offset mgl32.Vec3, corners [4]float32, width float32, scale mgl32.Vec3) ([]Vertex, Bounds) {
	unit := [4]mgl32.Vec3{
		{0, 0, corners[0]},
		{1, 0, corners[1]},
		{0, 1, corners[2]},
		{1, 1, corners[3]},
	}

	verts := make([]Vertex, len(unit))
	b := emptyBounds()
	for i, v := range unit {
		p := v.Add(offset).Mul(width)
		p = mgl32.Vec3{p[0] * scale[0], p[1] * scale[1], p[2] * scale[2]}
		verts[i] = Vertex{
			Position: p,
			TexCoord: [2]float32{v[0], v[1]},
			Normal:   [3]float32{0, 0, 1},
		}
		updateBounds(&b, p)
	}
	return verts, b
}

func emptyBounds() Bounds {
	const inf = float32(1e30)
	return Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows b to contain o.
func (b Bounds) Union(o Bounds) Bounds {
	updateBounds(&b, o.Min)
	updateBounds(&b, o.Max)
	return b
}
