package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrain-playground/internal/engine/noise"
)

// heightBias maps signed noise into a displayable unsigned range.
const heightBias = 0.5

// BuildHeightMap drops the padding border of a padded noise grid and stores
// the remainder shifted by +0.5.
func BuildHeightMap(padded *noise.Grid) *HeightMap {
	inner := padded.Inner()
	hm := &HeightMap{
		Width:  inner.Width,
		Height: inner.Height,
		Pix:    make([]float32, len(inner.Values)),
	}
	for i, v := range inner.Values {
		hm.Pix[i] = float32(v) + heightBias
	}
	return hm
}

// BuildNormalMap derives one normal per interior sample of a padded grid
// from central differences of its four orthogonal neighbours. delta is the
// lattice spacing in chunk units and zScale the vertical exaggeration.
func BuildNormalMap(padded *noise.Grid, delta float64, zScale float32) *NormalMap {
	if padded.Width < 3 || padded.Height < 3 {
		panic(fmt.Sprintf("terrain: normal map needs a padded grid of at least 3x3, got %dx%d",
			padded.Width, padded.Height))
	}

	w, h := padded.Width-2, padded.Height-2
	nm := &NormalMap{Width: w, Height: h, Pix: make([]float32, w*h*4)}
	step := float32(delta) * 2

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			// 3x3 window centred on (row+1, col+1)
			north := float32(padded.At(row, col+1))
			west := float32(padded.At(row+1, col))
			east := float32(padded.At(row+1, col+2))
			south := float32(padded.At(row+2, col+1))

			tx := mgl32.Vec3{step, 0, (east - west) * zScale}
			ty := mgl32.Vec3{0, step, (south - north) * zScale}
			enc := EncodeNormal(normalize(tx.Cross(ty)))

			i := (row*w + col) * 4
			nm.Pix[i] = enc[0]
			nm.Pix[i+1] = enc[1]
			nm.Pix[i+2] = enc[2]
			nm.Pix[i+3] = 1
		}
	}
	return nm
}

// EncodeNormal remaps a unit vector from [-1,1] to [0,1] per component.
func EncodeNormal(n mgl32.Vec3) [3]float32 {
	return [3]float32{(n[0] + 1) / 2, (n[1] + 1) / 2, (n[2] + 1) / 2}
}

// DecodeNormal reverses EncodeNormal.
func DecodeNormal(c [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{c[0]*2 - 1, c[1]*2 - 1, c[2]*2 - 1}
}

// Sample returns the bilinearly interpolated height at texture coordinate
// (u, v) in [0,1], clamped at the edges.
func (h *HeightMap) Sample(u, v float32) float32 {
	fx := clampf(u, 0, 1) * float32(h.Width-1)
	fy := clampf(v, 0, 1) * float32(h.Height-1)

	x0 := int(fx)
	y0 := int(fy)
	if x0 >= h.Width-1 {
		x0 = h.Width - 2
	}
	if y0 >= h.Height-1 {
		y0 = h.Height - 2
	}
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	// Lerp along x on both rows, then along y
	near := h.At(x0, y0)*(1-tx) + h.At(x0+1, y0)*tx
	far := h.At(x0, y0+1)*(1-tx) + h.At(x0+1, y0+1)*tx
	return near*(1-ty) + far*ty
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := math32.Sqrt(v.Dot(v))
	if l < 1e-8 {
		return mgl32.Vec3{0, 0, 1}
	}
	return v.Mul(1 / l)
}

func clampf(v, min, max float32) float32 {
	return math32.Max(min, math32.Min(max, v))
}
