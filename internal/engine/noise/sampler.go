package noise

import "fmt"

// Sampler evaluates a Source on inclusive lattices.
type Sampler struct {
	src Source
}

// NewSampler wraps a noise source.
func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Sample evaluates width x height points spanning xb and yb, endpoints
// included. Sizes below 2 have no spacing to speak of and panic.
func (s *Sampler) Sample(width, height int, xb, yb Bounds) *Grid {
	if width < 2 || height < 2 {
		panic(fmt.Sprintf("noise: sample grid %dx%d is smaller than 2x2", width, height))
	}
	g := NewGrid(width, height)
	for row := 0; row < height; row++ {
		y := yb.At(float64(row) / float64(height-1))
		for col := 0; col < width; col++ {
			x := xb.At(float64(col) / float64(width-1))
			g.Set(row, col, s.src.Noise2D(x, y))
		}
	}
	return g
}

// SamplePadded evaluates the (res+1)^2 lattice spanning xb and yb plus one
// extra lattice step on every side, giving a (res+3)^2 grid. Rows and
// columns 1..res+1 are exactly the points Sample(res+1, res+1, xb, yb)
// would produce, and the border keeps finite differences defined at the
// tile edges.
func (s *Sampler) SamplePadded(res int, xb, yb Bounds) *Grid {
	if res < 1 {
		panic(fmt.Sprintf("noise: padded resolution %d is below 1", res))
	}
	size := res + 3
	g := NewGrid(size, size)
	for row := 0; row < size; row++ {
		y := yb.At(float64(row-1) / float64(res))
		for col := 0; col < size; col++ {
			x := xb.At(float64(col-1) / float64(res))
			g.Set(row, col, s.src.Noise2D(x, y))
		}
	}
	return g
}
