package noise

import "math"

// Bounds is a closed world-space interval.
type Bounds struct {
	Min, Max float64
}

// At returns the point a fraction t along the interval. t=0 yields Min
// and t=1 yields Max exactly, so intervals sharing an endpoint agree on it
// bit for bit. t outside [0,1] extrapolates.
func (b Bounds) At(t float64) float64 {
	return b.Min*(1-t) + b.Max*t
}

// Grid is a row-major block of samples. Rows follow y, columns follow x.
type Grid struct {
	Width  int
	Height int
	Values []float64
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the sample at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.Values[row*g.Width+col]
}

// Set stores a sample at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.Values[row*g.Width+col] = v
}

// Inner returns a copy without the one-sample border.
func (g *Grid) Inner() *Grid {
	if g.Width < 3 || g.Height < 3 {
		panic("noise: grid too small to strip a border")
	}
	inner := NewGrid(g.Width-2, g.Height-2)
	for row := 0; row < inner.Height; row++ {
		copy(inner.Values[row*inner.Width:(row+1)*inner.Width],
			g.Values[(row+1)*g.Width+1:(row+1)*g.Width+1+inner.Width])
	}
	return inner
}

// MinMax returns the smallest and largest sample.
func (g *Grid) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range g.Values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
