// Package noise samples a seeded fractal noise field onto regular grids.
package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

// Source is a deterministic 2D scalar field.
type Source interface {
	Noise2D(x, y float64) float64
}

// Params shapes the fractal sum. Each octave doubles (Lacunarity) the
// frequency and halves (Persistence) the amplitude of the previous one.
type Params struct {
	Octaves     int32
	Persistence float64
	Lacunarity  float64
}

// DefaultParams returns six octaves at persistence 0.5 and lacunarity 2.
func DefaultParams() Params {
	return Params{
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// domainOffset shifts samples before they reach go-perlin, which adds
// 4096 and truncates toward zero; below that the lattice fraction turns
// negative and the field jumps at cell edges. The offset is a multiple of
// the 256-cell lattice period and keeps the usable range well past any
// terrain grid.
const domainOffset = 4096

// Perlin is fractal Brownian motion over Perlin noise.
type Perlin struct {
	seed   int64
	params Params
	gen    *perlin.Perlin
}

// NewPerlin builds an FBM field with DefaultParams.
func NewPerlin(seed int64) *Perlin {
	return NewPerlinWithParams(seed, DefaultParams())
}

// NewPerlinWithParams builds an FBM field. Params that cannot form a
// convergent sum panic.
func NewPerlinWithParams(seed int64, p Params) *Perlin {
	if p.Octaves < 1 || p.Persistence <= 0 || p.Lacunarity <= 0 {
		panic(fmt.Sprintf("noise: invalid params %+v", p))
	}
	// go-perlin divides each octave by alpha, so alpha is 1/persistence.
	return &Perlin{
		seed:   seed,
		params: p,
		gen:    perlin.NewPerlin(1/p.Persistence, p.Lacunarity, p.Octaves, seed),
	}
}

// Noise2D implements Source.
func (p *Perlin) Noise2D(x, y float64) float64 {
	return p.gen.Noise2D(x+domainOffset, y+domainOffset)
}

// Seed returns the seed the field was built with.
func (p *Perlin) Seed() int64 { return p.seed }

// Params returns the fractal parameters.
func (p *Perlin) Params() Params { return p.params }
