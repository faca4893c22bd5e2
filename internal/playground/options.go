// Package playground drives the two demo scenes: it owns the controls,
// the scene dispatcher and the presentation surface, and turns input
// events into scene switches, control changes and frames.
package playground

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrain-playground/internal/config"
	"github.com/Faultbox/terrain-playground/internal/engine/noise"
	"github.com/Faultbox/terrain-playground/internal/engine/scene"
	"github.com/Faultbox/terrain-playground/internal/engine/terrain"
)

// TerrainOptions converts the terrain config section into scene options.
func TerrainOptions(c config.TerrainConfig) scene.TerrainOptions {
	return scene.TerrainOptions{
		Seed:   c.Seed,
		Radius: c.GridRadius,
		Chunk: terrain.ChunkParams{
			Resolution: c.Resolution,
			ChunkWidth: c.ChunkWidth,
			ZScale:     mgl32.Vec3{1, 1, c.ZScale},
			NoiseScale: c.NoiseScale,
		},
		Noise: noise.Params{
			Octaves:     c.Octaves,
			Persistence: c.Persistence,
			Lacunarity:  c.Lacunarity,
		},
	}
}
