package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/camera"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/noise"
	"github.com/Faultbox/terrain-playground/internal/engine/terrain"
)

// TerrainScene draws a square grid of chunks cut from one noise field.
type TerrainScene struct {
	r         *renderer
	chunks    []*Chunk
	opts      TerrainOptions
	lastDraws int
}

// NewTerrainScene generates and uploads (2·radius+1)² chunks.
func NewTerrainScene(dev gpu.Device, cfg gpu.SurfaceConfig, sampleCount int, opts Options) (*TerrainScene, error) {
	log := opts.logger()
	to := opts.Terrain
	if to.Radius < 0 {
		return nil, fmt.Errorf("terrain scene: negative radius %d", to.Radius)
	}

	r, err := newRenderer(dev, cfg, sampleCount, KindTerrain, camera.TerrainEye, pipelineSource{
		label:        "terrain",
		vertex:       opts.Shaders.TerrainVertex,
		fragment:     opts.Shaders.TerrainFragment,
		wireFragment: opts.Shaders.WireFragment,
		textures:     map[string]int{"heightMap": 0, "normalMap": 1},
	}, []Instance{{Model: mgl32.Ident4()}}, log)
	if err != nil {
		return nil, fmt.Errorf("terrain scene: %w", err)
	}

	s := &TerrainScene{r: r, opts: to}
	src := noise.NewPerlinWithParams(to.Seed, to.Noise)
	for _, c := range terrain.GridCoords(to.Radius) {
		data := terrain.BuildChunk(c[0], c[1], src, to.Chunk)
		chunk, err := NewChunk(dev, data, TerrainMaterialLayout)
		if err != nil {
			s.Release()
			return nil, fmt.Errorf("terrain scene: %w", err)
		}
		s.chunks = append(s.chunks, chunk)
	}

	log.Info("terrain scene ready",
		zap.Int64("seed", to.Seed),
		zap.Int("radius", to.Radius),
		zap.Int("chunks", len(s.chunks)),
		zap.Int("resolution", to.Chunk.Resolution))
	return s, nil
}

// Resize reallocates the render targets; zero sizes are ignored.
func (s *TerrainScene) Resize(width, height int, dev gpu.Device, cfg gpu.SurfaceConfig) error {
	return s.r.resize(width, height, dev)
}

// Render draws one frame into target, one material bind group per chunk.
func (s *TerrainScene) Render(v View, target gpu.Texture, aspect float32, dev gpu.Device, q gpu.Queue) {
	s.lastDraws = s.r.frame(v, target, aspect, dev, q, func(p gpu.RenderPass) int {
		n := 0
		for _, c := range s.chunks {
			n += s.r.drawModel(p, c.Model)
		}
		return n
	})
}

// Chunks returns the uploaded chunks in grid order.
func (s *TerrainScene) Chunks() []*Chunk { return s.chunks }

// Options returns the terrain parameters the scene was built with.
func (s *TerrainScene) Options() TerrainOptions { return s.opts }

// Stats describes the scene.
func (s *TerrainScene) Stats() Stats {
	st := s.r.stats()
	st.Chunks = len(s.chunks)
	st.DrawCalls = s.lastDraws
	for _, c := range s.chunks {
		st.Meshes += len(c.Model.Meshes)
		st.Materials += len(c.Model.Materials)
		v, t := c.Model.Counts()
		st.Vertices += v
		st.Triangles += t
	}
	return st
}

// Release frees every GPU resource of the scene.
func (s *TerrainScene) Release() {
	for _, c := range s.chunks {
		c.Release()
	}
	s.chunks = nil
	if s.r != nil {
		s.r.release()
		s.r = nil
	}
}
