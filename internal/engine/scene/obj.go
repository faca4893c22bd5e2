package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/assets"
	"github.com/Faultbox/terrain-playground/internal/engine/camera"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Instance lattice of the Obj scene.
const (
	objLayers  = 3
	objSpacing = 300
)

// ObjInstances returns the (2·layers+1)² lattice of model transforms. Each
// instance is tilted about X and Y in proportion to its distance from the
// origin, reaching π/4 at the rim; the origin instance is untilted.
func ObjInstances() []Instance {
	extent := float32(objSpacing * objLayers)
	var out []Instance
	for y := -objLayers; y <= objLayers; y++ {
		for x := -objLayers; x <= objLayers; x++ {
			pos := mgl32.Vec3{float32(x * objSpacing), float32(y * objSpacing), 0}
			rot := mgl32.Ident4()
			if pos != (mgl32.Vec3{}) {
				rot = mgl32.HomogRotate3DX(math.Pi / 4 * pos.X() / extent).
					Mul4(mgl32.HomogRotate3DY(math.Pi / 4 * pos.Y() / extent))
			}
			out = append(out, Instance{Model: mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot)})
		}
	}
	return out
}

// ObjScene draws one model many times.
type ObjScene struct {
	r         *renderer
	model     *Model
	modelName string
	lastDraws int
}

// NewObjScene uploads opts.Model, or the bundled model when it is nil.
func NewObjScene(dev gpu.Device, cfg gpu.SurfaceConfig, sampleCount int, opts Options) (*ObjScene, error) {
	log := opts.logger()

	src := opts.Model
	if src == nil {
		var err error
		src, err = assets.LoadModel(assets.NewManager(), assets.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("obj scene: %w", err)
		}
	}

	r, err := newRenderer(dev, cfg, sampleCount, KindObj, camera.ObjEye, pipelineSource{
		label:        "obj",
		vertex:       opts.Shaders.ObjVertex,
		fragment:     opts.Shaders.ObjFragment,
		wireFragment: opts.Shaders.WireFragment,
		textures:     map[string]int{"diffuseMap": 0},
	}, ObjInstances(), log)
	if err != nil {
		return nil, fmt.Errorf("obj scene: %w", err)
	}

	model, err := NewModel(dev, src)
	if err != nil {
		r.release()
		return nil, fmt.Errorf("obj scene: %w", err)
	}

	s := &ObjScene{r: r, model: model, modelName: src.Name}
	verts, tris := model.Counts()
	log.Info("obj scene ready",
		zap.String("model", src.Name),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("vertices", verts),
		zap.Int("triangles", tris))
	return s, nil
}

// Resize reallocates the render targets; zero sizes are ignored.
func (s *ObjScene) Resize(width, height int, dev gpu.Device, cfg gpu.SurfaceConfig) error {
	return s.r.resize(width, height, dev)
}

// Render draws one frame into target.
func (s *ObjScene) Render(v View, target gpu.Texture, aspect float32, dev gpu.Device, q gpu.Queue) {
	s.lastDraws = s.r.frame(v, target, aspect, dev, q, func(p gpu.RenderPass) int {
		return s.r.drawModel(p, s.model)
	})
}

// Stats describes the scene.
func (s *ObjScene) Stats() Stats {
	st := s.r.stats()
	st.Meshes = len(s.model.Meshes)
	st.Materials = len(s.model.Materials)
	st.DrawCalls = s.lastDraws
	st.Vertices, st.Triangles = s.model.Counts()
	return st
}

// ModelName returns the asset name of the displayed model.
func (s *ObjScene) ModelName() string { return s.modelName }

// Release frees every GPU resource of the scene.
func (s *ObjScene) Release() {
	if s.model != nil {
		s.model.Release()
		s.model = nil
	}
	if s.r != nil {
		s.r.release()
		s.r = nil
	}
}
