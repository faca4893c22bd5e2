package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/camera"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// ClearColor is the background of both scenes.
var ClearColor = gpu.Color{R: 0.9, G: 0.9, B: 0.8, A: 1}

// renderer owns what every scene has: pipelines, render targets, the
// camera uniform and the instance buffer.
type renderer struct {
	log     *zap.Logger
	kind    Kind
	rig     camera.Rig
	format  gpu.TextureFormat
	samples int

	pipes   pipelines
	targets *targets

	camera       gpu.Buffer
	cameraGroup  gpu.BindGroup
	instances    gpu.Buffer
	numInstances int
}

func newRenderer(dev gpu.Device, cfg gpu.SurfaceConfig, samples int, kind Kind, eye mgl32.Vec3,
	src pipelineSource, instances []Instance, log *zap.Logger) (*renderer, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("%s scene: no instances", kind)
	}
	if samples < 1 {
		samples = 1
	}
	r := &renderer{
		log:          log,
		kind:         kind,
		rig:          camera.NewRig(eye),
		format:       cfg.Format,
		samples:      samples,
		numInstances: len(instances),
	}

	var err error
	if r.pipes, err = newPipelines(dev, src, cfg.Format, samples); err != nil {
		return nil, err
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		if r.targets, err = newTargets(dev, cfg.Width, cfg.Height, cfg.Format, samples); err != nil {
			r.release()
			return nil, err
		}
	}

	r.camera, err = dev.CreateBuffer(gpu.BufferDesc{
		Label: "camera",
		Usage: gpu.BufferUniform | gpu.BufferCopyDst,
		Size:  CameraUniformSize,
	})
	if err != nil {
		r.release()
		return nil, fmt.Errorf("camera buffer: %w", err)
	}
	r.cameraGroup, err = dev.CreateBindGroup(gpu.BindGroupDesc{
		Label:   "camera",
		Layout:  CameraLayout,
		Entries: []gpu.BindGroupEntry{{Binding: 0, Buffer: r.camera}},
	})
	if err != nil {
		r.release()
		return nil, fmt.Errorf("camera bind group: %w", err)
	}

	r.instances, err = dev.CreateBuffer(gpu.BufferDesc{
		Label:    "instances",
		Usage:    gpu.BufferVertex,
		Contents: gpu.BytesOf(instances),
	})
	if err != nil {
		r.release()
		return nil, fmt.Errorf("instance buffer: %w", err)
	}

	log.Debug("renderer ready",
		zap.Stringer("scene", kind),
		zap.Int("samples", samples),
		zap.Int("instances", len(instances)),
		zap.Bool("wireframe", r.pipes.wireframe != nil))
	return r, nil
}

// resize reallocates the render targets. A zero dimension (a minimised
// window) keeps the old targets.
func (r *renderer) resize(width, height int, dev gpu.Device) error {
	if width == 0 || height == 0 {
		return nil
	}
	if r.targets != nil && r.targets.width == width && r.targets.height == height {
		return nil
	}
	if r.targets != nil {
		r.targets.release()
		r.targets = nil
	}
	t, err := newTargets(dev, width, height, r.format, r.samples)
	if err != nil {
		return fmt.Errorf("%s scene resize: %w", r.kind, err)
	}
	r.targets = t
	return nil
}

// frame records and submits one render pass. draw issues the scene's
// geometry and runs once per pipeline.
func (r *renderer) frame(v View, target gpu.Texture, aspect float32, dev gpu.Device, q gpu.Queue, draw func(gpu.RenderPass) int) int {
	if r.targets == nil || r.targets.width != target.Width() || r.targets.height != target.Height() {
		if err := r.resize(target.Width(), target.Height(), dev); err != nil || r.targets == nil {
			r.log.Warn("skipping frame without render targets", zap.Error(err))
			return 0
		}
	}

	vp := r.rig.ViewProjection(v.Camera, v.Zoom, aspect)
	q.WriteBuffer(r.camera, 0, gpu.BytesOf(vp[:]))

	color := gpu.ColorAttachment{View: target, Clear: ClearColor, Store: gpu.StoreStore}
	if r.targets.msaa != nil {
		color = gpu.ColorAttachment{View: r.targets.msaa, Resolve: target, Clear: ClearColor, Store: gpu.StoreDiscard}
	}

	enc := dev.CreateCommandEncoder(r.kind.String())
	pass := enc.BeginRenderPass(gpu.RenderPassDesc{
		Label: r.kind.String(),
		Color: color,
		Depth: &gpu.DepthAttachment{View: r.targets.depth, Clear: 1},
	})

	pass.SetPipeline(r.pipes.standard)
	pass.SetBindGroup(cameraGroup, r.cameraGroup)
	draws := draw(pass)

	if v.Wireframe && r.pipes.wireframe != nil {
		pass.SetPipeline(r.pipes.wireframe)
		pass.SetBindGroup(cameraGroup, r.cameraGroup)
		draws += draw(pass)
	}

	pass.End()
	q.Submit(enc.Finish())
	return draws
}

// drawModel draws every mesh of m instanced over all instances and returns
// the number of draw calls.
func (r *renderer) drawModel(pass gpu.RenderPass, m *Model) int {
	for _, mesh := range m.Meshes {
		pass.SetBindGroup(materialGroup, m.Materials[mesh.Material].BindGroup)
		pass.SetVertexBuffer(0, mesh.VertexBuffer)
		pass.SetVertexBuffer(1, r.instances)
		pass.SetIndexBuffer(mesh.IndexBuffer, gpu.IndexUint32)
		pass.DrawIndexed(mesh.NumElements, r.numInstances)
	}
	return len(m.Meshes)
}

func (r *renderer) stats() Stats {
	s := Stats{
		Kind:               r.kind,
		Instances:          r.numInstances,
		SampleCount:        r.samples,
		WireframeAvailable: r.pipes.wireframe != nil,
	}
	if r.targets != nil {
		s.Width, s.Height = r.targets.width, r.targets.height
	}
	return s
}

func (r *renderer) release() {
	r.pipes.release()
	if r.targets != nil {
		r.targets.release()
		r.targets = nil
	}
	releaseAll(r.cameraGroup, r.camera, r.instances)
	r.cameraGroup, r.camera, r.instances = nil, nil, nil
}
