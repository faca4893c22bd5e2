package scene

import (
	"fmt"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// pipelineSource names the shaders and texture slots of one scene.
type pipelineSource struct {
	label        string
	vertex       string
	fragment     string
	wireFragment string
	textures     map[string]int
}

// pipelines holds the fill pipeline and, when the device can rasterize
// lines, the translucent wireframe overlay.
type pipelines struct {
	standard  gpu.Pipeline
	wireframe gpu.Pipeline
}

func (p *pipelines) release() {
	releaseAll(p.standard, p.wireframe)
	p.standard, p.wireframe = nil, nil
}

func standardPipelineDesc(src pipelineSource, color gpu.TextureFormat, samples int) gpu.PipelineDesc {
	return gpu.PipelineDesc{
		Label:          src.label,
		VertexSource:   src.vertex,
		FragmentSource: src.fragment,
		Buffers:        []gpu.VertexBufferLayout{vertexLayout(), instanceLayout()},
		UniformBlocks:  map[string]int{"Camera": 0},
		Textures:       src.textures,
		ColorFormat:    color,
		DepthFormat:    gpu.FormatDepth32Float,
		SampleCount:    samples,
		PolygonMode:    gpu.PolygonFill,
		CullMode:       gpu.CullBack,
		DepthWrite:     true,
		DepthCompare:   gpu.CompareLess,
		Blend:          gpu.BlendReplace,
	}
}

func wireframePipelineDesc(src pipelineSource, color gpu.TextureFormat, samples int) gpu.PipelineDesc {
	d := standardPipelineDesc(src, color, samples)
	d.Label = src.label + " wireframe"
	d.FragmentSource = src.wireFragment
	d.Textures = nil
	d.PolygonMode = gpu.PolygonLine
	d.Blend = gpu.BlendAlpha
	return d
}

// newPipelines builds the scene pipelines. A device without line polygon
// mode yields no wireframe pipeline and no error.
func newPipelines(dev gpu.Device, src pipelineSource, color gpu.TextureFormat, samples int) (pipelines, error) {
	var p pipelines
	var err error
	p.standard, err = dev.CreatePipeline(standardPipelineDesc(src, color, samples))
	if err != nil {
		return p, fmt.Errorf("%s pipeline: %w", src.label, err)
	}
	if !dev.Features().Has(gpu.FeaturePolygonModeLine) {
		return p, nil
	}
	p.wireframe, err = dev.CreatePipeline(wireframePipelineDesc(src, color, samples))
	if err != nil {
		p.release()
		return p, fmt.Errorf("%s wireframe pipeline: %w", src.label, err)
	}
	return p, nil
}

// targets are the depth buffer and, with MSAA, the multisampled color
// buffer that resolves into the surface.
type targets struct {
	depth  gpu.Texture
	msaa   gpu.Texture
	width  int
	height int
}

func newTargets(dev gpu.Device, width, height int, color gpu.TextureFormat, samples int) (*targets, error) {
	t := &targets{width: width, height: height}
	var err error
	t.depth, err = dev.CreateTexture(gpu.TextureDesc{
		Label:       "depth",
		Width:       width,
		Height:      height,
		Format:      gpu.FormatDepth32Float,
		SampleCount: samples,
		Usage:       gpu.TextureRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("depth target: %w", err)
	}
	if samples <= 1 {
		return t, nil
	}
	t.msaa, err = dev.CreateTexture(gpu.TextureDesc{
		Label:       "msaa color",
		Width:       width,
		Height:      height,
		Format:      color,
		SampleCount: samples,
		Usage:       gpu.TextureRenderAttachment,
	})
	if err != nil {
		t.release()
		return nil, fmt.Errorf("msaa target: %w", err)
	}
	return t, nil
}

func (t *targets) release() {
	releaseAll(t.depth, t.msaa)
	t.depth, t.msaa = nil, nil
}
