package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/shader"
)

// Pipeline is a linked program, a VAO and fixed-function state.
type Pipeline struct {
	dev     *Device
	program uint32
	vao     uint32
	desc    gpu.PipelineDesc
}

// CreatePipeline compiles and links the pipeline's shaders.
func (d *Device) CreatePipeline(desc gpu.PipelineDesc) (gpu.Pipeline, error) {
	if desc.PolygonMode == gpu.PolygonLine && !d.features.Has(gpu.FeaturePolygonModeLine) {
		return nil, fmt.Errorf("pipeline %q: line polygon mode not supported", desc.Label)
	}
	if desc.SampleCount > 1 && !d.SupportsSampleCount(desc.ColorFormat, desc.SampleCount) {
		return nil, fmt.Errorf("pipeline %q: %d samples not supported", desc.Label, desc.SampleCount)
	}

	program, err := shader.CompileProgram(shader.Source{
		Label:    desc.Label,
		Vertex:   desc.VertexSource,
		Fragment: desc.FragmentSource,
	})
	if err != nil {
		return nil, err
	}
	for name, binding := range desc.UniformBlocks {
		if err := shader.BindUniformBlock(program, name, binding); err != nil {
			gl.DeleteProgram(program)
			return nil, fmt.Errorf("pipeline %q: %w", desc.Label, err)
		}
	}
	for name, unit := range desc.Textures {
		shader.BindSampler(program, name, unit)
	}

	p := &Pipeline{dev: d, program: program, desc: desc}
	gl.GenVertexArrays(1, &p.vao)
	d.stats.Pipelines++
	d.log.Debug("pipeline created", zap.String("label", desc.Label), zap.Int("samples", desc.SampleCount))
	return p, nil
}

func (p *Pipeline) Desc() gpu.PipelineDesc { return p.desc }

// Release deletes the program and VAO.
func (p *Pipeline) Release() {
	if p.program == 0 {
		p.dev.log.Warn("pipeline released twice", zap.String("label", p.desc.Label))
		return
	}
	gl.DeleteProgram(p.program)
	gl.DeleteVertexArrays(1, &p.vao)
	p.program, p.vao = 0, 0
	p.dev.stats.Pipelines--
}

// applyState sets program and fixed-function state.
func (p *Pipeline) applyState() {
	gl.UseProgram(p.program)
	gl.BindVertexArray(p.vao)

	if p.desc.DepthFormat != gpu.FormatUndefined {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(glCompare(p.desc.DepthCompare))
		gl.DepthMask(p.desc.DepthWrite)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if p.desc.CullMode == gpu.CullBack {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	if p.desc.PolygonMode == gpu.PolygonLine {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if p.desc.Blend == gpu.BlendAlpha {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}

	if p.desc.SampleCount > 1 {
		gl.Enable(gl.MULTISAMPLE)
	}
	if p.desc.ColorFormat.IsSRGB() {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
}

// bindVertexBuffer points the attributes of slot at b.
func (p *Pipeline) bindVertexBuffer(slot int, b *Buffer) {
	if slot >= len(p.desc.Buffers) {
		return
	}
	layout := p.desc.Buffers[slot]
	var divisor uint32
	if layout.StepMode == gpu.StepInstance {
		divisor = 1
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	for _, a := range layout.Attributes {
		loc := uint32(a.Location)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, int32(a.Format.Components()), gl.FLOAT, false, int32(layout.Stride), uintptr(a.Offset))
		gl.VertexAttribDivisor(loc, divisor)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}
