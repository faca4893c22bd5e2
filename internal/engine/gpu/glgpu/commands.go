package glgpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Encoder records render passes as deferred GL calls.
type Encoder struct {
	dev   *Device
	label string
	ops   []func()
}

// commandBuffer is a finished recording.
type commandBuffer struct {
	label string
	ops   []func()
}

// BeginRenderPass starts recording a pass.
func (e *Encoder) BeginRenderPass(desc gpu.RenderPassDesc) gpu.RenderPass {
	p := &Pass{enc: e, desc: desc}
	e.ops = append(e.ops, p.begin)
	return p
}

// Finish returns the recording. The encoder must not be used afterwards.
func (e *Encoder) Finish() gpu.CommandBuffer {
	cb := &commandBuffer{label: e.label, ops: e.ops}
	e.ops = nil
	return cb
}

// Pass records one render pass.
type Pass struct {
	enc  *Encoder
	desc gpu.RenderPassDesc

	// Execution state, valid only while the recording runs.
	target   func()
	pipeline *Pipeline
	index    *Buffer
	indexFmt gpu.IndexFormat
}

func (p *Pass) record(op func()) { p.enc.ops = append(p.enc.ops, op) }

func (p *Pass) begin() {
	dev := p.enc.dev
	var color, depth *Texture
	if p.desc.Color.View != nil {
		color = p.desc.Color.View.(*Texture)
	}
	if p.desc.Depth != nil {
		depth = p.desc.Depth.View.(*Texture)
	}
	fb, err := dev.framebufferFor(color, depth)
	if err != nil {
		dev.log.Error("render pass target", zap.String("pass", p.desc.Label), zap.Error(err))
		p.target = nil
		return
	}
	p.target = fb.BindWithViewport()

	c := p.desc.Color.Clear
	var clearDepth float64 = 1
	if p.desc.Depth != nil {
		clearDepth = float64(p.desc.Depth.Clear)
	}
	gl.Disable(gl.SCISSOR_TEST)
	gl.ColorMask(true, true, true, true)
	fb.Clear(float32(c.R), float32(c.G), float32(c.B), float32(c.A), clearDepth)
}

func (p *Pass) SetPipeline(pl gpu.Pipeline) {
	pipeline := pl.(*Pipeline)
	p.record(func() {
		p.pipeline = pipeline
		pipeline.applyState()
	})
}

func (p *Pass) SetBindGroup(index int, g gpu.BindGroup) {
	group := g.(*BindGroup)
	p.record(group.apply)
}

func (p *Pass) SetVertexBuffer(slot int, b gpu.Buffer) {
	buf := b.(*Buffer)
	p.record(func() {
		if p.pipeline != nil {
			p.pipeline.bindVertexBuffer(slot, buf)
		}
	})
}

func (p *Pass) SetIndexBuffer(b gpu.Buffer, f gpu.IndexFormat) {
	buf := b.(*Buffer)
	p.record(func() {
		p.index, p.indexFmt = buf, f
	})
}

func (p *Pass) DrawIndexed(indexCount, instanceCount int) {
	p.record(func() {
		if p.target == nil || p.pipeline == nil || p.index == nil {
			return
		}
		xtype, _ := glIndexType(p.indexFmt)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.index.id)
		gl.DrawElementsInstanced(gl.TRIANGLES, int32(indexCount), xtype, unsafe.Pointer(nil), int32(instanceCount))
	})
}

// End resolves the color target if requested and restores default state.
func (p *Pass) End() {
	p.record(p.end)
}

func (p *Pass) end() {
	if p.target == nil {
		return
	}
	dev := p.enc.dev
	if p.desc.Color.Resolve != nil {
		if err := p.resolve(); err != nil {
			dev.log.Error("resolve", zap.String("pass", p.desc.Label), zap.Error(err))
		}
	}

	// StoreDiscard needs glInvalidateFramebuffer (GL 4.3); on 4.1 the
	// attachment contents are simply left in place.

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.FRAMEBUFFER_SRGB)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	p.target()
	p.target, p.pipeline, p.index = nil, nil, nil
}

func (p *Pass) resolve() error {
	dev := p.enc.dev
	src, err := dev.framebufferFor(p.desc.Color.View.(*Texture), nil)
	if err != nil {
		return err
	}
	dst, err := dev.framebufferFor(p.desc.Color.Resolve.(*Texture), nil)
	if err != nil {
		return err
	}
	src.ResolveTo(dst)
	return nil
}

// Queue executes recordings in order.
type Queue struct {
	dev *Device
}

// WriteBuffer uploads data immediately. GL orders it before any later
// submission that reads the buffer.
func (q *Queue) WriteBuffer(b gpu.Buffer, offset int, data []byte) {
	buf := b.(*Buffer)
	if len(data) == 0 {
		return
	}
	if offset+len(data) > buf.size {
		q.dev.log.Error("buffer write out of range",
			zap.String("label", buf.label), zap.Int("offset", offset), zap.Int("len", len(data)), zap.Int("size", buf.size))
		return
	}
	target := bufferTarget(buf.usage)
	gl.BindVertexArray(0)
	gl.BindBuffer(target, buf.id)
	gl.BufferSubData(target, offset, len(data), unsafe.Pointer(&data[0]))
	gl.BindBuffer(target, 0)
}

// Submit runs the recorded commands.
func (q *Queue) Submit(cmds ...gpu.CommandBuffer) {
	for _, c := range cmds {
		cb := c.(*commandBuffer)
		for _, op := range cb.ops {
			op()
		}
		q.dev.noteErrors("submit " + cb.label)
	}
}
