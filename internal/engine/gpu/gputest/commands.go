package gputest

import (
	"sync"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Op names a recorded command.
type Op string

const (
	OpBeginPass    Op = "begin_pass"
	OpSetPipeline  Op = "set_pipeline"
	OpSetBindGroup Op = "set_bind_group"
	OpSetVertex    Op = "set_vertex_buffer"
	OpSetIndex     Op = "set_index_buffer"
	OpDrawIndexed  Op = "draw_indexed"
	OpEndPass      Op = "end_pass"
)

// Command is one recorded call. Fields not relevant to Op are zero.
type Command struct {
	Op        Op
	Label     string
	Slot      int
	Count     int
	Instances int
	Pass      *gpu.RenderPassDesc
}

// Encoder implements gpu.CommandEncoder.
type Encoder struct {
	dev   *Device
	label string
	cmds  []Command
}

// BeginRenderPass implements gpu.CommandEncoder.
func (e *Encoder) BeginRenderPass(desc gpu.RenderPassDesc) gpu.RenderPass {
	checkLive(desc.Color.View, "render pass color")
	if desc.Color.Resolve != nil {
		checkLive(desc.Color.Resolve, "render pass resolve")
		if desc.Color.View.SampleCount() <= 1 {
			e.dev.problemf("resolve from single-sampled %q", labelOf(desc.Color.View))
		}
	}
	if desc.Depth != nil {
		checkLive(desc.Depth.View, "render pass depth")
		if desc.Depth.View.SampleCount() != desc.Color.View.SampleCount() {
			e.dev.problemf("depth and color sample counts differ")
		}
	}
	d := desc
	e.cmds = append(e.cmds, Command{Op: OpBeginPass, Label: desc.Label, Pass: &d})
	return &Pass{enc: e}
}

// Finish implements gpu.CommandEncoder.
func (e *Encoder) Finish() gpu.CommandBuffer {
	return append([]Command(nil), e.cmds...)
}

// Pass implements gpu.RenderPass.
type Pass struct {
	enc      *Encoder
	pipeline gpu.Pipeline
	ended    bool
}

func (p *Pass) record(c Command) {
	if p.ended {
		p.enc.dev.problemf("%s after end of pass", c.Op)
	}
	p.enc.cmds = append(p.enc.cmds, c)
}

// SetPipeline implements gpu.RenderPass.
func (p *Pass) SetPipeline(pl gpu.Pipeline) {
	checkLive(pl, "set pipeline")
	p.pipeline = pl
	p.record(Command{Op: OpSetPipeline, Label: labelOf(pl)})
}

// SetBindGroup implements gpu.RenderPass.
func (p *Pass) SetBindGroup(index int, g gpu.BindGroup) {
	checkLive(g, "set bind group")
	p.record(Command{Op: OpSetBindGroup, Label: labelOf(g), Slot: index})
}

// SetVertexBuffer implements gpu.RenderPass.
func (p *Pass) SetVertexBuffer(slot int, b gpu.Buffer) {
	checkLive(b, "set vertex buffer")
	p.record(Command{Op: OpSetVertex, Label: labelOf(b), Slot: slot})
}

// SetIndexBuffer implements gpu.RenderPass.
func (p *Pass) SetIndexBuffer(b gpu.Buffer, _ gpu.IndexFormat) {
	checkLive(b, "set index buffer")
	p.record(Command{Op: OpSetIndex, Label: labelOf(b)})
}

// DrawIndexed implements gpu.RenderPass.
func (p *Pass) DrawIndexed(indexCount, instanceCount int) {
	if p.pipeline == nil {
		p.enc.dev.problemf("draw without pipeline")
	}
	p.record(Command{Op: OpDrawIndexed, Count: indexCount, Instances: instanceCount})
}

// End implements gpu.RenderPass.
func (p *Pass) End() {
	p.record(Command{Op: OpEndPass})
	p.ended = true
}

// Write is one recorded queue write.
type Write struct {
	Label  string
	Offset int
	Data   []byte
}

// Queue implements gpu.Queue.
type Queue struct {
	dev *Device

	mu        sync.Mutex
	writes    []Write
	submitted [][]Command
}

// WriteBuffer implements gpu.Queue.
func (q *Queue) WriteBuffer(b gpu.Buffer, offset int, data []byte) {
	checkLive(b, "write buffer")
	if fb, ok := b.(*Buffer); ok {
		if offset+len(data) > len(fb.Data) {
			q.dev.problemf("write of %d bytes at %d overflows %q", len(data), offset, fb.label)
		} else {
			copy(fb.Data[offset:], data)
		}
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.writes = append(q.writes, Write{Label: labelOf(b), Offset: offset, Data: append([]byte(nil), data...)})
}

// Submit implements gpu.Queue.
func (q *Queue) Submit(cmds ...gpu.CommandBuffer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, c := range cmds {
		if rec, ok := c.([]Command); ok {
			q.submitted = append(q.submitted, rec)
		}
	}
}

// Writes returns all buffer writes, oldest first.
func (q *Queue) Writes() []Write {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Write(nil), q.writes...)
}

// Submitted returns all submitted command buffers, oldest first.
func (q *Queue) Submitted() [][]Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([][]Command(nil), q.submitted...)
}

// Draws filters draw commands out of a frame.
func Draws(frame []Command) []Command {
	var out []Command
	for _, c := range frame {
		if c.Op == OpDrawIndexed {
			out = append(out, c)
		}
	}
	return out
}
