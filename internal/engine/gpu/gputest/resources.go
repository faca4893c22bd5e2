package gputest

import "github.com/Faultbox/terrain-playground/internal/engine/gpu"

// res is the bookkeeping shared by every fake resource.
type res struct {
	dev      *Device
	label    string
	kind     *int
	released bool
}

// Label returns the label the resource was created with.
func (r *res) Label() string { return r.label }

// Released reports whether Release was called.
func (r *res) Released() bool { return r.released }

// Release implements gpu.Resource.
func (r *res) Release() {
	if r.released {
		r.dev.problemf("double release of %q", r.label)
		return
	}
	r.released = true
	r.dev.untrack(r.kind)
}

func (r *res) checkLive(use string) {
	if r.released {
		r.dev.problemf("%s uses released %q", use, r.label)
	}
}

// Buffer implements gpu.Buffer. Data reflects every queue write.
type Buffer struct {
	res
	usage gpu.BufferUsage
	Data  []byte
}

// Size implements gpu.Buffer.
func (b *Buffer) Size() int { return len(b.Data) }

// Usage implements gpu.Buffer.
func (b *Buffer) Usage() gpu.BufferUsage { return b.usage }

// Texture implements gpu.Texture. Data holds the initial upload.
type Texture struct {
	res
	desc gpu.TextureDesc
	Data []byte
}

// Width implements gpu.Texture.
func (t *Texture) Width() int { return t.desc.Width }

// Height implements gpu.Texture.
func (t *Texture) Height() int { return t.desc.Height }

// Format implements gpu.Texture.
func (t *Texture) Format() gpu.TextureFormat { return t.desc.Format }

// SampleCount implements gpu.Texture.
func (t *Texture) SampleCount() int { return t.desc.SampleCount }

// Sampler implements gpu.Sampler.
type Sampler struct {
	res
	Desc gpu.SamplerDesc
}

// BindGroup implements gpu.BindGroup.
type BindGroup struct {
	res
	entries []gpu.BindGroupEntry
}

// Entries implements gpu.BindGroup.
func (g *BindGroup) Entries() []gpu.BindGroupEntry { return g.entries }

// Pipeline implements gpu.Pipeline.
type Pipeline struct {
	res
	desc gpu.PipelineDesc
}

// Desc implements gpu.Pipeline.
func (p *Pipeline) Desc() gpu.PipelineDesc { return p.desc }

// Label helpers for recorded commands.
func labelOf(v any) string {
	if l, ok := v.(interface{ Label() string }); ok {
		return l.Label()
	}
	return ""
}

func checkLive(v any, use string) {
	if l, ok := v.(interface{ checkLive(string) }); ok {
		l.checkLive(use)
	}
}
