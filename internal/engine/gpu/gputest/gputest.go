// Package gputest is an in-memory gpu.Device that records everything it is
// asked to do. It keeps live resource counts so tests can check ownership,
// and it keeps submitted command streams so tests can compare frames.
package gputest

import (
	"fmt"
	"sync"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Counts is the number of live resources per kind.
type Counts struct {
	Buffers    int
	Textures   int
	Samplers   int
	BindGroups int
	Pipelines  int
}

// Total returns the sum of all kinds.
func (c Counts) Total() int {
	return c.Buffers + c.Textures + c.Samplers + c.BindGroups + c.Pipelines
}

// Device implements gpu.Device.
type Device struct {
	mu sync.Mutex

	features   gpu.Feature
	maxSamples int
	queue      *Queue

	live    Counts
	created Counts

	// FailPipelines makes CreatePipeline return an error.
	FailPipelines bool

	problems []string
}

// NewDevice returns a device with the given features that supports up to
// 4 samples.
func NewDevice(features gpu.Feature) *Device {
	d := &Device{features: features, maxSamples: 4}
	d.queue = &Queue{dev: d}
	return d
}

// SetMaxSamples limits the supported sample counts.
func (d *Device) SetMaxSamples(n int) { d.maxSamples = n }

// Live returns the live resource counts.
func (d *Device) Live() Counts {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

// Created returns how many resources were ever created.
func (d *Device) Created() Counts {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}

// Problems lists misuse seen so far: double releases, use after release,
// draws without a pipeline.
func (d *Device) Problems() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.problems...)
}

// Submitted returns every command buffer submitted, oldest first.
func (d *Device) Submitted() [][]Command {
	return d.queue.Submitted()
}

// LastFrame returns the commands of the last submission.
func (d *Device) LastFrame() []Command {
	s := d.queue.Submitted()
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

func (d *Device) problemf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.problems = append(d.problems, fmt.Sprintf(format, args...))
}

func (d *Device) track(kind *int, created *int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	*kind++
	*created++
}

func (d *Device) untrack(kind *int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	*kind--
}

// Features implements gpu.Device.
func (d *Device) Features() gpu.Feature { return d.features }

// SupportsSampleCount implements gpu.Device.
func (d *Device) SupportsSampleCount(_ gpu.TextureFormat, n int) bool {
	return n >= 1 && n <= d.maxSamples
}

// CreateBuffer implements gpu.Device.
func (d *Device) CreateBuffer(desc gpu.BufferDesc) (gpu.Buffer, error) {
	size := desc.Size
	if desc.Contents != nil {
		size = len(desc.Contents)
	}
	if size <= 0 {
		return nil, fmt.Errorf("buffer %q: empty", desc.Label)
	}
	b := &Buffer{res: res{dev: d, label: desc.Label, kind: &d.live.Buffers}, usage: desc.Usage, Data: make([]byte, size)}
	copy(b.Data, desc.Contents)
	d.track(&d.live.Buffers, &d.created.Buffers)
	return b, nil
}

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture(desc gpu.TextureDesc) (gpu.Texture, error) {
	if err := gpu.ValidateTexture(desc); err != nil {
		return nil, err
	}
	t := &Texture{res: res{dev: d, label: desc.Label, kind: &d.live.Textures}, desc: desc}
	if desc.Data != nil {
		t.Data = append([]byte(nil), desc.Data...)
	}
	d.track(&d.live.Textures, &d.created.Textures)
	return t, nil
}

// CreateSampler implements gpu.Device.
func (d *Device) CreateSampler(desc gpu.SamplerDesc) (gpu.Sampler, error) {
	s := &Sampler{res: res{dev: d, label: desc.Label, kind: &d.live.Samplers}, Desc: desc}
	d.track(&d.live.Samplers, &d.created.Samplers)
	return s, nil
}

// CreateBindGroup implements gpu.Device.
func (d *Device) CreateBindGroup(desc gpu.BindGroupDesc) (gpu.BindGroup, error) {
	if err := gpu.ValidateBindGroup(desc); err != nil {
		return nil, err
	}
	g := &BindGroup{res: res{dev: d, label: desc.Label, kind: &d.live.BindGroups}, entries: desc.Entries}
	d.track(&d.live.BindGroups, &d.created.BindGroups)
	return g, nil
}

// CreatePipeline implements gpu.Device.
func (d *Device) CreatePipeline(desc gpu.PipelineDesc) (gpu.Pipeline, error) {
	if d.FailPipelines {
		return nil, fmt.Errorf("pipeline %q: compile failed", desc.Label)
	}
	if desc.PolygonMode == gpu.PolygonLine && !d.features.Has(gpu.FeaturePolygonModeLine) {
		return nil, fmt.Errorf("pipeline %q: line polygon mode not supported", desc.Label)
	}
	if desc.VertexSource == "" || desc.FragmentSource == "" {
		return nil, fmt.Errorf("pipeline %q: missing shader source", desc.Label)
	}
	p := &Pipeline{res: res{dev: d, label: desc.Label, kind: &d.live.Pipelines}, desc: desc}
	d.track(&d.live.Pipelines, &d.created.Pipelines)
	return p, nil
}

// CreateCommandEncoder implements gpu.Device.
func (d *Device) CreateCommandEncoder(label string) gpu.CommandEncoder {
	return &Encoder{dev: d, label: label}
}

// Queue implements gpu.Device.
func (d *Device) Queue() gpu.Queue { return d.queue }
