package glgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/framebuffer"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Buffer is a GL buffer object.
type Buffer struct {
	dev   *Device
	id    uint32
	size  int
	usage gpu.BufferUsage
	label string
}

func bufferTarget(u gpu.BufferUsage) uint32 {
	switch {
	case u&gpu.BufferIndex != 0:
		return gl.ELEMENT_ARRAY_BUFFER
	case u&gpu.BufferUniform != 0:
		return gl.UNIFORM_BUFFER
	}
	return gl.ARRAY_BUFFER
}

// CreateBuffer allocates a buffer, initialised from desc.Contents if set.
func (d *Device) CreateBuffer(desc gpu.BufferDesc) (gpu.Buffer, error) {
	size := desc.Size
	if desc.Contents != nil {
		size = len(desc.Contents)
	}
	if size <= 0 {
		return nil, fmt.Errorf("buffer %q: size %d", desc.Label, size)
	}

	b := &Buffer{dev: d, size: size, usage: desc.Usage, label: desc.Label}
	target := bufferTarget(desc.Usage)
	usage := uint32(gl.STATIC_DRAW)
	if desc.Usage&gpu.BufferCopyDst != 0 {
		usage = gl.DYNAMIC_DRAW
	}

	// The element array binding belongs to whichever VAO is bound.
	gl.BindVertexArray(0)
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(target, b.id)
	var ptr unsafe.Pointer
	if desc.Contents != nil {
		ptr = unsafe.Pointer(&desc.Contents[0])
	}
	gl.BufferData(target, size, ptr, usage)
	gl.BindBuffer(target, 0)

	if err := checkError("create buffer " + desc.Label); err != nil {
		gl.DeleteBuffers(1, &b.id)
		return nil, err
	}
	d.stats.Buffers++
	return b, nil
}

func (b *Buffer) Size() int { return b.size }
func (b *Buffer) Usage() gpu.BufferUsage { return b.usage }

// Release deletes the buffer.
func (b *Buffer) Release() {
	if b.id == 0 {
		b.dev.log.Warn("buffer released twice", zap.String("label", b.label))
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
	b.dev.stats.Buffers--
}

// Texture is a GL texture or renderbuffer.
type Texture struct {
	dev  *Device
	id   uint32
	rbo  bool
	desc gpu.TextureDesc
}

// CreateTexture allocates a texture. Targets that are never sampled get
// renderbuffer storage.
func (d *Device) CreateTexture(desc gpu.TextureDesc) (gpu.Texture, error) {
	if err := gpu.ValidateTexture(desc); err != nil {
		return nil, err
	}
	f, err := glTextureFormat(desc.Format)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", desc.Label, err)
	}
	t := &Texture{dev: d, desc: desc, rbo: useRenderbuffer(desc)}
	t.desc.Data = nil

	w, h := int32(desc.Width), int32(desc.Height)
	if t.rbo {
		gl.GenRenderbuffers(1, &t.id)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.id)
		if desc.SampleCount > 1 {
			gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, int32(desc.SampleCount), uint32(f.internal), w, h)
		} else {
			gl.RenderbufferStorage(gl.RENDERBUFFER, uint32(f.internal), w, h)
		}
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	} else {
		gl.GenTextures(1, &t.id)
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		var ptr unsafe.Pointer
		if desc.Data != nil {
			ptr = unsafe.Pointer(&desc.Data[0])
		}
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, f.internal, w, h, 0, f.format, f.xtype, ptr)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	if err := checkError("create texture " + desc.Label); err != nil {
		t.delete()
		return nil, err
	}
	d.stats.Textures++
	return t, nil
}

func (t *Texture) Width() int { return t.desc.Width }
func (t *Texture) Height() int { return t.desc.Height }
func (t *Texture) Format() gpu.TextureFormat { return t.desc.Format }
func (t *Texture) SampleCount() int { return t.desc.SampleCount }

// ID returns the GL texture name, usable as an ImGui texture reference.
// It is zero for renderbuffer-backed textures.
func (t *Texture) ID() uint32 {
	if t.rbo {
		return 0
	}
	return t.id
}

func (t *Texture) attachment() *framebuffer.Attachment {
	return &framebuffer.Attachment{ID: t.id, Renderbuffer: t.rbo}
}

func (t *Texture) delete() {
	if t.rbo {
		gl.DeleteRenderbuffers(1, &t.id)
	} else {
		gl.DeleteTextures(1, &t.id)
	}
	t.id = 0
}

// Release deletes the texture and any cached framebuffer using it.
func (t *Texture) Release() {
	if t.id == 0 {
		t.dev.log.Warn("texture released twice", zap.String("label", t.desc.Label))
		return
	}
	t.dev.forgetFramebuffers(t.id)
	t.delete()
	t.dev.stats.Textures--
}

// Sampler is a GL sampler object.
type Sampler struct {
	dev  *Device
	id   uint32
	desc gpu.SamplerDesc
}

// CreateSampler creates sampler state.
func (d *Device) CreateSampler(desc gpu.SamplerDesc) (gpu.Sampler, error) {
	s := &Sampler{dev: d, desc: desc}
	gl.GenSamplers(1, &s.id)
	wrap := glAddressMode(desc.Address)
	filter := glFilter(desc.Filter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_S, wrap)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_T, wrap)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MIN_FILTER, filter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MAG_FILTER, filter)
	if err := checkError("create sampler " + desc.Label); err != nil {
		gl.DeleteSamplers(1, &s.id)
		return nil, err
	}
	d.stats.Samplers++
	return s, nil
}

// Release deletes the sampler.
func (s *Sampler) Release() {
	if s.id == 0 {
		s.dev.log.Warn("sampler released twice", zap.String("label", s.desc.Label))
		return
	}
	gl.DeleteSamplers(1, &s.id)
	s.id = 0
	s.dev.stats.Samplers--
}

// BindGroup holds resource references. GL has one binding namespace per
// resource kind, so uniform buffer bindings and texture units from all
// groups of a pipeline must not collide.
type BindGroup struct {
	entries []gpu.BindGroupEntry
}

// CreateBindGroup validates entries against the layout.
func (d *Device) CreateBindGroup(desc gpu.BindGroupDesc) (gpu.BindGroup, error) {
	if err := gpu.ValidateBindGroup(desc); err != nil {
		return nil, err
	}
	return &BindGroup{entries: append([]gpu.BindGroupEntry(nil), desc.Entries...)}, nil
}

func (g *BindGroup) Entries() []gpu.BindGroupEntry { return g.entries }

// Release is a no-op; bind groups own no GL objects.
func (g *BindGroup) Release() {}

func (g *BindGroup) apply() {
	for _, e := range g.entries {
		switch {
		case e.Buffer != nil:
			gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(e.Binding), e.Buffer.(*Buffer).id)
		case e.Texture != nil:
			unit := uint32(e.Binding)
			gl.ActiveTexture(gl.TEXTURE0 + unit)
			gl.BindTexture(gl.TEXTURE_2D, e.Texture.(*Texture).id)
			gl.BindSampler(unit, e.Sampler.(*Sampler).id)
		}
	}
	gl.ActiveTexture(gl.TEXTURE0)
}
