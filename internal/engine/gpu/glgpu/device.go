// Package glgpu implements the gpu interfaces on OpenGL 4.1 core.
//
// Every call must happen on the thread that owns the current GL context.
// Command encoders record closures; nothing touches GL until Submit.
package glgpu

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/framebuffer"
	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Options tunes device creation.
type Options struct {
	// Disable masks features the driver would otherwise report.
	Disable gpu.Feature
	Logger  *zap.Logger
}

// Stats is a snapshot of live GL objects created through the device.
type Stats struct {
	Buffers   int
	Textures  int
	Samplers  int
	Pipelines int
	FBOs      int
}

type fboKey struct {
	color, depth uint32
}

// Device implements gpu.Device over the current GL context.
type Device struct {
	log        *zap.Logger
	features   gpu.Feature
	maxSamples int
	queue      *Queue

	fbos  map[fboKey]*framebuffer.Framebuffer
	stats Stats

	// drain reads pending GL errors; lost is sticky once set.
	drain func() []uint32
	lost  error
}

// NewDevice wraps the current context. gl.Init must have succeeded.
func NewDevice(opts Options) (*Device, error) {
	if gl.GetString(gl.VERSION) == nil {
		return nil, errors.New("glgpu: no current GL context")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var maxSamples int32
	gl.GetIntegerv(gl.MAX_SAMPLES, &maxSamples)

	d := &Device{
		log:        log,
		features:   gpu.FeaturePolygonModeLine &^ opts.Disable,
		maxSamples: int(maxSamples),
		fbos:       make(map[fboKey]*framebuffer.Framebuffer),
		drain:      drainGLErrors,
	}
	d.queue = &Queue{dev: d}

	log.Info("GL device ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("max_samples", d.maxSamples),
		zap.Bool("line_mode", d.features.Has(gpu.FeaturePolygonModeLine)))
	return d, nil
}

// Features returns the enabled optional features.
func (d *Device) Features() gpu.Feature { return d.features }

// SupportsSampleCount reports whether n samples fit under GL_MAX_SAMPLES.
func (d *Device) SupportsSampleCount(f gpu.TextureFormat, n int) bool {
	if _, err := glTextureFormat(f); err != nil {
		return false
	}
	return n == 1 || (n > 1 && n <= d.maxSamples)
}

// Queue returns the device queue.
func (d *Device) Queue() gpu.Queue { return d.queue }

// Stats returns live object counts.
func (d *Device) Stats() Stats {
	s := d.stats
	s.FBOs = len(d.fbos)
	return s
}

// CreateCommandEncoder starts a new recording.
func (d *Device) CreateCommandEncoder(label string) gpu.CommandEncoder {
	return &Encoder{dev: d, label: label}
}

// framebufferFor returns a cached FBO over the given attachments.
func (d *Device) framebufferFor(color, depth *Texture) (*framebuffer.Framebuffer, error) {
	var key fboKey
	var ca, da *framebuffer.Attachment
	var w, h int
	if color != nil {
		key.color = color.id
		ca = color.attachment()
		w, h = color.desc.Width, color.desc.Height
	}
	if depth != nil {
		key.depth = depth.id
		da = depth.attachment()
		if color == nil {
			w, h = depth.desc.Width, depth.desc.Height
		}
	}
	if fb, ok := d.fbos[key]; ok {
		return fb, nil
	}
	fb, err := framebuffer.New(ca, da, int32(w), int32(h))
	if err != nil {
		return nil, err
	}
	d.fbos[key] = fb
	return fb, nil
}

// forgetFramebuffers drops cached FBOs that reference the object id.
func (d *Device) forgetFramebuffers(id uint32) {
	for key, fb := range d.fbos {
		if fb.Uses(id) {
			fb.Destroy()
			delete(d.fbos, key)
		}
	}
}

// drainGLErrors empties the GL error queue.
func drainGLErrors() []uint32 {
	var codes []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, code)
	}
	return codes
}

// classifyGLErrors turns drained error codes into one error. Out of memory
// wins over anything else in the batch.
func classifyGLErrors(what string, codes []uint32) error {
	if len(codes) == 0 {
		return nil
	}
	for _, c := range codes {
		if c == gl.OUT_OF_MEMORY {
			return fmt.Errorf("%s: %w", what, gpu.ErrOutOfMemory)
		}
	}
	return fmt.Errorf("%s: GL error 0x%x", what, codes[0])
}

// checkError drains the GL error queue, mapping GL_OUT_OF_MEMORY to
// gpu.ErrOutOfMemory.
func checkError(what string) error {
	return classifyGLErrors(what, drainGLErrors())
}

// noteErrors drains the error queue after work whose caller cannot fail.
// Out of memory is kept and reported by the next CurrentTexture; anything
// else is logged.
func (d *Device) noteErrors(what string) {
	err := classifyGLErrors(what, d.drain())
	switch {
	case err == nil:
	case errors.Is(err, gpu.ErrOutOfMemory):
		if d.lost == nil {
			d.lost = err
		}
		d.log.Error("GL out of memory", zap.Error(err))
	default:
		d.log.Warn("GL error", zap.Error(err))
	}
}

// Lost returns the out-of-memory error that ended the device, if any.
func (d *Device) Lost() error { return d.lost }

var (
	_ gpu.Device     = (*Device)(nil)
	_ gpu.Surface    = (*Surface)(nil)
	_ gpu.RenderPass = (*Pass)(nil)
	_ gpu.Queue      = (*Queue)(nil)
)
