package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Surface is an offscreen RGBA8 color texture standing in for a swapchain.
// Frontends either show it as an ImGui image or blit it to the window.
type Surface struct {
	dev *Device
	cfg gpu.SurfaceConfig
	tex *Texture

	// BlitToWindow copies each presented frame to the default framebuffer.
	BlitToWindow bool
	// OnPresent runs after every Present, e.g. to swap window buffers.
	OnPresent func()
}

// NewSurface creates an unconfigured surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Formats lists the surface formats. Linear RGBA8 keeps the texture
// displayable through ImGui without a second conversion.
func (s *Surface) Formats() []gpu.TextureFormat {
	return []gpu.TextureFormat{gpu.FormatRGBA8Unorm}
}

// Configure (re)allocates the surface texture. A zero size leaves the
// surface unavailable until the next Configure.
func (s *Surface) Configure(d gpu.Device, cfg gpu.SurfaceConfig) error {
	dev, ok := d.(*Device)
	if !ok {
		return fmt.Errorf("glgpu: surface needs a *glgpu.Device, got %T", d)
	}
	if cfg.Format != gpu.FormatRGBA8Unorm {
		return fmt.Errorf("glgpu: unsupported surface format %v", cfg.Format)
	}
	s.dev = dev
	s.cfg = cfg
	if s.tex != nil {
		s.tex.Release()
		s.tex = nil
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil
	}

	t, err := dev.CreateTexture(gpu.TextureDesc{
		Label:       "surface",
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		SampleCount: 1,
		Usage:       gpu.TextureRenderAttachment | gpu.TextureBinding | gpu.TextureCopySrc,
	})
	if err != nil {
		return err
	}
	s.tex = t.(*Texture)
	return nil
}

// Config returns the last configuration.
func (s *Surface) Config() gpu.SurfaceConfig { return s.cfg }

// CurrentTexture returns the frame's color target. An out-of-memory error
// seen since the last frame is returned as gpu.ErrOutOfMemory; other GL
// errors are only logged.
func (s *Surface) CurrentTexture() (gpu.SurfaceTexture, error) {
	if s.dev != nil {
		s.dev.noteErrors("acquire surface")
		if err := s.dev.Lost(); err != nil {
			return nil, err
		}
	}
	if s.tex == nil {
		return nil, gpu.ErrSurfaceUnavailable
	}
	return &surfaceTexture{s: s}, nil
}

// TextureID returns the GL name of the surface texture, or zero.
func (s *Surface) TextureID() uint32 {
	if s.tex == nil {
		return 0
	}
	return s.tex.ID()
}

// ReadPixels returns the last frame as bottom-up RGBA8 rows.
func (s *Surface) ReadPixels() ([]byte, int, int, error) {
	if s.tex == nil {
		return nil, 0, 0, gpu.ErrSurfaceUnavailable
	}
	fb, err := s.dev.framebufferFor(s.tex, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	return fb.ReadPixels(), s.cfg.Width, s.cfg.Height, nil
}

// Release frees the surface texture.
func (s *Surface) Release() {
	if s.tex != nil {
		s.tex.Release()
		s.tex = nil
	}
}

type surfaceTexture struct {
	s *Surface
}

func (t *surfaceTexture) Texture() gpu.Texture { return t.s.tex }

func (t *surfaceTexture) Present() {
	s := t.s
	if s.BlitToWindow && s.tex != nil {
		if fb, err := s.dev.framebufferFor(s.tex, nil); err == nil {
			fb.ResolveTo(nil)
		}
	}
	if s.OnPresent != nil {
		s.OnPresent()
	}
	gl.Flush()
}
