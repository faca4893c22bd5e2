package gputest

import (
	"fmt"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// Surface implements gpu.Surface on top of a fake device.
type Surface struct {
	dev     *Device
	cfg     gpu.SurfaceConfig
	current gpu.Texture

	// Unavailable makes CurrentTexture fail transiently.
	Unavailable bool
	// OutOfMemory makes CurrentTexture fail fatally.
	OutOfMemory bool

	Presented int
}

// NewSurface returns an unconfigured surface.
func NewSurface(dev *Device) *Surface {
	return &Surface{dev: dev}
}

// Formats implements gpu.Surface.
func (s *Surface) Formats() []gpu.TextureFormat {
	return []gpu.TextureFormat{gpu.FormatRGBA8Unorm, gpu.FormatRGBA8UnormSRGB}
}

// Configure implements gpu.Surface.
func (s *Surface) Configure(_ gpu.Device, cfg gpu.SurfaceConfig) error {
	if s.current != nil {
		s.current.Release()
		s.current = nil
	}
	s.cfg = cfg
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil
	}
	t, err := s.dev.CreateTexture(gpu.TextureDesc{
		Label:       "surface",
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		SampleCount: 1,
		Usage:       gpu.TextureRenderAttachment | gpu.TextureBinding,
	})
	if err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	s.current = t
	return nil
}

// Config implements gpu.Surface.
func (s *Surface) Config() gpu.SurfaceConfig { return s.cfg }

// CurrentTexture implements gpu.Surface.
func (s *Surface) CurrentTexture() (gpu.SurfaceTexture, error) {
	switch {
	case s.OutOfMemory:
		return nil, gpu.ErrOutOfMemory
	case s.Unavailable, s.current == nil:
		return nil, gpu.ErrSurfaceUnavailable
	}
	return &surfaceTexture{s: s}, nil
}

type surfaceTexture struct{ s *Surface }

func (t *surfaceTexture) Texture() gpu.Texture { return t.s.current }
func (t *surfaceTexture) Present()             { t.s.Presented++ }
