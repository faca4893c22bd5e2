package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

// texFormat is the GL triple describing a texture format.
type texFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

func glTextureFormat(f gpu.TextureFormat) (texFormat, error) {
	switch f {
	case gpu.FormatR32Float:
		return texFormat{gl.R32F, gl.RED, gl.FLOAT}, nil
	case gpu.FormatRGBA32Float:
		return texFormat{gl.RGBA32F, gl.RGBA, gl.FLOAT}, nil
	case gpu.FormatRGBA8Unorm:
		return texFormat{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}, nil
	case gpu.FormatRGBA8UnormSRGB:
		return texFormat{gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE}, nil
	case gpu.FormatDepth32Float:
		return texFormat{gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT}, nil
	}
	return texFormat{}, fmt.Errorf("unsupported texture format %v", f)
}

func glAddressMode(m gpu.AddressMode) int32 {
	switch m {
	case gpu.AddressRepeat:
		return gl.REPEAT
	case gpu.AddressMirrorRepeat:
		return gl.MIRRORED_REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func glFilter(m gpu.FilterMode) int32 {
	if m == gpu.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glCompare(c gpu.CompareFunc) uint32 {
	switch c {
	case gpu.CompareLess:
		return gl.LESS
	case gpu.CompareLessEqual:
		return gl.LEQUAL
	}
	return gl.ALWAYS
}

func glIndexType(f gpu.IndexFormat) (uint32, int) {
	if f == gpu.IndexUint16 {
		return gl.UNSIGNED_SHORT, 2
	}
	return gl.UNSIGNED_INT, 4
}

// useRenderbuffer reports whether a texture is backed by a renderbuffer
// rather than a GL texture. Renderbuffers hold multisampled and depth
// targets that are never sampled.
func useRenderbuffer(desc gpu.TextureDesc) bool {
	if desc.Usage&gpu.TextureBinding != 0 {
		return false
	}
	return desc.SampleCount > 1 || desc.Format.IsDepth()
}
