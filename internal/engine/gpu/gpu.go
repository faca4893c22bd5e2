// Package gpu describes the slice of a modern GPU API the scenes are written
// against: buffers, textures, samplers, bind groups, render pipelines and
// render passes recorded into command buffers. Implementations live in
// subpackages (glgpu for OpenGL, gputest for tests).
package gpu

import (
	"errors"
	"unsafe"
)

// Surface errors. ErrSurfaceUnavailable is transient: skip the frame and
// redraw. ErrOutOfMemory is fatal.
var (
	ErrSurfaceUnavailable = errors.New("gpu: surface texture unavailable")
	ErrOutOfMemory        = errors.New("gpu: out of memory")
)

// Feature is a bit set of optional device capabilities.
type Feature uint32

const (
	// FeaturePolygonModeLine allows pipelines to rasterize triangles as lines.
	FeaturePolygonModeLine Feature = 1 << iota
)

// Has reports whether every bit of f2 is set in f.
func (f Feature) Has(f2 Feature) bool { return f&f2 == f2 }

// TextureFormat is the texel layout of a texture.
type TextureFormat int

const (
	FormatUndefined TextureFormat = iota
	FormatR32Float
	FormatRGBA32Float
	FormatRGBA8Unorm
	FormatRGBA8UnormSRGB
	FormatDepth32Float
)

// IsSRGB reports whether the format stores sRGB-encoded color.
func (f TextureFormat) IsSRGB() bool { return f == FormatRGBA8UnormSRGB }

// IsDepth reports whether the format is a depth format.
func (f TextureFormat) IsDepth() bool { return f == FormatDepth32Float }

// BytesPerTexel returns the size of one texel.
func (f TextureFormat) BytesPerTexel() int {
	switch f {
	case FormatR32Float, FormatRGBA8Unorm, FormatRGBA8UnormSRGB, FormatDepth32Float:
		return 4
	case FormatRGBA32Float:
		return 16
	}
	return 0
}

func (f TextureFormat) String() string {
	switch f {
	case FormatR32Float:
		return "R32Float"
	case FormatRGBA32Float:
		return "RGBA32Float"
	case FormatRGBA8Unorm:
		return "RGBA8Unorm"
	case FormatRGBA8UnormSRGB:
		return "RGBA8UnormSRGB"
	case FormatDepth32Float:
		return "Depth32Float"
	}
	return "Undefined"
}

// BufferUsage is a bit set of buffer roles.
type BufferUsage uint32

const (
	BufferVertex BufferUsage = 1 << iota
	BufferIndex
	BufferUniform
	BufferCopyDst
)

// TextureUsage is a bit set of texture roles.
type TextureUsage uint32

const (
	TextureBinding TextureUsage = 1 << iota
	TextureRenderAttachment
	TextureCopySrc
)

// AddressMode controls sampling outside [0,1].
type AddressMode int

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
	AddressMirrorRepeat
)

// FilterMode selects texel filtering.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// VertexFormat is the type of one vertex attribute.
type VertexFormat int

const (
	VertexFloat32x2 VertexFormat = iota + 2
	VertexFloat32x3
	VertexFloat32x4
)

// Components returns the number of floats in the format.
func (f VertexFormat) Components() int { return int(f) }

// StepMode selects whether a vertex buffer advances per vertex or per instance.
type StepMode int

const (
	StepVertex StepMode = iota
	StepInstance
)

// IndexFormat is the integer type of an index buffer.
type IndexFormat int

const (
	IndexUint32 IndexFormat = iota
	IndexUint16
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// CullMode selects which faces are discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
)

// CompareFunc is a depth comparison.
type CompareFunc int

const (
	CompareAlways CompareFunc = iota
	CompareLess
	CompareLessEqual
)

// BlendMode selects a color blend equation.
type BlendMode int

const (
	BlendReplace BlendMode = iota
	// BlendAlpha is src*srcAlpha + dst*(1-srcAlpha).
	BlendAlpha
)

// StoreOp selects what happens to an attachment after a pass.
type StoreOp int

const (
	StoreStore StoreOp = iota
	StoreDiscard
)

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float64
}

// BytesOf reinterprets a slice of plain values as bytes without copying.
func BytesOf[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
