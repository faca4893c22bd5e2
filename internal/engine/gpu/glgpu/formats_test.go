package glgpu

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
)

func TestTextureFormats(t *testing.T) {
	tests := []struct {
		format   gpu.TextureFormat
		internal int32
		xtype    uint32
	}{
		{gpu.FormatR32Float, gl.R32F, gl.FLOAT},
		{gpu.FormatRGBA32Float, gl.RGBA32F, gl.FLOAT},
		{gpu.FormatRGBA8Unorm, gl.RGBA8, gl.UNSIGNED_BYTE},
		{gpu.FormatRGBA8UnormSRGB, gl.SRGB8_ALPHA8, gl.UNSIGNED_BYTE},
		{gpu.FormatDepth32Float, gl.DEPTH_COMPONENT32F, gl.FLOAT},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			f, err := glTextureFormat(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.internal, f.internal)
			assert.Equal(t, tt.xtype, f.xtype)
		})
	}

	_, err := glTextureFormat(gpu.FormatUndefined)
	assert.Error(t, err)
}

func TestUseRenderbuffer(t *testing.T) {
	assert.True(t, useRenderbuffer(gpu.TextureDesc{
		Format: gpu.FormatRGBA8Unorm, SampleCount: 4, Usage: gpu.TextureRenderAttachment,
	}))
	assert.True(t, useRenderbuffer(gpu.TextureDesc{
		Format: gpu.FormatDepth32Float, SampleCount: 1, Usage: gpu.TextureRenderAttachment,
	}))
	assert.False(t, useRenderbuffer(gpu.TextureDesc{
		Format: gpu.FormatRGBA8Unorm, SampleCount: 1, Usage: gpu.TextureRenderAttachment | gpu.TextureBinding,
	}))
	assert.False(t, useRenderbuffer(gpu.TextureDesc{
		Format: gpu.FormatR32Float, SampleCount: 1, Usage: gpu.TextureBinding,
	}))
}

func TestStateMapping(t *testing.T) {
	assert.Equal(t, int32(gl.MIRRORED_REPEAT), glAddressMode(gpu.AddressMirrorRepeat))
	assert.Equal(t, int32(gl.CLAMP_TO_EDGE), glAddressMode(gpu.AddressClampToEdge))
	assert.Equal(t, int32(gl.NEAREST), glFilter(gpu.FilterNearest))
	assert.Equal(t, uint32(gl.LESS), glCompare(gpu.CompareLess))

	xtype, size := glIndexType(gpu.IndexUint32)
	assert.Equal(t, uint32(gl.UNSIGNED_INT), xtype)
	assert.Equal(t, 4, size)
}
