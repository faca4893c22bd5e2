// Package framebuffer wraps OpenGL framebuffer objects built over
// externally owned attachments.
package framebuffer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attachment references a texture or renderbuffer owned elsewhere.
type Attachment struct {
	ID           uint32
	Renderbuffer bool
}

// Framebuffer represents an OpenGL framebuffer object.
// It does not own its attachments; Destroy only deletes the FBO.
type Framebuffer struct {
	fbo    uint32
	width  int32
	height int32
	color  *Attachment
	depth  *Attachment
}

// New creates a framebuffer over the given attachments. Either may be nil,
// but not both.
func New(color, depth *Attachment, width, height int32) (*Framebuffer, error) {
	if color == nil && depth == nil {
		return nil, fmt.Errorf("framebuffer needs at least one attachment")
	}
	fb := &Framebuffer{width: width, height: height, color: color, depth: depth}

	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if color != nil {
		attach(gl.COLOR_ATTACHMENT0, *color)
	} else {
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	}
	if depth != nil {
		attach(gl.DEPTH_ATTACHMENT, *depth)
	}

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fb.fbo)
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return fb, nil
}

func attach(point uint32, a Attachment) {
	if a.Renderbuffer {
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, point, gl.RENDERBUFFER, a.ID)
		return
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, point, gl.TEXTURE_2D, a.ID, 0)
}

// Bind binds the framebuffer for rendering.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// BindWithViewport binds the framebuffer and returns a function that
// restores the previously bound framebuffer and viewport.
func (fb *Framebuffer) BindWithViewport() func() {
	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	var prevViewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	fb.Bind()

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// Clear clears whichever attachments the framebuffer has. The framebuffer
// must be bound.
func (fb *Framebuffer) Clear(r, g, b, a float32, depth float64) {
	var mask uint32
	if fb.color != nil {
		gl.ClearColor(r, g, b, a)
		mask |= gl.COLOR_BUFFER_BIT
	}
	if fb.depth != nil {
		gl.DepthMask(true)
		gl.ClearDepth(depth)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

// ResolveTo copies the color attachment into dst, resolving multisampled
// storage. A nil dst targets the default framebuffer.
func (fb *Framebuffer) ResolveTo(dst *Framebuffer) {
	var dstFBO uint32
	dw, dh := fb.width, fb.height
	if dst != nil {
		dstFBO = dst.fbo
		dw, dh = dst.width, dst.height
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dstFBO)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, dw, dh, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// FBO returns the OpenGL framebuffer object ID.
func (fb *Framebuffer) FBO() uint32 {
	return fb.fbo
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (int32, int32) {
	return fb.width, fb.height
}

// Uses reports whether the framebuffer references the attachment id.
func (fb *Framebuffer) Uses(id uint32) bool {
	return (fb.color != nil && fb.color.ID == id) || (fb.depth != nil && fb.depth.ID == id)
}

// ReadPixels reads the RGBA8 color attachment. Rows are bottom-up.
func (fb *Framebuffer) ReadPixels() []byte {
	pixels := make([]byte, fb.width*fb.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, fb.width, fb.height, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pixels
}

// Destroy deletes the framebuffer object.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
}
