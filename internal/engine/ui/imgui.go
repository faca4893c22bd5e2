// Package ui wraps the cimgui-go SDL backend that hosts the playground
// window, its GL context and the imgui frame loop.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/input"
)

// Backend owns the imgui context and the native window behind it.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
}

// NewBackend creates the window and loads the GL function pointers. The
// GL context belongs to the backend and is current on the calling thread.
func NewBackend(title string, width, height int, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Backend{log: log}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		imgui.CurrentIO().SetIniFilename("")
	})
	b.backend.SetBgColor(imgui.NewVec4(0.9, 0.9, 0.8, 1.0))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	log.Info("imgui backend ready",
		zap.String("gl_version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	return b, nil
}

// Run hands the thread to the backend, which calls frame once per redraw
// between imgui's NewFrame and Render.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// DisplaySize returns the window size in points.
func DisplaySize() (float32, float32) {
	s := imgui.CurrentIO().DisplaySize()
	return s.X, s.Y
}

// FramebufferSize returns the window size in pixels.
func FramebufferSize() (int, int) {
	io := imgui.CurrentIO()
	size, scale := io.DisplaySize(), io.DisplayFramebufferScale()
	return int(size.X * scale.X), int(size.Y * scale.Y)
}

// DeltaTime returns the seconds since the previous imgui frame.
func DeltaTime() float32 {
	return imgui.CurrentIO().DeltaTime()
}

// boundKeys are the imgui keys the playground reacts to.
var boundKeys = []struct {
	key  imgui.Key
	into input.Key
}{
	{imgui.Key1, input.Key1},
	{imgui.KeyKeypad1, input.Key1},
	{imgui.Key2, input.Key2},
	{imgui.KeyKeypad2, input.Key2},
	{imgui.KeyF11, input.KeyF11},
	{imgui.KeyF12, input.KeyF12},
}

// PressedKeys returns the bound keys pressed this frame. Keys typed into a
// focused widget belong to the widget.
func PressedKeys() []input.Key {
	if imgui.CurrentIO().WantTextInput() {
		return nil
	}
	var out []input.Key
	for _, k := range boundKeys {
		if imgui.IsKeyChordPressed(imgui.KeyChord(k.key)) {
			out = append(out, k.into)
		}
	}
	return out
}
