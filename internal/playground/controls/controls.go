// Package controls holds the camera, zoom and wireframe state the panel
// edits, and the messages that change it.
package controls

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrain-playground/internal/config"
	"github.com/Faultbox/terrain-playground/internal/engine/scene"
)

// Slider ranges.
const (
	CameraMin  = -1
	CameraMax  = 1
	CameraStep = 0.01
	ZoomMin    = 0.1
	ZoomMax    = 10
	ZoomStep   = 0.05
)

// Controls is the panel state. Camera components are fractions of a full
// turn about X, Y and Z.
type Controls struct {
	Camera    mgl32.Vec3
	Zoom      float32
	Wireframe bool
}

// Default returns the unrotated, unscaled state without wireframe.
func Default() Controls {
	return Controls{Zoom: 1}
}

// FromConfig returns the initial state from the controls section.
func FromConfig(c config.ControlsConfig) Controls {
	return Controls{
		Camera:    mgl32.Vec3(c.Camera),
		Zoom:      c.Zoom,
		Wireframe: c.Wireframe,
	}
}

// View returns what the scenes need to draw a frame.
func (c Controls) View() scene.View {
	return scene.View{Camera: c.Camera, Zoom: c.Zoom, Wireframe: c.Wireframe}
}

// Message changes one field of Controls.
type Message interface {
	apply(c Controls) Controls
}

// CameraChanged replaces the camera rotation.
type CameraChanged struct{ Camera mgl32.Vec3 }

// ZoomChanged replaces the zoom.
type ZoomChanged struct{ Zoom float32 }

// WireframeToggled replaces the wireframe flag.
type WireframeToggled struct{ Wireframe bool }

func (m CameraChanged) apply(c Controls) Controls    { c.Camera = m.Camera; return c }
func (m ZoomChanged) apply(c Controls) Controls      { c.Zoom = m.Zoom; return c }
func (m WireframeToggled) apply(c Controls) Controls { c.Wireframe = m.Wireframe; return c }

// Update returns the state after msg. The receiver is not modified.
func (c Controls) Update(msg Message) Controls {
	if msg == nil {
		return c
	}
	return msg.apply(c)
}

// Apply folds msgs into c in order.
func (c Controls) Apply(msgs ...Message) Controls {
	for _, m := range msgs {
		c = c.Update(m)
	}
	return c
}

// Rotate returns the message that turns one camera axis by steps slider
// steps, clamped to the slider range.
func (c Controls) Rotate(axis, steps int) CameraChanged {
	cam := c.Camera
	cam[axis] = Snap(clamp(cam[axis]+float32(steps)*CameraStep, CameraMin, CameraMax), CameraStep)
	return CameraChanged{Camera: cam}
}

// ZoomBy returns the message that moves the zoom by steps slider steps,
// clamped to the slider range.
func (c Controls) ZoomBy(steps int) ZoomChanged {
	return ZoomChanged{Zoom: Snap(clamp(c.Zoom+float32(steps)*ZoomStep, ZoomMin, ZoomMax), ZoomStep)}
}

// ToggleWireframe returns the message that flips the wireframe flag.
func (c Controls) ToggleWireframe() WireframeToggled {
	return WireframeToggled{Wireframe: !c.Wireframe}
}

// Snap rounds v to the nearest multiple of step.
func Snap(v, step float32) float32 {
	n := v / step
	if n < 0 {
		n -= 0.5
	} else {
		n += 0.5
	}
	return float32(int(n)) * step
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
