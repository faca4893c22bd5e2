// Package ui draws the playground's imgui widgets: the controls panel, the
// debug overlay and the scene image behind them.
package ui

import (
	"fmt"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/playground/controls"
)

const panelWidth = 280

// Panel is the controls window. It never mutates the controls it is
// given; it returns the messages the user produced this frame.
type Panel struct {
	log *zap.Logger

	// OnModel receives the path picked in the file dialog. It is called
	// from the dialog goroutine.
	OnModel func(path string)

	mu      sync.Mutex
	picking bool
}

// NewPanel creates the panel.
func NewPanel(log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{log: log}
}

// Render draws the panel for state c and returns the resulting messages.
// Without line rasterization the wireframe checkbox still works but draws
// nothing extra.
func (p *Panel) Render(c controls.Controls, wireframeAvailable bool) []controls.Message {
	var msgs []controls.Message

	workPos := imgui.MainViewport().WorkPos()
	imgui.SetNextWindowPosV(imgui.NewVec2(workPos.X+10, workPos.Y+10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(panelWidth, 0), imgui.CondFirstUseEver)
	imgui.SetNextWindowBgAlpha(0.85)

	if imgui.BeginV("Controls", nil, imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoSavedSettings) {
		cam := c.Camera
		changed := false
		for i, axis := range []string{"X", "Y", "Z"} {
			v := cam[i]
			label := fmt.Sprintf("Camera %s##cam%d", axis, i)
			format := fmt.Sprintf("%.0f°", v*360)
			if imgui.SliderFloatV(label, &v, controls.CameraMin, controls.CameraMax, format, imgui.SliderFlagsNone) {
				cam[i] = controls.Snap(v, controls.CameraStep)
				changed = true
			}
		}
		if changed {
			msgs = append(msgs, controls.CameraChanged{Camera: mgl32.Vec3(cam)})
		}

		zoom := c.Zoom
		if imgui.SliderFloatV("Zoom", &zoom, controls.ZoomMin, controls.ZoomMax, "%.2fx", imgui.SliderFlagsLogarithmic) {
			msgs = append(msgs, controls.ZoomChanged{Zoom: controls.Snap(zoom, controls.ZoomStep)})
		}

		wire := c.Wireframe
		if imgui.Checkbox("Wireframe", &wire) {
			msgs = append(msgs, controls.WireframeToggled{Wireframe: wire})
		}
		if !wireframeAvailable {
			imgui.SameLine()
			imgui.TextDisabled("(not supported)")
		}

		imgui.Separator()
		if imgui.Button("Open model...") {
			p.openModelDialog()
		}
		imgui.TextDisabled("1: object  2: terrain  F11: screenshot  F12: overlay")
	}
	imgui.End()
	return msgs
}

// openModelDialog shows the native picker off the main thread. The result
// is handed to OnModel, which must only queue it.
func (p *Panel) openModelDialog() {
	p.mu.Lock()
	if p.picking {
		p.mu.Unlock()
		return
	}
	p.picking = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.picking = false
			p.mu.Unlock()
		}()
		path, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Title("Open model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				p.log.Error("file dialog", zap.Error(err))
			}
			return
		}
		if p.OnModel != nil {
			p.OnModel(path)
		}
	}()
}
