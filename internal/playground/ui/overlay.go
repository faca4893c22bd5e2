package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/terrain-playground/internal/playground"
)

// DrawOverlay shows status in a click-through box at the top right.
func DrawOverlay(status playground.Status) {
	vp := imgui.MainViewport()
	pos, size := vp.WorkPos(), vp.WorkSize()
	imgui.SetNextWindowPosV(imgui.NewVec2(pos.X+size.X-10, pos.Y+10), imgui.CondAlways, imgui.NewVec2(1, 0))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsAlwaysAutoResize

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)
	if imgui.BeginV("##DebugOverlay", nil, flags) {
		lines := status.Lines()
		imgui.TextColored(fpsColor(status.FPS), lines[0])
		imgui.Separator()
		for _, l := range lines[1:] {
			imgui.Text(l)
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}

func fpsColor(fps float64) imgui.Vec4 {
	switch {
	case fps < 30:
		return imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
	case fps < 60:
		return imgui.NewVec4(0.8, 0.6, 0.0, 1.0)
	}
	return imgui.NewVec4(0.1, 0.6, 0.1, 1.0)
}
