package ui

import "github.com/AllenDang/cimgui-go/imgui"

// DrawScene fills the viewport with the rendered scene texture, behind
// every other window. GL textures are bottom-up, so V is flipped.
func DrawScene(textureID uint32) {
	if textureID == 0 {
		return
	}
	vp := imgui.MainViewport()
	pos, size := vp.WorkPos(), vp.WorkSize()
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		tex := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*tex, size, imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}
