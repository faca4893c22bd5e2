package playground

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/terrain-playground/internal/engine/scene"
)

var printer = message.NewPrinter(language.English)

// Status is what the debug overlay shows.
type Status struct {
	FPS       float64
	FrameTime float64 // ms
	Scene     scene.Stats
}

// Lines formats the status one fact per line, with grouped digits.
func (s Status) Lines() []string {
	st := s.Scene
	wire := "unavailable"
	if st.WireframeAvailable {
		wire = "available"
	}
	lines := []string{
		printer.Sprintf("FPS: %.1f (%.2f ms)", s.FPS, s.FrameTime),
		fmt.Sprintf("Scene: %s", st.Kind),
	}
	if st.Kind == scene.KindTerrain {
		lines = append(lines, printer.Sprintf("Chunks: %d", st.Chunks))
	}
	return append(lines,
		printer.Sprintf("Meshes: %d  Draws: %d  Instances: %d", st.Meshes, st.DrawCalls, st.Instances),
		printer.Sprintf("Vertices: %d  Triangles: %d", st.Vertices, st.Triangles),
		fmt.Sprintf("MSAA: %dx  Wireframe: %s", st.SampleCount, wire),
		printer.Sprintf("Surface: %d x %d", st.Width, st.Height),
	)
}

// Title is the status squeezed into a window title.
func (s Status) Title(app string) string {
	return app + " | " + strings.Join(s.Lines(), " | ")
}
