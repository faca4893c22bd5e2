package shader

import (
	"strings"
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		defines []string
		want    string
	}{
		{
			name:   "no defines",
			source: "#version 410 core\nvoid main() {}\n",
			want:   "#version 410 core\nvoid main() {}\n",
		},
		{
			name:    "after version",
			source:  "#version 410 core\nvoid main() {}\n",
			defines: []string{"WIREFRAME"},
			want:    "#version 410 core\n#define WIREFRAME\nvoid main() {}\n",
		},
		{
			name:    "leading blank lines",
			source:  "\n#version 410 core\nout vec4 c;\n",
			defines: []string{"A", "B 2"},
			want:    "\n#version 410 core\n#define A\n#define B 2\nout vec4 c;\n",
		},
		{
			name:    "no version",
			source:  "void main() {}",
			defines: []string{"X"},
			want:    "#define X\nvoid main() {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.source, tt.defines); got != tt.want {
				t.Errorf("Preprocess() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{Label: "terrain", Stage: StageFragment, Log: "0:12: syntax error\n\x00"}
	msg := err.Error()
	if !strings.Contains(msg, "terrain: fragment shader: 0:12: syntax error") {
		t.Errorf("unexpected message %q", msg)
	}
	if strings.ContainsRune(msg, 0) {
		t.Error("message should not carry the NUL terminator")
	}
}
