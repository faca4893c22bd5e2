// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage names a shader stage in errors.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// CompileError carries the driver's info log for one failed stage.
type CompileError struct {
	Label string
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s shader: %s", e.Label, e.Stage, strings.TrimRight(e.Log, "\x00\n"))
}

// Source is a vertex/fragment pair plus preprocessor defines applied to both.
type Source struct {
	Label    string
	Vertex   string
	Fragment string
	Defines  []string
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or a *CompileError if compilation/linking fails.
func CompileProgram(src Source) (uint32, error) {
	vertShader, err := compileShader(src.Label, Preprocess(src.Vertex, src.Defines), gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(src.Label, Preprocess(src.Fragment, src.Defines), gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &CompileError{Label: src.Label, Stage: StageLink, Log: string(log)}
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(label, source string, shaderType uint32, stage Stage) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, &CompileError{Label: label, Stage: stage, Log: string(log)}
	}

	return shader, nil
}

// Preprocess inserts a #define line for each name right after the #version
// directive, or at the top when the source has none.
func Preprocess(source string, defines []string) string {
	if len(defines) == 0 {
		return source
	}
	var b strings.Builder
	for _, d := range defines {
		b.WriteString("#define ")
		b.WriteString(d)
		b.WriteByte('\n')
	}

	if strings.HasPrefix(strings.TrimSpace(source), "#version") {
		start := strings.Index(source, "#version")
		end := strings.IndexByte(source[start:], '\n')
		if end < 0 {
			return source + "\n" + b.String()
		}
		cut := start + end + 1
		return source[:cut] + b.String() + source[cut:]
	}
	return b.String() + source
}

// BindUniformBlock routes a named std140 block to a buffer binding point.
// Blocks the compiler optimised away are reported as errors.
func BindUniformBlock(program uint32, name string, binding int) error {
	idx := gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
	if idx == gl.INVALID_INDEX {
		return fmt.Errorf("uniform block %q not found in program %d", name, program)
	}
	gl.UniformBlockBinding(program, idx, uint32(binding))
	return nil
}

// BindSampler points a sampler uniform at a texture unit. Inactive
// samplers are skipped: a pipeline variant may not read every texture.
func BindSampler(program uint32, name string, unit int) {
	loc := GetUniform(program, name)
	if loc < 0 {
		return
	}
	gl.UseProgram(program)
	gl.Uniform1i(loc, int32(unit))
	gl.UseProgram(0)
}

// GetUniform returns the uniform location for the given name,
// or -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
