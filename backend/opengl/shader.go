// Package opengl draws ecg3d buffers with OpenGL 4.1 core through go-gl,
// in a GLFW window.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked vertex + fragment shader pair.
type Program struct {
	id uint32
}

// CompileShader compiles src as a shader of the given kind
// (gl.VERTEX_SHADER or gl.FRAGMENT_SHADER). The error carries the info log.
func CompileShader(kind uint32, src string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(terminate(src))
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader compilation failed: %s", shaderKind(kind), strings.TrimRight(string(log), "\x00"))
	}
	return shader, nil
}

// NewProgram compiles and links a program from vertex and fragment sources.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := CompileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := CompileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("shader program linking failed: %s", strings.TrimRight(string(log), "\x00"))
	}
	return &Program{id: program}, nil
}

func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// AttribLocation returns the location of a vertex attribute, or an error if
// the linker dropped or never saw it.
func (p *Program) AttribLocation(name string) (uint32, error) {
	loc := gl.GetAttribLocation(p.id, gl.Str(terminate(name)))
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q not found", name)
	}
	return uint32(loc), nil
}

func (p *Program) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(terminate(name)))
}

// SetMat4 uploads a column-major matrix to the named uniform. The program
// must be in use.
func (p *Program) SetMat4(name string, m mgl32.Mat4) error {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return fmt.Errorf("uniform %q not found", name)
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return nil
}

func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// terminate appends the NUL terminator go-gl expects on C strings.
func terminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func shaderKind(kind uint32) string {
	switch kind {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("0x%x", kind)
}
