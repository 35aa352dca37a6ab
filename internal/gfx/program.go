package gfx

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Signatures shared by the shader and program variants of the GL queries.
type (
	paramFunc func(object, pname uint32, params *int32)
	logFunc   func(object uint32, bufSize int32, length *int32, infoLog *uint8)
)

type stage struct {
	kind   uint32
	source string
}

// newProgram compiles and links the given stages. Stage objects are always
// released; the program is released too if any step fails.
func newProgram(vertexSource, fragmentSource string) (uint32, error) {
	stages := []stage{
		{gl.VERTEX_SHADER, vertexSource},
		{gl.FRAGMENT_SHADER, fragmentSource},
	}

	program := gl.CreateProgram()
	var shaders []uint32
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, st := range stages {
		shader, err := compileShader(st)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, shader)
		shaders = append(shaders, shader)
	}

	gl.LinkProgram(program)
	if !succeeded(gl.GetProgramiv, program, gl.LINK_STATUS) {
		msg := infoLog(gl.GetProgramiv, gl.GetProgramInfoLog, program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("gfx: link program: %s", msg)
	}
	return program, nil
}

func compileShader(st stage) (uint32, error) {
	shader := gl.CreateShader(st.kind)
	csources, free := gl.Strs(st.source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	if !succeeded(gl.GetShaderiv, shader, gl.COMPILE_STATUS) {
		msg := infoLog(gl.GetShaderiv, gl.GetShaderInfoLog, shader)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("gfx: compile %s shader: %s", shaderKind(st.kind), msg)
	}
	return shader, nil
}

func succeeded(get paramFunc, object, pname uint32) bool {
	var status int32
	get(object, pname, &status)
	return status != gl.FALSE
}

// infoLog reads the driver's log for object, trimmed of its terminator.
func infoLog(get paramFunc, read logFunc, object uint32) string {
	var n int32
	get(object, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "no log"
	}
	buf := make([]byte, n+1)
	read(object, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\r\n ")
}

func shaderKind(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}

// uniform looks up a uniform by its Go-side name.
func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
