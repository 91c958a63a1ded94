package shader

import (
	"fmt"

	"github.com/richinsley/glscene/graphics"
)

// Stage is a programmable pipeline stage.
type Stage graphics.Enum

const (
	Vertex   = Stage(graphics.VERTEX_SHADER)
	Fragment = Stage(graphics.FRAGMENT_SHADER)
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(0x%x)", uint32(s))
	}
}

// ShaderCompileError carries the compiler log of a failed stage.
type ShaderCompileError struct {
	Stage Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// Compile creates and compiles one shader stage. On failure the shader
// object is deleted and a *ShaderCompileError is returned.
func Compile(f graphics.Functions, stage Stage, source string) (graphics.Shader, error) {
	s := f.CreateShader(graphics.Enum(stage))
	if !s.Valid() {
		return graphics.Shader{}, &ShaderCompileError{Stage: stage, Log: "failed to create the shader"}
	}
	f.ShaderSource(s, source)
	f.CompileShader(s)

	if f.GetShaderi(s, graphics.COMPILE_STATUS) == int(graphics.FALSE) {
		logText := f.GetShaderInfoLog(s)
		f.DeleteShader(s)
		return graphics.Shader{}, &ShaderCompileError{Stage: stage, Log: logText}
	}
	return s, nil
}
