package renderer

import (
	"errors"
	"fmt"

	"github.com/richinsley/glscene/shader"
)

var (
	// ErrSurfaceNotFound is returned when the display has no surface with
	// the requested name.
	ErrSurfaceNotFound = errors.New("surface not found")
	// ErrContextUnavailable is returned when a surface cannot provide a GPU
	// context.
	ErrContextUnavailable = errors.New("context unavailable")
)

// ShaderCompileError reports a stage that failed to compile or translate.
type ShaderCompileError = shader.ShaderCompileError

// ProgramLinkError carries the linker log of a program that failed to link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("failed to link shader program: %s", e.Log)
}
