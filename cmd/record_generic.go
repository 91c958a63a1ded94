//go:build !linux

package main

import (
	"fmt"

	"github.com/richinsley/glscene/glfwcontext"
	"github.com/richinsley/glscene/headless"
	"github.com/richinsley/glscene/options"
)

// hiddenWindow is an invisible GLFW window standing in for a pbuffer.
type hiddenWindow struct {
	*glfwcontext.Context
}

func (w hiddenWindow) Shutdown() {
	w.Context.Shutdown()
	glfwcontext.TerminateGraphics()
}

// newRecordSurface creates a hidden window with a desktop core profile
// context, so shaders are translated to GLSL 4.10.
func newRecordSurface(opts *options.SceneOptions) (surface headless.Surface, gles bool, err error) {
	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, false, err
	}
	window, err := glfwcontext.New(opts, false)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, false, fmt.Errorf("failed to create hidden window: %w", err)
	}
	return hiddenWindow{window}, false, nil
}
