//go:build linux

package main

import (
	"github.com/richinsley/glscene/headless"
	"github.com/richinsley/glscene/options"
)

// newRecordSurface creates an EGL pbuffer. The context is OpenGL ES, so
// shaders are translated to ESSL.
func newRecordSurface(opts *options.SceneOptions) (surface headless.Surface, gles bool, err error) {
	surface, err = headless.NewHeadless(*opts.Surface, *opts.Width, *opts.Height)
	return surface, true, err
}
