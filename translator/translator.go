// Package translator rewrites GLSL ES 3.00 shaders for the context they will
// run on, using the ANGLE based goshadertranslator.
package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/glscene/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	shared     *gst.ShaderTranslator
	sharedErr  error
	sharedOnce sync.Once
)

// GetTranslator returns the process wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = gst.NewShaderTranslator(context.Background())
	})
	return shared, sharedErr
}

// Translator converts sources for either desktop GL 4.1 or OpenGL ES.
type Translator struct {
	gles bool
}

// New returns a Translator targeting ESSL when gles is set and GLSL 4.10
// otherwise.
func New(gles bool) *Translator {
	return &Translator{gles: gles}
}

// Translate returns the rewritten source and the mapping from each
// identifier declared in the original source to its name in the output.
func (t *Translator) Translate(stage shader.Stage, source string) (string, map[string]string, error) {
	tr, err := GetTranslator()
	if err != nil {
		return "", nil, fmt.Errorf("failed to create shader translator: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if t.gles {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := tr.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return "", nil, err
	}

	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return out.Code, names, nil
}
