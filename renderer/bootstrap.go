package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/glscene/graphics"
	"github.com/richinsley/glscene/shader"
)

// Translator rewrites a shader source for the running context and reports
// the name each declared identifier received in the output.
type Translator interface {
	Translate(stage shader.Stage, source string) (string, map[string]string, error)
}

type bootstrapConfig struct {
	diagnostics func(string)
	translator  Translator
	attributes  []string
	uniforms    []string
}

// BootstrapOption configures Bootstrap.
type BootstrapOption func(*bootstrapConfig)

// WithDiagnostics sets the sink that receives a message for every
// initialization failure. The default sink logs the message.
func WithDiagnostics(sink func(msg string)) BootstrapOption {
	return func(c *bootstrapConfig) {
		if sink != nil {
			c.diagnostics = sink
		}
	}
}

// WithTranslator runs both sources through t before compiling them.
func WithTranslator(t Translator) BootstrapOption {
	return func(c *bootstrapConfig) {
		c.translator = t
	}
}

// WithAttributes names the vertex inputs whose slots are resolved at link time.
func WithAttributes(names ...string) BootstrapOption {
	return func(c *bootstrapConfig) {
		c.attributes = append(c.attributes, names...)
	}
}

// WithUniforms names the uniforms whose locations are resolved at link time.
func WithUniforms(names ...string) BootstrapOption {
	return func(c *bootstrapConfig) {
		c.uniforms = append(c.uniforms, names...)
	}
}

// Bootstrapped is the result of a successful Bootstrap.
type Bootstrapped struct {
	Functions graphics.Functions
	Surface   graphics.Surface
	Program   *Program
}

// Bootstrap resolves the named surface, acquires its GPU context, compiles
// and links src and makes the program current. It stops at the first
// failure, hands the error message to the diagnostic sink and returns the
// error; nothing it created is left behind.
func Bootstrap(display graphics.Display, surfaceName string, src shader.Source, opts ...BootstrapOption) (*Bootstrapped, error) {
	cfg := &bootstrapConfig{
		diagnostics: func(msg string) { log.Println(msg) },
	}
	for _, opt := range opts {
		opt(cfg)
	}
	fail := func(err error) (*Bootstrapped, error) {
		cfg.diagnostics(err.Error())
		return nil, err
	}

	surface, ok := display.Surface(surfaceName)
	if !ok {
		return fail(fmt.Errorf("%w: %q", ErrSurfaceNotFound, surfaceName))
	}

	f, err := surface.Context()
	if err != nil || f == nil {
		if err == nil {
			err = fmt.Errorf("surface %q returned no context", surfaceName)
		}
		return fail(fmt.Errorf("%w: %w", ErrContextUnavailable, err))
	}

	vertexSource, fragmentSource := src.Vertex, src.Fragment
	names := map[string]string{}
	if cfg.translator != nil {
		var stageNames map[string]string
		vertexSource, stageNames, err = cfg.translator.Translate(shader.Vertex, vertexSource)
		if err != nil {
			return fail(&ShaderCompileError{Stage: shader.Vertex, Log: err.Error()})
		}
		mergeNames(names, stageNames)

		fragmentSource, stageNames, err = cfg.translator.Translate(shader.Fragment, fragmentSource)
		if err != nil {
			return fail(&ShaderCompileError{Stage: shader.Fragment, Log: err.Error()})
		}
		mergeNames(names, stageNames)
	}

	vs, err := shader.Compile(f, shader.Vertex, vertexSource)
	if err != nil {
		return fail(err)
	}
	fs, err := shader.Compile(f, shader.Fragment, fragmentSource)
	if err != nil {
		f.DeleteShader(vs)
		return fail(err)
	}

	p, err := linkProgram(f, vs, fs)
	if err != nil {
		f.DeleteShader(vs)
		f.DeleteShader(fs)
		return fail(err)
	}

	f.UseProgram(p)

	return &Bootstrapped{
		Functions: f,
		Surface:   surface,
		Program:   newProgram(f, p, vs, fs, names, cfg.attributes, cfg.uniforms),
	}, nil
}

func linkProgram(f graphics.Functions, vs, fs graphics.Shader) (graphics.Program, error) {
	p := f.CreateProgram()
	if !p.Valid() {
		return graphics.Program{}, &ProgramLinkError{Log: "failed to create shader program"}
	}
	f.AttachShader(p, vs)
	f.AttachShader(p, fs)
	f.LinkProgram(p)

	if f.GetProgrami(p, graphics.LINK_STATUS) == int(graphics.FALSE) {
		logText := f.GetProgramInfoLog(p)
		f.DeleteProgram(p)
		return graphics.Program{}, &ProgramLinkError{Log: logText}
	}
	return p, nil
}

func mergeNames(dst, src map[string]string) {
	for k, v := range src {
		if v != "" {
			dst[k] = v
		}
	}
}
