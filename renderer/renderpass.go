package renderer

import (
	"github.com/richinsley/glscene/graphics"
)

// UniformNames names the uniforms a scene drives each frame. An empty name
// means the scene does not use that uniform.
type UniformNames struct {
	Projection string // mat4
	ModelView  string // mat4
	Resolution string // vec2, surface size in pixels
	Time       string // float, the animation parameter
	Pointer    string // vec2, pointer position in pixels
	Sampler    string // sampler2D bound to texture unit 0
}

func (n UniformNames) list() []string {
	var names []string
	for _, name := range []string{n.Projection, n.ModelView, n.Resolution, n.Time, n.Pointer, n.Sampler} {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// passUniforms holds the resolved locations; absent uniforms are NoUniform.
type passUniforms struct {
	projection graphics.Uniform
	modelView  graphics.Uniform
	resolution graphics.Uniform
	time       graphics.Uniform
	pointer    graphics.Uniform
	sampler    graphics.Uniform
}

func resolveUniforms(p *Program, n UniformNames) passUniforms {
	lookup := func(name string) graphics.Uniform {
		if name == "" {
			return graphics.NoUniform
		}
		return p.Uniform(name)
	}
	return passUniforms{
		projection: lookup(n.Projection),
		modelView:  lookup(n.ModelView),
		resolution: lookup(n.Resolution),
		time:       lookup(n.Time),
		pointer:    lookup(n.Pointer),
		sampler:    lookup(n.Sampler),
	}
}
