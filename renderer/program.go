package renderer

import (
	"github.com/richinsley/glscene/graphics"
)

// Program is a linked shader program with the slots of its declared
// attributes and the locations of its declared uniforms. The maps are filled
// once at link time and never change.
type Program struct {
	Handle   graphics.Program
	Vertex   graphics.Shader
	Fragment graphics.Shader

	attribs  map[string]graphics.Attrib
	uniforms map[string]graphics.Uniform
}

func newProgram(f graphics.Functions, p graphics.Program, vs, fs graphics.Shader, names map[string]string, attributes, uniforms []string) *Program {
	prog := &Program{
		Handle:   p,
		Vertex:   vs,
		Fragment: fs,
		attribs:  make(map[string]graphics.Attrib, len(attributes)),
		uniforms: make(map[string]graphics.Uniform, len(uniforms)),
	}
	for _, name := range attributes {
		prog.attribs[name] = f.GetAttribLocation(p, mappedName(names, name))
	}
	for _, name := range uniforms {
		prog.uniforms[name] = f.GetUniformLocation(p, mappedName(names, name))
	}
	return prog
}

// mappedName returns the name the translator gave to name, or name itself.
func mappedName(names map[string]string, name string) string {
	if v, ok := names[name]; ok {
		return v
	}
	return name
}

// Attrib returns the slot of a declared attribute. Unknown or inactive
// attributes yield graphics.NoAttrib.
func (p *Program) Attrib(name string) graphics.Attrib {
	if a, ok := p.attribs[name]; ok {
		return a
	}
	return graphics.NoAttrib
}

// Uniform returns the location of a declared uniform. Unknown or inactive
// uniforms yield graphics.NoUniform.
func (p *Program) Uniform(name string) graphics.Uniform {
	if u, ok := p.uniforms[name]; ok {
		return u
	}
	return graphics.NoUniform
}

// Delete releases the program and both shader stages.
func (p *Program) Delete(f graphics.Functions) {
	f.DeleteProgram(p.Handle)
	f.DeleteShader(p.Vertex)
	f.DeleteShader(p.Fragment)
}
