// Package fakegl is an in-memory graphics.Functions that records every call
// and keeps enough object state (sources, buffer contents, texture pixels,
// uniform values) for tests to inspect what a renderer did.
package fakegl

import (
	"fmt"
	"regexp"

	"github.com/richinsley/glscene/graphics"
)

// Call is one recorded command.
type Call struct {
	Name string
	Args []any
}

// Draw is one recorded draw command.
type Draw struct {
	Indexed bool
	Mode    graphics.Enum
	First   int
	Count   int
	Type    graphics.Enum
	// Program and Texture are the objects bound when the draw was issued.
	Program graphics.Program
	Texture graphics.Texture
}

// Image is the pixel store of a texture at mip level 0.
type Image struct {
	Width, Height int
	Format        graphics.Enum
	Pixels        []byte
}

type shader struct {
	ty       graphics.Enum
	source   string
	compiled bool
	deleted  bool
}

type program struct {
	shaders  []uint32
	linked   bool
	attribs  map[string]int32
	uniforms map[string]int32
}

type texture struct {
	image  Image
	params map[graphics.Enum]int
}

// Functions implements graphics.Functions.
type Functions struct {
	Calls []Call
	Draws []Draw

	// FailCompile maps a shader stage to the info log its compilation reports.
	FailCompile map[graphics.Enum]string
	// FailLink, when set, is the info log of every link.
	FailLink string

	nextID        uint32
	shaders       map[uint32]*shader
	programs      map[uint32]*program
	buffers       map[uint32][]byte
	textures      map[uint32]*texture
	boundBuffers  map[graphics.Enum]uint32
	boundTextures map[graphics.Enum]uint32
	activeTexture graphics.Enum
	current       uint32
	enabled       map[graphics.Enum]bool
	attribArrays  map[int32]bool
	depthFunc     graphics.Enum
	clearColor    [4]float32
	viewport      [4]int
	uniforms      map[int32][]float32
}

var _ graphics.Functions = (*Functions)(nil)

// New returns an empty context with texture unit 0 active.
func New() *Functions {
	return &Functions{
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		buffers:       make(map[uint32][]byte),
		textures:      make(map[uint32]*texture),
		boundBuffers:  make(map[graphics.Enum]uint32),
		boundTextures: make(map[graphics.Enum]uint32),
		activeTexture: graphics.TEXTURE0,
		enabled:       make(map[graphics.Enum]bool),
		attribArrays:  make(map[int32]bool),
		uniforms:      make(map[int32][]float32),
	}
}

// Reset forgets the recorded calls and draws but keeps object state.
func (f *Functions) Reset() {
	f.Calls = nil
	f.Draws = nil
}

// Count returns how many times the named command was recorded.
func (f *Functions) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// CallsNamed returns the recorded calls of one command in order.
func (f *Functions) CallsNamed(name string) []Call {
	var calls []Call
	for _, c := range f.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// BufferContents returns the bytes last uploaded to b.
func (f *Functions) BufferContents(b graphics.Buffer) []byte {
	return f.buffers[b.V]
}

// TextureImage returns the level 0 image of t.
func (f *Functions) TextureImage(t graphics.Texture) (Image, bool) {
	tex, ok := f.textures[t.V]
	if !ok {
		return Image{}, false
	}
	return tex.image, true
}

// TextureParam returns a parameter set with TexParameteri on t.
func (f *Functions) TextureParam(t graphics.Texture, pname graphics.Enum) (int, bool) {
	tex, ok := f.textures[t.V]
	if !ok {
		return 0, false
	}
	v, ok := tex.params[pname]
	return v, ok
}

// Texel returns the RGBA value at (x, y) of t's pixel store.
func (f *Functions) Texel(t graphics.Texture, x, y int) [4]byte {
	var px [4]byte
	tex, ok := f.textures[t.V]
	if !ok || x >= tex.image.Width || y >= tex.image.Height {
		return px
	}
	i := (y*tex.image.Width + x) * 4
	copy(px[:], tex.image.Pixels[i:i+4])
	return px
}

// UniformValue returns the last value uploaded to u.
func (f *Functions) UniformValue(u graphics.Uniform) []float32 {
	return f.uniforms[u.V]
}

// ViewportRect returns the current viewport rectangle.
func (f *Functions) ViewportRect() [4]int {
	return f.viewport
}

// Enabled reports whether a capability is enabled.
func (f *Functions) Enabled(cap graphics.Enum) bool {
	return f.enabled[cap]
}

// CurrentDepthFunc returns the depth comparison set with DepthFunc.
func (f *Functions) CurrentDepthFunc() graphics.Enum {
	return f.depthFunc
}

// AttribArrayEnabled reports whether an attribute slot is enabled.
func (f *Functions) AttribArrayEnabled(a graphics.Attrib) bool {
	return f.attribArrays[a.V]
}

// CurrentProgram returns the program set with UseProgram.
func (f *Functions) CurrentProgram() graphics.Program {
	return graphics.Program{V: f.current}
}

// ShaderDeleted reports whether DeleteShader was called on s.
func (f *Functions) ShaderDeleted(s graphics.Shader) bool {
	sh, ok := f.shaders[s.V]
	return ok && sh.deleted
}

func (f *Functions) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Functions) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *Functions) ActiveTexture(unit graphics.Enum) {
	f.record("ActiveTexture", unit)
	f.activeTexture = unit
}

func (f *Functions) AttachShader(p graphics.Program, s graphics.Shader) {
	f.record("AttachShader", p, s)
	if prog, ok := f.programs[p.V]; ok {
		prog.shaders = append(prog.shaders, s.V)
	}
}

func (f *Functions) BindBuffer(target graphics.Enum, b graphics.Buffer) {
	f.record("BindBuffer", target, b)
	f.boundBuffers[target] = b.V
}

func (f *Functions) BindTexture(target graphics.Enum, t graphics.Texture) {
	f.record("BindTexture", target, t)
	f.boundTextures[f.activeTexture] = t.V
}

func (f *Functions) BufferData(target graphics.Enum, src []byte, usage graphics.Enum) {
	f.record("BufferData", target, len(src), usage)
	f.buffers[f.boundBuffers[target]] = append([]byte(nil), src...)
}

func (f *Functions) Clear(mask graphics.Enum) {
	f.record("Clear", mask)
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.record("ClearColor", red, green, blue, alpha)
	f.clearColor = [4]float32{red, green, blue, alpha}
}

func (f *Functions) ClearDepthf(d float32) {
	f.record("ClearDepthf", d)
}

func (f *Functions) CompileShader(s graphics.Shader) {
	f.record("CompileShader", s)
	if sh, ok := f.shaders[s.V]; ok {
		_, fail := f.FailCompile[sh.ty]
		sh.compiled = !fail
	}
}

func (f *Functions) CreateBuffer() graphics.Buffer {
	b := graphics.Buffer{V: f.id()}
	f.record("CreateBuffer", b)
	f.buffers[b.V] = nil
	return b
}

func (f *Functions) CreateProgram() graphics.Program {
	p := graphics.Program{V: f.id()}
	f.record("CreateProgram", p)
	f.programs[p.V] = &program{}
	return p
}

func (f *Functions) CreateShader(ty graphics.Enum) graphics.Shader {
	s := graphics.Shader{V: f.id()}
	f.record("CreateShader", ty, s)
	f.shaders[s.V] = &shader{ty: ty}
	return s
}

func (f *Functions) CreateTexture() graphics.Texture {
	t := graphics.Texture{V: f.id()}
	f.record("CreateTexture", t)
	f.textures[t.V] = &texture{params: make(map[graphics.Enum]int)}
	return t
}

func (f *Functions) DeleteBuffer(b graphics.Buffer) {
	f.record("DeleteBuffer", b)
	delete(f.buffers, b.V)
}

func (f *Functions) DeleteProgram(p graphics.Program) {
	f.record("DeleteProgram", p)
	delete(f.programs, p.V)
}

func (f *Functions) DeleteShader(s graphics.Shader) {
	f.record("DeleteShader", s)
	if sh, ok := f.shaders[s.V]; ok {
		sh.deleted = true
	}
}

func (f *Functions) DeleteTexture(t graphics.Texture) {
	f.record("DeleteTexture", t)
	delete(f.textures, t.V)
}

func (f *Functions) DepthFunc(fn graphics.Enum) {
	f.record("DepthFunc", fn)
	f.depthFunc = fn
}

func (f *Functions) DrawArrays(mode graphics.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
	f.Draws = append(f.Draws, Draw{
		Mode:    mode,
		First:   first,
		Count:   count,
		Program: graphics.Program{V: f.current},
		Texture: graphics.Texture{V: f.boundTextures[graphics.TEXTURE0]},
	})
}

func (f *Functions) DrawElements(mode graphics.Enum, count int, ty graphics.Enum, offset int) {
	f.record("DrawElements", mode, count, ty, offset)
	f.Draws = append(f.Draws, Draw{
		Indexed: true,
		Mode:    mode,
		First:   offset,
		Count:   count,
		Type:    ty,
		Program: graphics.Program{V: f.current},
		Texture: graphics.Texture{V: f.boundTextures[graphics.TEXTURE0]},
	})
}

func (f *Functions) Enable(cap graphics.Enum) {
	f.record("Enable", cap)
	f.enabled[cap] = true
}

func (f *Functions) EnableVertexAttribArray(a graphics.Attrib) {
	f.record("EnableVertexAttribArray", a)
	f.attribArrays[a.V] = true
}

func (f *Functions) GetAttribLocation(p graphics.Program, name string) graphics.Attrib {
	f.record("GetAttribLocation", p, name)
	prog, ok := f.programs[p.V]
	if !ok || !prog.linked {
		return graphics.NoAttrib
	}
	if loc, ok := prog.attribs[name]; ok {
		return graphics.Attrib{V: loc}
	}
	return graphics.NoAttrib
}

func (f *Functions) GetProgrami(p graphics.Program, pname graphics.Enum) int {
	f.record("GetProgrami", p, pname)
	prog, ok := f.programs[p.V]
	if pname == graphics.LINK_STATUS && ok && prog.linked {
		return int(graphics.TRUE)
	}
	return int(graphics.FALSE)
}

func (f *Functions) GetProgramInfoLog(p graphics.Program) string {
	f.record("GetProgramInfoLog", p)
	return f.FailLink
}

func (f *Functions) GetShaderi(s graphics.Shader, pname graphics.Enum) int {
	f.record("GetShaderi", s, pname)
	sh, ok := f.shaders[s.V]
	if pname == graphics.COMPILE_STATUS && ok && sh.compiled {
		return int(graphics.TRUE)
	}
	return int(graphics.FALSE)
}

func (f *Functions) GetShaderInfoLog(s graphics.Shader) string {
	f.record("GetShaderInfoLog", s)
	if sh, ok := f.shaders[s.V]; ok {
		return f.FailCompile[sh.ty]
	}
	return ""
}

func (f *Functions) GetUniformLocation(p graphics.Program, name string) graphics.Uniform {
	f.record("GetUniformLocation", p, name)
	prog, ok := f.programs[p.V]
	if !ok || !prog.linked {
		return graphics.NoUniform
	}
	if loc, ok := prog.uniforms[name]; ok {
		return graphics.Uniform{V: loc}
	}
	return graphics.NoUniform
}

var (
	attribPattern  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+\w+\s+(\w+)\s*;`)
	uniformPattern = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
)

// LinkProgram succeeds when every attached shader compiled and FailLink is
// empty. Active attributes are the `in` declarations of the vertex stage and
// active uniforms the `uniform` declarations of both stages, numbered in
// order of appearance.
func (f *Functions) LinkProgram(p graphics.Program) {
	f.record("LinkProgram", p)
	prog, ok := f.programs[p.V]
	if !ok {
		return
	}
	prog.linked = false
	if f.FailLink != "" || len(prog.shaders) < 2 {
		return
	}
	prog.attribs = make(map[string]int32)
	prog.uniforms = make(map[string]int32)
	for _, id := range prog.shaders {
		sh := f.shaders[id]
		if sh == nil || !sh.compiled {
			return
		}
		if sh.ty == graphics.VERTEX_SHADER {
			for _, m := range attribPattern.FindAllStringSubmatch(sh.source, -1) {
				prog.attribs[m[1]] = int32(len(prog.attribs))
			}
		}
		for _, m := range uniformPattern.FindAllStringSubmatch(sh.source, -1) {
			if _, dup := prog.uniforms[m[1]]; !dup {
				// Offset per program so locations of different programs differ.
				prog.uniforms[m[1]] = int32(p.V)*100 + int32(len(prog.uniforms))
			}
		}
	}
	prog.linked = true
}

// ReadPixels fills data with the clear color.
func (f *Functions) ReadPixels(x, y, width, height int, format, ty graphics.Enum, data []byte) {
	f.record("ReadPixels", x, y, width, height, format, ty)
	px := [4]byte{}
	for i, c := range f.clearColor {
		px[i] = byte(c * 255)
	}
	for i := 0; i+4 <= len(data) && i < width*height*4; i += 4 {
		copy(data[i:i+4], px[:])
	}
}

func (f *Functions) ShaderSource(s graphics.Shader, src string) {
	f.record("ShaderSource", s)
	if sh, ok := f.shaders[s.V]; ok {
		sh.source = src
	}
}

// ShaderSourceText returns the source last given to s.
func (f *Functions) ShaderSourceText(s graphics.Shader) string {
	if sh, ok := f.shaders[s.V]; ok {
		return sh.source
	}
	return ""
}

func (f *Functions) TexImage2D(target graphics.Enum, level int, internalFormat int, width, height int, format, ty graphics.Enum, data []byte) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty)
	tex, ok := f.textures[f.boundTextures[f.activeTexture]]
	if !ok || level != 0 {
		return
	}
	tex.image = Image{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: append([]byte(nil), data...),
	}
}

func (f *Functions) TexParameteri(target, pname graphics.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
	if tex, ok := f.textures[f.boundTextures[f.activeTexture]]; ok {
		tex.params[pname] = param
	}
}

func (f *Functions) Uniform1f(dst graphics.Uniform, v float32) {
	f.record("Uniform1f", dst, v)
	f.uniforms[dst.V] = []float32{v}
}

func (f *Functions) Uniform1i(dst graphics.Uniform, v int) {
	f.record("Uniform1i", dst, v)
	f.uniforms[dst.V] = []float32{float32(v)}
}

func (f *Functions) Uniform2f(dst graphics.Uniform, v0, v1 float32) {
	f.record("Uniform2f", dst, v0, v1)
	f.uniforms[dst.V] = []float32{v0, v1}
}

func (f *Functions) UniformMatrix4fv(dst graphics.Uniform, m []float32) {
	f.record("UniformMatrix4fv", dst, len(m))
	f.uniforms[dst.V] = append([]float32(nil), m...)
}

func (f *Functions) UseProgram(p graphics.Program) {
	f.record("UseProgram", p)
	f.current = p.V
}

func (f *Functions) VertexAttribPointer(dst graphics.Attrib, size int, ty graphics.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
	f.viewport = [4]int{x, y, width, height}
}

// Surface is a graphics.Surface whose sizes are set directly by tests.
type Surface struct {
	SurfaceName  string
	ClientWidth  int
	ClientHeight int
	Width        int
	Height       int
	GL           *Functions
	// Err, when set, is returned by Context.
	Err error
}

var _ graphics.Surface = (*Surface)(nil)

// NewSurface returns a surface whose backing store already matches its
// client size.
func NewSurface(name string, width, height int) *Surface {
	return &Surface{
		SurfaceName:  name,
		ClientWidth:  width,
		ClientHeight: height,
		Width:        width,
		Height:       height,
		GL:           New(),
	}
}

func (s *Surface) Name() string { return s.SurfaceName }

func (s *Surface) ClientSize() (int, int) { return s.ClientWidth, s.ClientHeight }

func (s *Surface) Size() (int, int) { return s.Width, s.Height }

func (s *Surface) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

func (s *Surface) Context() (graphics.Functions, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.GL == nil {
		return nil, fmt.Errorf("surface %q has no context", s.SurfaceName)
	}
	return s.GL, nil
}
