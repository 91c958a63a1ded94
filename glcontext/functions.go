// Package glcontext implements graphics.Functions on top of the go-gl
// OpenGL 4.1 core bindings.
package glcontext

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glscene/graphics"
)

// Functions forwards every call to the current OpenGL context. It has no
// state of its own; the context must be current on the calling thread.
type Functions struct {
	vao uint32
}

var _ graphics.Functions = (*Functions)(nil)

// Init loads the GL entry points for the current context and binds a vertex
// array object. The core profile rejects attribute setup without one, while
// ES 3.0 provides a default.
func Init() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	f := &Functions{}
	gl.GenVertexArrays(1, &f.vao)
	gl.BindVertexArray(f.vao)
	return f, nil
}

// Release deletes the vertex array object created by Init.
func (f *Functions) Release() {
	if f.vao != 0 {
		gl.DeleteVertexArrays(1, &f.vao)
		f.vao = 0
	}
}

func (f *Functions) ActiveTexture(texture graphics.Enum) {
	gl.ActiveTexture(uint32(texture))
}

func (f *Functions) AttachShader(p graphics.Program, s graphics.Shader) {
	gl.AttachShader(p.V, s.V)
}

func (f *Functions) BindBuffer(target graphics.Enum, b graphics.Buffer) {
	gl.BindBuffer(uint32(target), b.V)
}

func (f *Functions) BindTexture(target graphics.Enum, t graphics.Texture) {
	gl.BindTexture(uint32(target), t.V)
}

func (f *Functions) BufferData(target graphics.Enum, src []byte, usage graphics.Enum) {
	var ptr unsafe.Pointer
	if len(src) > 0 {
		ptr = gl.Ptr(src)
	}
	gl.BufferData(uint32(target), len(src), ptr, uint32(usage))
}

func (f *Functions) Clear(mask graphics.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *Functions) ClearDepthf(d float32) {
	gl.ClearDepthf(d)
}

func (f *Functions) CompileShader(s graphics.Shader) {
	gl.CompileShader(s.V)
}

func (f *Functions) CreateBuffer() graphics.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return graphics.Buffer{V: b}
}

func (f *Functions) CreateProgram() graphics.Program {
	return graphics.Program{V: gl.CreateProgram()}
}

func (f *Functions) CreateShader(ty graphics.Enum) graphics.Shader {
	return graphics.Shader{V: gl.CreateShader(uint32(ty))}
}

func (f *Functions) CreateTexture() graphics.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return graphics.Texture{V: t}
}

func (f *Functions) DeleteBuffer(b graphics.Buffer) {
	gl.DeleteBuffers(1, &b.V)
}

func (f *Functions) DeleteProgram(p graphics.Program) {
	gl.DeleteProgram(p.V)
}

func (f *Functions) DeleteShader(s graphics.Shader) {
	gl.DeleteShader(s.V)
}

func (f *Functions) DeleteTexture(t graphics.Texture) {
	gl.DeleteTextures(1, &t.V)
}

func (f *Functions) DepthFunc(fn graphics.Enum) {
	gl.DepthFunc(uint32(fn))
}

func (f *Functions) DrawArrays(mode graphics.Enum, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) DrawElements(mode graphics.Enum, count int, ty graphics.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}

func (f *Functions) Enable(cap graphics.Enum) {
	gl.Enable(uint32(cap))
}

func (f *Functions) EnableVertexAttribArray(a graphics.Attrib) {
	gl.EnableVertexAttribArray(uint32(a.V))
}

func (f *Functions) GetAttribLocation(p graphics.Program, name string) graphics.Attrib {
	return graphics.Attrib{V: gl.GetAttribLocation(p.V, gl.Str(name+"\x00"))}
}

func (f *Functions) GetProgrami(p graphics.Program, pname graphics.Enum) int {
	var v int32
	gl.GetProgramiv(p.V, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p graphics.Program) string {
	var logLength int32
	gl.GetProgramiv(p.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(p.V, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (f *Functions) GetShaderi(s graphics.Shader, pname graphics.Enum) int {
	var v int32
	gl.GetShaderiv(s.V, uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s graphics.Shader) string {
	var logLength int32
	gl.GetShaderiv(s.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(s.V, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (f *Functions) GetUniformLocation(p graphics.Program, name string) graphics.Uniform {
	return graphics.Uniform{V: gl.GetUniformLocation(p.V, gl.Str(name+"\x00"))}
}

func (f *Functions) LinkProgram(p graphics.Program) {
	gl.LinkProgram(p.V)
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty graphics.Enum, data []byte) {
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), gl.Ptr(data))
}

func (f *Functions) ShaderSource(s graphics.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s.V, 1, csources, nil)
	free()
}

func (f *Functions) TexImage2D(target graphics.Enum, level int, internalFormat int, width, height int, format, ty graphics.Enum, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), ptr)
}

func (f *Functions) TexParameteri(target, pname graphics.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) Uniform1f(dst graphics.Uniform, v float32) {
	gl.Uniform1f(dst.V, v)
}

func (f *Functions) Uniform1i(dst graphics.Uniform, v int) {
	gl.Uniform1i(dst.V, int32(v))
}

func (f *Functions) Uniform2f(dst graphics.Uniform, v0, v1 float32) {
	gl.Uniform2f(dst.V, v0, v1)
}

func (f *Functions) UniformMatrix4fv(dst graphics.Uniform, m []float32) {
	gl.UniformMatrix4fv(dst.V, int32(len(m)/16), false, &m[0])
}

func (f *Functions) UseProgram(p graphics.Program) {
	gl.UseProgram(p.V)
}

func (f *Functions) VertexAttribPointer(dst graphics.Attrib, size int, ty graphics.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(dst.V), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}
