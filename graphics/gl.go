package graphics

// Enum values are the ones defined by the OpenGL (ES) registry, so they can be
// passed to any binding without translation.
type Enum uint32

const (
	ARRAY_BUFFER         Enum = 0x8892
	CLAMP_TO_EDGE        Enum = 0x812f
	COLOR_BUFFER_BIT     Enum = 0x4000
	COMPILE_STATUS       Enum = 0x8b81
	DEPTH_BUFFER_BIT     Enum = 0x100
	DEPTH_TEST           Enum = 0xb71
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	FALSE                Enum = 0
	FLOAT                Enum = 0x1406
	FRAGMENT_SHADER      Enum = 0x8b30
	LEQUAL               Enum = 0x203
	LINK_STATUS          Enum = 0x8b82
	NEAREST              Enum = 0x2600
	RGBA                 Enum = 0x1908
	STATIC_DRAW          Enum = 0x88e4
	TEXTURE_2D           Enum = 0xde1
	TEXTURE_MAG_FILTER   Enum = 0x2800
	TEXTURE_MIN_FILTER   Enum = 0x2801
	TEXTURE_WRAP_S       Enum = 0x2802
	TEXTURE_WRAP_T       Enum = 0x2803
	TEXTURE0             Enum = 0x84c0
	TRIANGLES            Enum = 0x4
	TRUE                 Enum = 1
	UNSIGNED_BYTE        Enum = 0x1401
	UNSIGNED_SHORT       Enum = 0x1403
	VERTEX_SHADER        Enum = 0x8b31
)

// Functions is the subset of the OpenGL ES 3.0 command set used by the
// renderer. Every GPU call in the module goes through it, which keeps the
// rendering code independent of a live context.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindBuffer(target Enum, b Buffer)
	BindTexture(target Enum, t Texture)
	BufferData(target Enum, src []byte, usage Enum)
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateProgram() Program
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	DeleteBuffer(b Buffer)
	DeleteProgram(p Program)
	DeleteShader(s Shader)
	DeleteTexture(t Texture)
	DepthFunc(f Enum)
	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	GetAttribLocation(p Program, name string) Attrib
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, internalFormat int, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	Uniform1f(dst Uniform, v float32)
	Uniform1i(dst Uniform, v int)
	Uniform2f(dst Uniform, v0, v1 float32)
	UniformMatrix4fv(dst Uniform, m []float32)
	UseProgram(p Program)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
