package renderer

import (
	"fmt"

	"github.com/richinsley/glscene/geometry"
	"github.com/richinsley/glscene/graphics"
	"github.com/richinsley/glscene/shader"
)

// Scene names accepted by New.
const (
	RotatingCube   = "rotating-cube"
	TextureCube    = "texture-cube"
	TextureBoard   = "texture-board"
	FragmentCanvas = "fragment-canvas"
)

// SceneNames lists every scene New can build.
var SceneNames = []string{RotatingCube, TextureCube, TextureBoard, FragmentCanvas}

// New builds the scene called name. fragment is only used by the fragment
// canvas.
func New(name string, display graphics.Display, surfaceName, fragment string, opts ...BootstrapOption) (*Scene, error) {
	switch name {
	case RotatingCube:
		return NewRotatingCube(display, surfaceName, opts...)
	case TextureCube:
		return NewTextureCube(display, surfaceName, opts...)
	case TextureBoard:
		return NewTextureBoard(display, surfaceName, opts...)
	case FragmentCanvas:
		return NewFragmentCanvas(display, surfaceName, fragment, opts...)
	}
	return nil, fmt.Errorf("unknown scene: %s", name)
}

// NewRotatingCube draws the cube with a solid color per face. Tick takes the
// rotation angle in radians.
func NewRotatingCube(display graphics.Display, surfaceName string, opts ...BootstrapOption) (*Scene, error) {
	cube := geometry.Cube()
	return NewScene(display, surfaceName, SceneDesc{
		Title:  "rotating cube",
		Source: shader.ColorCube(),
		Attributes: []VertexAttribute{
			{Name: "aVertexPosition", Components: geometry.PositionSize, Data: cube.Positions},
			{Name: "aVertexColor", Components: geometry.ColorSize, Data: cube.Colors},
		},
		Indices: cube.Indices,
		Uniforms: UniformNames{
			Projection: "uProjectionMatrix",
			ModelView:  "uModelViewMatrix",
		},
	}, opts...)
}

// NewTextureCube draws the cube with an image on every face, tinted by the
// face color. It shows the blue placeholder until an image is uploaded.
func NewTextureCube(display graphics.Display, surfaceName string, opts ...BootstrapOption) (*Scene, error) {
	cube := geometry.Cube()
	return NewScene(display, surfaceName, SceneDesc{
		Title:  "texture cube",
		Source: shader.TextureCube(),
		Attributes: []VertexAttribute{
			{Name: "a_position", Components: geometry.PositionSize, Data: cube.Positions},
			{Name: "a_texcoord", Components: geometry.TexCoordSize, Data: cube.TexCoords},
			{Name: "a_color", Components: geometry.ColorSize, Data: cube.Colors},
		},
		Indices: cube.Indices,
		Uniforms: UniformNames{
			Projection: "u_projection_matrix",
			ModelView:  "u_model_view_matrix",
			Sampler:    "u_texture",
		},
		Textured: true,
		FlipY:    true,
	}, opts...)
}

// NewTextureBoard draws an image at its pixel size from the top left corner
// of the surface.
func NewTextureBoard(display graphics.Display, surfaceName string, opts ...BootstrapOption) (*Scene, error) {
	return NewScene(display, surfaceName, SceneDesc{
		Title:  "texture board",
		Source: shader.TextureBoard(),
		Attributes: []VertexAttribute{
			{Name: "a_position", Components: 2},
			{Name: "a_texcoord", Components: 2, Data: geometry.BoardTexCoords()},
		},
		VertexCount: 6,
		Uniforms: UniformNames{
			Resolution: "u_resolution",
			Sampler:    "u_image",
		},
		Textured:  true,
		ImageRect: "a_position",
	}, opts...)
}

// NewFragmentCanvas runs fragment over the whole surface. An empty fragment
// selects the built-in gradient. Tick takes the elapsed time in seconds.
func NewFragmentCanvas(display graphics.Display, surfaceName, fragment string, opts ...BootstrapOption) (*Scene, error) {
	return NewScene(display, surfaceName, SceneDesc{
		Title:  "fragment canvas",
		Source: shader.Canvas(fragment),
		Attributes: []VertexAttribute{
			{Name: "position", Components: 2, Data: geometry.Quad()},
		},
		VertexCount: 6,
		Uniforms: UniformNames{
			Resolution: "u_resolution",
			Time:       "u_time",
			Pointer:    "u_mouse",
		},
	}, opts...)
}
