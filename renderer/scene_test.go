package renderer

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/richinsley/glscene/geometry"
	"github.com/richinsley/glscene/graphics"
	"github.com/richinsley/glscene/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRotatingCubeDraw(t *testing.T) {
	display, surface := newDisplay(800, 600)
	gl := surface.GL

	scene, err := NewRotatingCube(display, "main")
	require.NoError(t, err)
	assert.Nil(t, scene.Texture())
	gl.Reset()

	scene.Tick(0)
	scene.Draw()

	assert.True(t, gl.Enabled(graphics.DEPTH_TEST))
	assert.Equal(t, graphics.LEQUAL, gl.CurrentDepthFunc())
	assert.Equal(t, []any{float32(0), float32(0), float32(0), float32(1)}, gl.CallsNamed("ClearColor")[0].Args)
	assert.Equal(t, []any{float32(1)}, gl.CallsNamed("ClearDepthf")[0].Args)
	assert.Equal(t, []any{graphics.COLOR_BUFFER_BIT | graphics.DEPTH_BUFFER_BIT}, gl.CallsNamed("Clear")[0].Args)
	assert.Equal(t, [4]int{0, 0, 800, 600}, gl.ViewportRect())
	assert.Equal(t, 3, gl.Count("BindBuffer"))

	require.Len(t, gl.Draws, 1)
	d := gl.Draws[0]
	assert.True(t, d.Indexed)
	assert.Equal(t, graphics.TRIANGLES, d.Mode)
	assert.Equal(t, geometry.CubeIndexCount, d.Count)
	assert.Equal(t, graphics.UNSIGNED_SHORT, d.Type)
	assert.Equal(t, scene.Program().Handle, d.Program)

	m := ComputeMatrices(AspectRatio(800, 600), 0)
	assert.Equal(t, m.ModelView[:], gl.UniformValue(scene.Program().Uniform("uModelViewMatrix")))
	assert.Equal(t, m.Projection[:], gl.UniformValue(scene.Program().Uniform("uProjectionMatrix")))
}

func TestTickIssuesNoCommands(t *testing.T) {
	display, surface := newDisplay(100, 100)
	scene, err := NewRotatingCube(display, "main")
	require.NoError(t, err)
	surface.GL.Reset()

	scene.Tick(1.5)
	scene.SetPointer(3, 4)
	assert.Empty(t, surface.GL.Calls)
	assert.Equal(t, float32(1.5), scene.State().Param)
	assert.Equal(t, [2]float32{3, 4}, scene.State().Pointer)
}

func TestTextureCubeEndToEnd(t *testing.T) {
	display, surface := newDisplay(640, 480)
	gl := surface.GL

	scene, err := NewTextureCube(display, "main")
	require.NoError(t, err)
	tex := scene.Texture()
	require.NotNil(t, tex)
	assert.Equal(t, [4]byte{0, 0, 255, 255}, gl.Texel(tex.Handle, 0, 0))
	assert.Equal(t, []float32{0}, gl.UniformValue(scene.Program().Uniform("u_texture")))

	scene.UploadImage(solid(2, 2, color.RGBA{R: 255, A: 255}))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, gl.Texel(tex.Handle, 1, 1))

	gl.Reset()
	scene.Tick(0.25)
	scene.Draw()

	// Three attribute buffers and the index buffer.
	assert.Equal(t, 4, gl.Count("BindBuffer"))
	for _, name := range []string{"a_position", "a_texcoord", "a_color"} {
		assert.True(t, gl.AttribArrayEnabled(scene.Program().Attrib(name)), name)
	}
	require.Len(t, gl.Draws, 1)
	assert.Equal(t, fakegl.Draw{
		Indexed: true,
		Mode:    graphics.TRIANGLES,
		Count:   36,
		Type:    graphics.UNSIGNED_SHORT,
		Program: scene.Program().Handle,
		Texture: tex.Handle,
	}, gl.Draws[0])
}

func TestResizeIdempotent(t *testing.T) {
	display, surface := newDisplay(320, 240)
	gl := surface.GL
	scene, err := NewRotatingCube(display, "main")
	require.NoError(t, err)
	gl.Reset()

	scene.Draw()
	scene.Draw()
	scene.Resize()
	assert.Equal(t, 1, gl.Count("Viewport"))

	surface.ClientWidth, surface.ClientHeight = 500, 250
	scene.Draw()
	assert.Equal(t, 2, gl.Count("Viewport"))
	assert.Equal(t, [4]int{0, 0, 500, 250}, gl.ViewportRect())
	w, h := surface.Size()
	assert.Equal(t, []int{500, 250}, []int{w, h})
	assert.Equal(t, 500, scene.State().Width)

	// The projection follows the displayed aspect.
	want := ComputeMatrices(2, 0).Projection
	assert.Equal(t, want[:], gl.UniformValue(scene.Program().Uniform("uProjectionMatrix")))
}

func TestResizeZeroHeight(t *testing.T) {
	display, surface := newDisplay(320, 0)
	gl := surface.GL
	scene, err := NewRotatingCube(display, "main")
	require.NoError(t, err)

	scene.Draw()
	want := ComputeMatrices(1, 0).Projection
	assert.Equal(t, want[:], gl.UniformValue(scene.Program().Uniform("uProjectionMatrix")))
}

func TestQueueImageLatestWins(t *testing.T) {
	display, surface := newDisplay(64, 64)
	gl := surface.GL
	scene, err := NewTextureCube(display, "main")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scene.QueueImage(solid(1, 1, color.RGBA{R: 10, A: 255}))
		}()
	}
	wg.Wait()
	scene.QueueImage(solid(3, 3, color.RGBA{G: 255, A: 255}))

	// Nothing reaches the GPU before the next draw.
	assert.Equal(t, [4]byte{0, 0, 255, 255}, gl.Texel(scene.Texture().Handle, 0, 0))

	gl.Reset()
	scene.Draw()
	assert.Equal(t, 1, gl.Count("TexImage2D"))
	assert.Equal(t, 3, scene.Texture().Width)
	assert.Equal(t, [4]byte{0, 255, 0, 255}, gl.Texel(scene.Texture().Handle, 2, 2))

	gl.Reset()
	scene.Draw()
	assert.Zero(t, gl.Count("TexImage2D"))
}

func TestTextureBoard(t *testing.T) {
	display, surface := newDisplay(400, 300)
	gl := surface.GL
	scene, err := NewTextureBoard(display, "main")
	require.NoError(t, err)

	position := scene.attributes[0].buffer
	assert.Equal(t, geometry.Rect(0, 0, 400, 300), floatsOf(gl.BufferContents(position.Handle)))

	scene.Draw()
	require.Len(t, gl.Draws, 1)
	assert.False(t, gl.Draws[0].Indexed)
	assert.Equal(t, 6, gl.Draws[0].Count)
	assert.Equal(t, []float32{400, 300}, gl.UniformValue(scene.Program().Uniform("u_resolution")))

	handle := position.Handle
	scene.QueueImage(solid(16, 8, color.White))
	scene.Draw()
	assert.Equal(t, handle, position.Handle)
	assert.Equal(t, geometry.Rect(0, 0, 16, 8), floatsOf(gl.BufferContents(handle)))

	// The board image is not flipped.
	assert.False(t, scene.Texture().FlipY)
}

func TestFragmentCanvas(t *testing.T) {
	display, surface := newDisplay(200, 100)
	gl := surface.GL
	scene, err := NewFragmentCanvas(display, "main", "")
	require.NoError(t, err)
	assert.Nil(t, scene.Texture())

	scene.Tick(2.5)
	scene.SetPointer(20, 30)
	scene.Draw()

	p := scene.Program()
	assert.Equal(t, []float32{2.5}, gl.UniformValue(p.Uniform("u_time")))
	assert.Equal(t, []float32{200, 100}, gl.UniformValue(p.Uniform("u_resolution")))
	assert.Equal(t, []float32{20, 30}, gl.UniformValue(p.Uniform("u_mouse")))
	assert.Zero(t, gl.Count("UniformMatrix4fv"))
	require.Len(t, gl.Draws, 1)
	assert.Equal(t, 6, gl.Draws[0].Count)
}

func TestFragmentCanvasWithoutOptionalUniforms(t *testing.T) {
	const fragment = `#version 300 es
precision highp float;
out vec4 fragColor;
uniform float u_time;
void main() {
  fragColor = vec4(abs(sin(u_time)), 0.0, 0.0, 1.0);
}
`
	display, surface := newDisplay(50, 50)
	gl := surface.GL
	scene, err := NewFragmentCanvas(display, "main", fragment)
	require.NoError(t, err)
	gl.Reset()

	scene.Tick(1)
	scene.Draw()
	assert.Equal(t, 1, gl.Count("Uniform1f"))
	assert.Zero(t, gl.Count("Uniform2f"))
	assert.Len(t, gl.Draws, 1)
}

func TestNewSceneFailureReturnsNil(t *testing.T) {
	display, surface := newDisplay(50, 50)
	surface.GL.FailCompile = map[graphics.Enum]string{graphics.VERTEX_SHADER: "bad"}

	scene, err := New(TextureCube, display, "main", "", WithDiagnostics(func(string) {}))
	var compileErr *ShaderCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Nil(t, scene)
	assert.Zero(t, surface.GL.Count("CreateBuffer"))
}

func TestNewUnknownScene(t *testing.T) {
	display, _ := newDisplay(50, 50)
	_, err := New("teapot", display, "main", "")
	require.Error(t, err)
}

func TestReadPixels(t *testing.T) {
	display, _ := newDisplay(3, 2)
	scene, err := NewRotatingCube(display, "main")
	require.NoError(t, err)
	scene.Draw()

	pixels, w, h := scene.ReadPixels()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	require.Len(t, pixels, 3*2*4)
	assert.Equal(t, []byte{0, 0, 0, 255}, pixels[:4])
}

func TestDestroy(t *testing.T) {
	display, surface := newDisplay(10, 10)
	gl := surface.GL
	scene, err := NewTextureCube(display, "main")
	require.NoError(t, err)
	gl.Reset()

	scene.Destroy()
	assert.Equal(t, 4, gl.Count("DeleteBuffer"))
	assert.Equal(t, 1, gl.Count("DeleteTexture"))
	assert.Equal(t, 1, gl.Count("DeleteProgram"))
	assert.Equal(t, 2, gl.Count("DeleteShader"))
}
