package renderer

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/richinsley/glscene/graphics"
	"github.com/richinsley/glscene/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatsOf(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}

func TestCreateBuffer(t *testing.T) {
	gl := fakegl.New()
	data := []float32{0, 1, 2, 3, 4, 5}

	buf := CreateBuffer(gl, graphics.ARRAY_BUFFER, data, 3)
	assert.True(t, buf.Handle.Valid())
	assert.Equal(t, 2, buf.Count)
	assert.Equal(t, graphics.FLOAT, buf.Type)
	assert.Equal(t, data, floatsOf(gl.BufferContents(buf.Handle)))

	usage := gl.CallsNamed("BufferData")[0].Args[2]
	assert.Equal(t, graphics.STATIC_DRAW, usage)
}

func TestCreateIndexBuffer(t *testing.T) {
	gl := fakegl.New()
	buf := CreateIndexBuffer(gl, []uint16{0, 1, 2, 0, 2, 300})

	assert.Equal(t, graphics.ELEMENT_ARRAY_BUFFER, buf.Target)
	assert.Equal(t, graphics.UNSIGNED_SHORT, buf.Type)
	assert.Equal(t, 6, buf.Count)

	raw := gl.BufferContents(buf.Handle)
	require.Len(t, raw, 12)
	assert.Equal(t, uint16(300), binary.LittleEndian.Uint16(raw[10:]))
}

func TestUpdateBufferKeepsObject(t *testing.T) {
	gl := fakegl.New()
	buf := CreateBuffer(gl, graphics.ARRAY_BUFFER, []float32{1, 1}, 2)
	handle := buf.Handle

	UpdateBuffer(gl, buf, []float32{1, 2, 3, 4})
	assert.Equal(t, handle, buf.Handle)
	assert.Equal(t, 2, buf.Count)
	assert.Equal(t, []float32{1, 2, 3, 4}, floatsOf(gl.BufferContents(handle)))
	assert.Equal(t, 1, gl.Count("CreateBuffer"))
}

func TestBindAttribute(t *testing.T) {
	gl := fakegl.New()
	buf := CreateBuffer(gl, graphics.ARRAY_BUFFER, make([]float32, 12), 4)
	gl.Reset()

	BindAttribute(gl, 4, graphics.Attrib{V: 2}, buf)
	require.Len(t, gl.Calls, 3)
	assert.Equal(t, fakegl.Call{Name: "BindBuffer", Args: []any{graphics.ARRAY_BUFFER, buf.Handle}}, gl.Calls[0])
	assert.Equal(t, fakegl.Call{
		Name: "VertexAttribPointer",
		Args: []any{graphics.Attrib{V: 2}, 4, graphics.FLOAT, false, 0, 0},
	}, gl.Calls[1])
	assert.True(t, gl.AttribArrayEnabled(graphics.Attrib{V: 2}))
}

func TestBindAttributeInactiveSlot(t *testing.T) {
	gl := fakegl.New()
	buf := CreateBuffer(gl, graphics.ARRAY_BUFFER, make([]float32, 6), 3)
	gl.Reset()

	BindAttribute(gl, 3, graphics.NoAttrib, buf)
	assert.Equal(t, 1, gl.Count("BindBuffer"))
	assert.Zero(t, gl.Count("VertexAttribPointer"))
	assert.Zero(t, gl.Count("EnableVertexAttribArray"))
}

func TestCreatePlaceholder(t *testing.T) {
	gl := fakegl.New()
	tex := CreatePlaceholder(gl)

	img, ok := gl.TextureImage(tex.Handle)
	require.True(t, ok)
	assert.Equal(t, 1, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.Equal(t, [4]byte{0, 0, 255, 255}, gl.Texel(tex.Handle, 0, 0))

	params := map[graphics.Enum]graphics.Enum{
		graphics.TEXTURE_WRAP_S:     graphics.CLAMP_TO_EDGE,
		graphics.TEXTURE_WRAP_T:     graphics.CLAMP_TO_EDGE,
		graphics.TEXTURE_MIN_FILTER: graphics.NEAREST,
		graphics.TEXTURE_MAG_FILTER: graphics.NEAREST,
	}
	for pname, want := range params {
		got, ok := gl.TextureParam(tex.Handle, pname)
		require.True(t, ok)
		assert.Equal(t, int(want), got, "param 0x%x", uint32(pname))
	}
}

// twoRows is 2x2: a red top row and a green bottom row.
func twoRows() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	img.Set(0, 0, red)
	img.Set(1, 0, red)
	img.Set(0, 1, green)
	img.Set(1, 1, green)
	return img
}

func TestUploadImage(t *testing.T) {
	gl := fakegl.New()
	tex := CreatePlaceholder(gl)
	handle := tex.Handle

	UploadImage(gl, tex, twoRows())
	assert.Equal(t, handle, tex.Handle)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, [4]byte{255, 0, 0, 255}, gl.Texel(handle, 0, 0))
	assert.Equal(t, [4]byte{0, 255, 0, 255}, gl.Texel(handle, 1, 1))

	// Upload leaves sampling parameters alone.
	filter, _ := gl.TextureParam(handle, graphics.TEXTURE_MIN_FILTER)
	assert.Equal(t, int(graphics.NEAREST), filter)
}

func TestUploadImageFlipped(t *testing.T) {
	gl := fakegl.New()
	tex := CreatePlaceholder(gl)
	tex.FlipY = true

	UploadImage(gl, tex, twoRows())
	assert.Equal(t, [4]byte{0, 255, 0, 255}, gl.Texel(tex.Handle, 0, 0))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, gl.Texel(tex.Handle, 0, 1))
}

func TestUploadImageOffsetBounds(t *testing.T) {
	gl := fakegl.New()
	tex := CreatePlaceholder(gl)

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 2, color.RGBA{B: 255, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	UploadImage(gl, tex, sub)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, [4]byte{0, 0, 255, 255}, gl.Texel(tex.Handle, 0, 0))
}

func TestUploadImageKeepsStraightAlpha(t *testing.T) {
	gl := fakegl.New()
	tex := CreatePlaceholder(gl)
	halfRed := color.NRGBA{R: 255, A: 128}

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, halfRed)
	UploadImage(gl, tex, img)
	assert.Equal(t, [4]byte{255, 0, 0, 128}, gl.Texel(tex.Handle, 0, 0))

	// The converting path, taken for offset bounds, keeps it straight too.
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	src.SetNRGBA(1, 1, halfRed)
	UploadImage(gl, tex, src.SubImage(image.Rect(1, 1, 3, 3)))
	assert.Equal(t, [4]byte{255, 0, 0, 128}, gl.Texel(tex.Handle, 0, 0))

	flipped := CreatePlaceholder(gl)
	flipped.FlipY = true
	column := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	column.SetNRGBA(0, 0, halfRed)
	UploadImage(gl, flipped, column)
	assert.Equal(t, [4]byte{255, 0, 0, 128}, gl.Texel(flipped.Handle, 0, 1))
}
