package renderer

import (
	"fmt"
	"image"
	"log"

	"github.com/richinsley/glscene/geometry"
	"github.com/richinsley/glscene/graphics"
	"github.com/richinsley/glscene/shader"
)

// VertexAttribute describes one per-vertex input of a scene.
type VertexAttribute struct {
	Name       string
	Components int
	Data       []float32
}

// DrawCall is the draw command a scene issues each frame: indexed triangles
// with 16 bit indices, or Count vertices of plain triangles.
type DrawCall struct {
	Indexed bool
	Count   int
}

// SceneDesc is everything that differs between scenes.
type SceneDesc struct {
	Title  string
	Source shader.Source
	// Attributes are bound in order on every draw.
	Attributes []VertexAttribute
	// Indices, when present, select indexed drawing.
	Indices []uint16
	// VertexCount is the number of vertices of a non-indexed draw.
	VertexCount int
	Uniforms    UniformNames
	// Textured scenes own a texture bound to unit 0 and sampled through
	// Uniforms.Sampler.
	Textured bool
	FlipY    bool
	// ImageRect names a 2 component attribute holding a pixel rectangle.
	// When its Data is nil it starts as the surface rectangle, and every
	// uploaded image resizes it to the image's size.
	ImageRect string
}

// FrameState is the state a scene carries from frame to frame.
type FrameState struct {
	// Param is the animation parameter: a rotation angle or elapsed time.
	Param float32
	// Width and Height are the backing store size seen by the last Resize.
	Width, Height int
	// Viewport is the last viewport set on the context.
	Viewport [4]int
	Pointer  [2]float32

	viewportSet bool
}

type attribute struct {
	name   string
	slot   graphics.Attrib
	buffer *GeometryBuffer
}

// Scene owns one program, its geometry and an optional texture, and draws
// them to a surface. All methods except QueueImage must be called on the
// thread that owns the GPU context.
type Scene struct {
	Title string

	f          graphics.Functions
	surface    graphics.Surface
	program    *Program
	attributes []attribute
	indices    *GeometryBuffer
	texture    *Texture
	call       DrawCall
	uniforms   passUniforms
	imageRect  string
	state      FrameState
	pending    chan image.Image
}

// NewScene bootstraps desc.Source on the named surface and uploads the
// scene's geometry. A failed bootstrap is fatal; no Scene is returned.
func NewScene(display graphics.Display, surfaceName string, desc SceneDesc, opts ...BootstrapOption) (*Scene, error) {
	attribNames := make([]string, 0, len(desc.Attributes))
	for _, a := range desc.Attributes {
		attribNames = append(attribNames, a.Name)
	}
	opts = append(opts, WithAttributes(attribNames...), WithUniforms(desc.Uniforms.list()...))

	b, err := Bootstrap(display, surfaceName, desc.Source, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scene %q: %w", desc.Title, err)
	}
	f := b.Functions

	s := &Scene{
		Title:     desc.Title,
		f:         f,
		surface:   b.Surface,
		program:   b.Program,
		uniforms:  resolveUniforms(b.Program, desc.Uniforms),
		imageRect: desc.ImageRect,
		pending:   make(chan image.Image, 1),
	}

	for _, a := range desc.Attributes {
		data := a.Data
		if data == nil && a.Name == desc.ImageRect {
			w, h := b.Surface.Size()
			data = geometry.Rect(0, 0, float32(w), float32(h))
		}
		s.attributes = append(s.attributes, attribute{
			name:   a.Name,
			slot:   b.Program.Attrib(a.Name),
			buffer: CreateBuffer(f, graphics.ARRAY_BUFFER, data, a.Components),
		})
	}

	if len(desc.Indices) > 0 {
		s.indices = CreateIndexBuffer(f, desc.Indices)
		s.call = DrawCall{Indexed: true, Count: len(desc.Indices)}
	} else {
		s.call = DrawCall{Count: desc.VertexCount}
	}

	if desc.Textured {
		f.ActiveTexture(graphics.TEXTURE0)
		s.texture = CreatePlaceholder(f)
		s.texture.FlipY = desc.FlipY
		if s.uniforms.sampler.Valid() {
			f.Uniform1i(s.uniforms.sampler, 0)
		}
	}

	log.Printf("Successfully loaded scene: %s", s.Title)
	return s, nil
}

// Tick stores the animation parameter for the next draw. It issues no GPU
// commands.
func (s *Scene) Tick(param float64) {
	s.state.Param = float32(param)
}

// SetPointer stores the pointer position, in surface pixels, for the next draw.
func (s *Scene) SetPointer(x, y float32) {
	s.state.Pointer = [2]float32{x, y}
}

// Resize matches the surface's backing store to its displayed size, sets the
// viewport to cover it when it changed, and refreshes the resolution
// uniform if the program has one.
func (s *Scene) Resize() {
	displayWidth, displayHeight := s.surface.ClientSize()
	width, height := s.surface.Size()
	if width != displayWidth || height != displayHeight {
		s.surface.SetSize(displayWidth, displayHeight)
		width, height = displayWidth, displayHeight
	}
	s.state.Width, s.state.Height = width, height

	viewport := [4]int{0, 0, width, height}
	if !s.state.viewportSet || s.state.Viewport != viewport {
		s.f.Viewport(0, 0, width, height)
		s.state.Viewport = viewport
		s.state.viewportSet = true
	}

	if s.uniforms.resolution.Valid() {
		s.f.Uniform2f(s.uniforms.resolution, float32(displayWidth), float32(displayHeight))
	}
}

// Draw renders one frame.
func (s *Scene) Draw() {
	f := s.f
	f.UseProgram(s.program.Handle)

	s.uploadPending()
	s.Resize()

	f.ClearColor(0, 0, 0, 1)
	f.ClearDepthf(1)
	f.Enable(graphics.DEPTH_TEST)
	f.DepthFunc(graphics.LEQUAL)
	f.Clear(graphics.COLOR_BUFFER_BIT | graphics.DEPTH_BUFFER_BIT)

	for _, a := range s.attributes {
		BindAttribute(f, a.buffer.Components, a.slot, a.buffer)
	}
	if s.indices != nil {
		f.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, s.indices.Handle)
	}
	if s.texture != nil {
		f.ActiveTexture(graphics.TEXTURE0)
		f.BindTexture(graphics.TEXTURE_2D, s.texture.Handle)
	}

	u := s.uniforms
	if u.projection.Valid() || u.modelView.Valid() {
		displayWidth, displayHeight := s.surface.ClientSize()
		m := ComputeMatrices(AspectRatio(displayWidth, displayHeight), s.state.Param)
		if u.projection.Valid() {
			f.UniformMatrix4fv(u.projection, m.Projection[:])
		}
		if u.modelView.Valid() {
			f.UniformMatrix4fv(u.modelView, m.ModelView[:])
		}
	}
	if u.time.Valid() {
		f.Uniform1f(u.time, s.state.Param)
	}
	if u.pointer.Valid() {
		f.Uniform2f(u.pointer, s.state.Pointer[0], s.state.Pointer[1])
	}

	if s.call.Indexed {
		f.DrawElements(graphics.TRIANGLES, s.call.Count, graphics.UNSIGNED_SHORT, 0)
	} else {
		f.DrawArrays(graphics.TRIANGLES, 0, s.call.Count)
	}
}

// UploadImage replaces the scene texture's pixels with img. Scenes without a
// texture ignore it.
func (s *Scene) UploadImage(img image.Image) {
	if s.texture == nil {
		log.Printf("Scene %s has no texture, ignoring image", s.Title)
		return
	}
	UploadImage(s.f, s.texture, img)

	if s.imageRect != "" {
		for _, a := range s.attributes {
			if a.name == s.imageRect {
				UpdateBuffer(s.f, a.buffer, geometry.Rect(0, 0, float32(s.texture.Width), float32(s.texture.Height)))
			}
		}
	}
}

// QueueImage hands img to the scene from any goroutine. It is uploaded at
// the start of the next Draw; if several arrive in between, the latest wins.
func (s *Scene) QueueImage(img image.Image) {
	for {
		select {
		case s.pending <- img:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

func (s *Scene) uploadPending() {
	select {
	case img := <-s.pending:
		s.UploadImage(img)
	default:
	}
}

// ReadPixels reads back the backing store as bottom-up RGBA rows.
func (s *Scene) ReadPixels() (pixels []byte, width, height int) {
	width, height = s.surface.Size()
	pixels = make([]byte, width*height*4)
	s.f.ReadPixels(0, 0, width, height, graphics.RGBA, graphics.UNSIGNED_BYTE, pixels)
	return pixels, width, height
}

// State returns a copy of the frame state.
func (s *Scene) State() FrameState {
	return s.state
}

// Program returns the scene's linked program.
func (s *Scene) Program() *Program {
	return s.program
}

// Texture returns the scene's texture, or nil.
func (s *Scene) Texture() *Texture {
	return s.texture
}

// Destroy releases every GPU object owned by the scene.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	log.Printf("Destroying scene: %s", s.Title)

	for _, a := range s.attributes {
		s.f.DeleteBuffer(a.buffer.Handle)
	}
	if s.indices != nil {
		s.f.DeleteBuffer(s.indices.Handle)
	}
	if s.texture != nil {
		s.f.DeleteTexture(s.texture.Handle)
	}
	s.program.Delete(s.f)
}
