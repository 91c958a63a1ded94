package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glscene/glcontext"
	"github.com/richinsley/glscene/graphics"
	options "github.com/richinsley/glscene/options"
)

// Context is a GLFW window acting both as the frame driver and as a named
// drawing surface. It tracks mouse state for GetMouseInput.
type Context struct {
	window          *glfw.Window
	name            string
	width           int
	height          int
	functions       *glcontext.Functions
	lastMouseClickX float64
	lastMouseClickY float64
	mouseWasDown    bool
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

var (
	_ graphics.Context = (*Context)(nil)
	_ graphics.Surface = (*Context)(nil)
)

// New creates a window sized from the options and returns a Context for it.
func New(opts *options.SceneOptions, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, "glscene", nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		name:         *opts.Surface,
		width:        *opts.Width,
		height:       *opts.Height,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)

	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// Name implements graphics.Surface.
func (c *Context) Name() string {
	return c.name
}

// ClientSize reports the framebuffer size of the window, which is what the
// window actually displays in pixels.
func (c *Context) ClientSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Size reports the render size last agreed with the renderer.
func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// SetSize records the new render size. The default framebuffer follows the
// window, so there is nothing to reallocate.
func (c *Context) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Context makes the window's GL context current and returns its command
// interface. The entry points are loaded once.
func (c *Context) Context() (graphics.Functions, error) {
	c.MakeCurrent()
	if c.functions == nil {
		f, err := glcontext.Init()
		if err != nil {
			return nil, fmt.Errorf("window %q: %w", c.name, err)
		}
		c.functions = f
	}
	return c.functions, nil
}

// GetMouseInput implements the method for the graphics.Context interface.
// Coordinates are in framebuffer pixels with the origin at the bottom left;
// the click position is negated while the button is up.
func (c *Context) GetMouseInput() [4]float32 {
	var mouseData [4]float32
	if c.window == nil {
		return mouseData
	}

	fbWidth, fbHeight := c.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}

	cursorX, cursorY := c.window.GetCursorPos()
	pixelX := cursorX * scaleX
	pixelY := cursorY * scaleY

	mouseX := float32(pixelX)
	mouseY := float32(fbHeight) - float32(pixelY)

	isMouseDown := c.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	if isMouseDown && !c.mouseWasDown {
		c.lastMouseClickX = pixelX
		c.lastMouseClickY = pixelY
	}
	c.mouseWasDown = isMouseDown

	clickX := float32(c.lastMouseClickX)
	clickY := float32(fbHeight) - float32(c.lastMouseClickY)

	if !isMouseDown {
		clickX = -clickX
		clickY = -clickY
	}

	mouseData = [4]float32{mouseX, mouseY, clickX, clickY}
	return mouseData
}

func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown releases the vertex array and destroys the window.
func (c *Context) Shutdown() {
	if c.functions != nil {
		c.MakeCurrent()
		c.functions.Release()
	}
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
