package graphics

// Context is the per-frame driver of an on-screen surface: it reports when
// the user asked to close, presents the finished frame and supplies time and
// pointer input to the render loop.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// GetMouseInput returns the current mouse state: x, y, clickX, clickY
	GetMouseInput() [4]float32
}

// Surface is a named drawing target. ClientSize is the size the surface is
// displayed at; Size is the size of its backing store, which the renderer
// reconciles with ClientSize every frame.
type Surface interface {
	Name() string
	ClientSize() (width, height int)
	Size() (width, height int)
	SetSize(width, height int)
	// Context acquires the GPU command interface for this surface.
	Context() (Functions, error)
}

// Display resolves surfaces by name.
type Display interface {
	Surface(name string) (Surface, bool)
}

// Surfaces is a Display backed by a map.
type Surfaces map[string]Surface

func (s Surfaces) Surface(name string) (Surface, bool) {
	surface, ok := s[name]
	return surface, ok
}
