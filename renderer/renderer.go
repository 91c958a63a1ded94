package renderer

import (
	"log"

	"github.com/richinsley/glscene/graphics"
)

// Run drives scene on window until the window asks to close, then destroys
// the scene. The animation parameter is the time in seconds since Run was
// called, which for the cubes is also the rotation angle in radians.
func Run(window graphics.Context, scene *Scene) {
	defer scene.Destroy()

	startTime := window.Time()
	var frameCount int64

	for !window.ShouldClose() {
		currentTime := window.Time() - startTime
		mouseData := window.GetMouseInput()

		scene.Tick(currentTime)
		scene.SetPointer(mouseData[0], mouseData[1])
		scene.Draw()

		window.EndFrame()
		frameCount++
	}

	if elapsed := window.Time() - startTime; elapsed > 0 {
		log.Printf("Rendered %d frames in %.2fs (%.1f fps)", frameCount, elapsed, float64(frameCount)/elapsed)
	}
}
