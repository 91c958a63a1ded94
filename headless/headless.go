// Package headless provides an offscreen drawing surface for record mode.
package headless

import "github.com/richinsley/glscene/graphics"

// Surface is an offscreen graphics.Surface that owns its platform context.
type Surface interface {
	graphics.Surface
	Shutdown()
}
