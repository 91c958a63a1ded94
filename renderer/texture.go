package renderer

import (
	"image"
	"image/draw"
	"log"

	"github.com/richinsley/glscene/graphics"
)

// placeholderPixel is opaque blue.
var placeholderPixel = []byte{0, 0, 255, 255}

// Texture is a 2D texture with clamp-to-edge wrapping and nearest filtering.
type Texture struct {
	Handle graphics.Texture
	Width  int
	Height int
	// FlipY uploads images bottom row first.
	FlipY bool
}

// CreatePlaceholder creates a texture holding a single opaque blue texel so
// it can be sampled before any image arrives.
func CreatePlaceholder(f graphics.Functions) *Texture {
	t := f.CreateTexture()
	f.BindTexture(graphics.TEXTURE_2D, t)
	f.TexImage2D(graphics.TEXTURE_2D, 0, int(graphics.RGBA), 1, 1, graphics.RGBA, graphics.UNSIGNED_BYTE, placeholderPixel)

	f.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_WRAP_S, int(graphics.CLAMP_TO_EDGE))
	f.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_WRAP_T, int(graphics.CLAMP_TO_EDGE))
	f.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_MIN_FILTER, int(graphics.NEAREST))
	f.TexParameteri(graphics.TEXTURE_2D, graphics.TEXTURE_MAG_FILTER, int(graphics.NEAREST))

	return &Texture{Handle: t, Width: 1, Height: 1}
}

// UploadImage replaces the level 0 pixels of tex with img. Wrap and filter
// parameters and the texture object are unchanged, so it is safe to call at
// any point between draws.
func UploadImage(f graphics.Functions, tex *Texture, img image.Image) {
	pixels := toNRGBA(img)
	if tex.FlipY {
		pixels = vflip(pixels)
	}
	width, height := pixels.Rect.Dx(), pixels.Rect.Dy()

	f.BindTexture(graphics.TEXTURE_2D, tex.Handle)
	f.TexImage2D(graphics.TEXTURE_2D, 0, int(graphics.RGBA), width, height, graphics.RGBA, graphics.UNSIGNED_BYTE, pixels.Pix)

	tex.Width = width
	tex.Height = height
	log.Printf("Uploaded %dx%d image to texture %d", width, height, tex.Handle.V)
}

// toNRGBA returns img as tightly packed straight-alpha RGBA with its origin
// at 0,0. Color channels are not premultiplied by alpha.
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && nrgba.Stride == 4*bounds.Dx() {
		return nrgba
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return nrgba
}

// vflip returns a vertically flipped copy of src.
func vflip(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	flipped := image.NewNRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}
