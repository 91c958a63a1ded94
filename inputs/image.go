// inputs/image.go
package inputs

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	// Blank imports for image decoders so image.Decode can handle them.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var httpClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	},
}

// Decode decodes any registered image format from r.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	log.Printf("Decoded %s image %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// LoadFile decodes the image file at path.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// LoadURL downloads and decodes the image at url.
func LoadURL(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to load image %s, status code: %d", url, resp.StatusCode)
	}
	return Decode(resp.Body)
}

// Load reads src as an http(s) URL or, failing that, a file path.
func Load(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return LoadURL(ctx, src)
	}
	return LoadFile(src)
}

// LoadAsync loads src on a new goroutine and calls done with the result on
// that goroutine. done is not called if ctx is canceled first.
func LoadAsync(ctx context.Context, src string, done func(image.Image, error)) {
	go func() {
		img, err := Load(ctx, src)
		if ctx.Err() != nil {
			log.Printf("Image load of %s canceled", src)
			return
		}
		done(img, err)
	}()
}
