package inputs

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodePNG(t, 3, 2, color.RGBA{R: 255, A: 255})))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	r, g, b, a := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	require.ErrorIs(t, err, image.ErrFormat)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 2, 2, color.White), 0644))

	img, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadURL(t *testing.T) {
	data := encodePNG(t, 4, 1, color.Black)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cube.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	img, err := Load(context.Background(), srv.URL+"/cube.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 1), img.Bounds())

	_, err = Load(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code: 404")
}

func TestLoadAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "async.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 5, 5, color.White), 0644))

	type result struct {
		img image.Image
		err error
	}
	results := make(chan result, 1)
	LoadAsync(context.Background(), path, func(img image.Image, err error) {
		results <- result{img, err}
	})

	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, 5, r.img.Bounds().Dy())
	case <-time.After(5 * time.Second):
		t.Fatal("LoadAsync never called back")
	}
}

func TestLoadAsyncCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := make(chan struct{}, 1)
	LoadAsync(ctx, filepath.Join(t.TempDir(), "missing.png"), func(image.Image, error) {
		called <- struct{}{}
	})

	select {
	case <-called:
		t.Fatal("callback ran after cancel")
	case <-time.After(100 * time.Millisecond):
	}
}
