package recorder

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/richinsley/glscene/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScene struct {
	ticks  []float64
	draws  int
	width  int
	height int
	onDraw func(n int)
}

func (s *fakeScene) Tick(param float64) { s.ticks = append(s.ticks, param) }

func (s *fakeScene) Draw() {
	s.draws++
	if s.onDraw != nil {
		s.onDraw(s.draws)
	}
}

func (s *fakeScene) ReadPixels() ([]byte, int, int) {
	return make([]byte, s.width*s.height*4), s.width, s.height
}

func testOptions(t *testing.T, args ...string) *options.SceneOptions {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := options.Bind(fs)
	require.NoError(t, fs.Parse(args))
	return opts
}

func TestRecordRendersFixedTimeSteps(t *testing.T) {
	opts := testOptions(t, "-fps", "4", "-duration", "1.5", "-mode", "record")
	scene := &fakeScene{width: 8, height: 6}

	var got []*Frame
	var gotWidth, gotHeight int
	err := record(context.Background(), scene, opts, func(_ *options.SceneOptions, w, h int, frames <-chan *Frame) error {
		gotWidth, gotHeight = w, h
		for f := range frames {
			got = append(got, f)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1, 1.25}, scene.ticks)
	assert.Equal(t, 6, scene.draws)
	assert.Equal(t, 8, gotWidth)
	assert.Equal(t, 6, gotHeight)
	require.Len(t, got, 6)
	for i, f := range got {
		assert.Equal(t, int64(i), f.PTS)
		assert.Len(t, f.Pixels, 8*6*4)
	}
}

func TestRecordReportsEncoderFailure(t *testing.T) {
	opts := testOptions(t, "-fps", "30", "-duration", "2")
	scene := &fakeScene{width: 2, height: 2}
	boom := errors.New("boom")

	err := record(context.Background(), scene, opts, func(_ *options.SceneOptions, _, _ int, frames <-chan *Frame) error {
		<-frames
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Less(t, scene.draws, 60)
}

func TestRecordStopsOnCancel(t *testing.T) {
	opts := testOptions(t, "-fps", "10", "-duration", "10")
	ctx, cancel := context.WithCancel(context.Background())
	scene := &fakeScene{width: 2, height: 2, onDraw: func(n int) {
		if n == 3 {
			cancel()
		}
	}}

	var received int
	err := record(ctx, scene, opts, func(_ *options.SceneOptions, _, _ int, frames <-chan *Frame) error {
		for range frames {
			received++
		}
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, scene.draws)
	assert.Equal(t, 3, received)
}

func TestRecordRejectsSizeChange(t *testing.T) {
	opts := testOptions(t, "-fps", "10", "-duration", "1")
	scene := &fakeScene{width: 4, height: 4}
	scene.onDraw = func(n int) {
		if n == 2 {
			scene.width = 5
		}
	}

	err := record(context.Background(), scene, opts, func(_ *options.SceneOptions, _, _ int, frames <-chan *Frame) error {
		for range frames {
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5x4")
}

func TestRecordNothingToDo(t *testing.T) {
	opts := testOptions(t, "-duration", "0")
	scene := &fakeScene{width: 2, height: 2}

	called := false
	err := record(context.Background(), scene, opts, func(*options.SceneOptions, int, int, <-chan *Frame) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
	assert.Zero(t, scene.draws)
}

func TestGetArgs(t *testing.T) {
	opts := testOptions(t, "-fps", "25")
	in, out := getArgs(opts, 640, 480)

	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "640x480", in["s"])
	assert.Equal(t, "25", in["r"])

	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "libx264", out["c:v"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
}
