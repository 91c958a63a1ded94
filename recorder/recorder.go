// Package recorder renders a scene offscreen for a fixed number of frames and
// encodes the frames to a video file with ffmpeg.
package recorder

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/richinsley/glscene/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// numBuffers is how many frames may wait for the encoder before rendering
// blocks.
const numBuffers = 3

// Frame is a single rendered frame: bottom-up RGBA rows.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Scene is what the recorder drives. *renderer.Scene satisfies it.
type Scene interface {
	Tick(param float64)
	Draw()
	ReadPixels() (pixels []byte, width, height int)
}

// encodeFunc consumes frames until the channel is closed.
type encodeFunc func(opts *options.SceneOptions, width, height int, frames <-chan *Frame) error

// Record renders *opts.Duration seconds of scene at *opts.FPS and writes
// them to *opts.OutputFile. Frame i is drawn at time i/fps. It returns
// ctx.Err() if ctx is canceled before the last frame.
func Record(ctx context.Context, scene Scene, opts *options.SceneOptions) error {
	return record(ctx, scene, opts, runEncoder)
}

func record(ctx context.Context, scene Scene, opts *options.SceneOptions, encode encodeFunc) error {
	log.Println("Starting in record mode...")
	fps := *opts.FPS
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate: %d", fps)
	}
	totalFrames := int(*opts.Duration * float64(fps))
	timeStep := 1.0 / float64(fps)

	var frameChan chan *Frame
	var encoderDoneChan chan error
	var width, height int
	var renderErr error

	for i := 0; i < totalFrames; i++ {
		if err := ctx.Err(); err != nil {
			renderErr = err
			break
		}

		scene.Tick(float64(i) * timeStep)
		scene.Draw()
		pixels, w, h := scene.ReadPixels()

		if frameChan == nil {
			width, height = w, h
			frameChan = make(chan *Frame, numBuffers)
			encoderDoneChan = make(chan error, 1)
			// Start the consumer goroutine
			go func() {
				encoderDoneChan <- encode(opts, width, height, frameChan)
			}()
		} else if w != width || h != height {
			renderErr = fmt.Errorf("frame %d is %dx%d, expected %dx%d", i, w, h, width, height)
			break
		}

		select {
		case frameChan <- &Frame{Pixels: pixels, PTS: int64(i)}:
		case err := <-encoderDoneChan:
			if err == nil {
				err = fmt.Errorf("encoder exited before frame %d", i)
			}
			return fmt.Errorf("encoder failed: %w", err)
		}
	}

	if frameChan == nil {
		if renderErr != nil {
			return renderErr
		}
		log.Println("No frames to record")
		return nil
	}

	// Close the channel to signal the producer is done
	close(frameChan)
	encodeErr := <-encoderDoneChan

	if renderErr != nil {
		return renderErr
	}
	if encodeErr != nil {
		return fmt.Errorf("encoder failed: %w", encodeErr)
	}
	log.Printf("Recorded %d frames to %s", totalFrames, *opts.OutputFile)
	return nil
}

// getArgs returns the ffmpeg arguments for raw RGBA frames of the given
// size. GL rows are bottom-up, so the video is flipped on the way out.
func getArgs(opts *options.SceneOptions, width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       strconv.Itoa(*opts.FPS),
	}
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}
	return
}

// runEncoder pipes every frame into an ffmpeg process.
func runEncoder(opts *options.SceneOptions, width, height int, frames <-chan *Frame) error {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(opts, width, height)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock writes if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	var writeErr error
	for frame := range frames {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to FFmpeg: %v", frame.PTS, err)
			writeErr = fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return writeErr
}
