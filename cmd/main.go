package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glscene/glfwcontext"
	"github.com/richinsley/glscene/graphics"
	"github.com/richinsley/glscene/inputs"
	"github.com/richinsley/glscene/options"
	"github.com/richinsley/glscene/recorder"
	"github.com/richinsley/glscene/renderer"
	"github.com/richinsley/glscene/translator"
)

func runWindow(ctx context.Context, opts *options.SceneOptions) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	window, err := glfwcontext.New(opts, true)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Shutdown()

	scene, err := buildScene(graphics.Surfaces{window.Name(): window}, opts, translator.New(false))
	if err != nil {
		return err
	}

	if *opts.Image != "" {
		loadImage(ctx, scene, *opts.Image)
		window.RegisterKeyCallback(glfw.KeyR, func() {
			log.Printf("Reloading %s", *opts.Image)
			loadImage(ctx, scene, *opts.Image)
		})
	}

	log.Println("Starting interactive render loop...")
	renderer.Run(window, scene)
	return nil
}

func runRecord(ctx context.Context, opts *options.SceneOptions) error {
	surface, gles, err := newRecordSurface(opts)
	if err != nil {
		return fmt.Errorf("failed to create headless surface: %w", err)
	}
	defer surface.Shutdown()

	scene, err := buildScene(graphics.Surfaces{surface.Name(): surface}, opts, translator.New(gles))
	if err != nil {
		return err
	}
	defer scene.Destroy()

	if *opts.Image != "" {
		// Record mode renders the image from the first frame.
		img, err := inputs.Load(ctx, *opts.Image)
		if err != nil {
			return err
		}
		scene.UploadImage(img)
	}

	if err := recorder.Record(ctx, scene, opts); err != nil {
		return fmt.Errorf("recording failed: %w", err)
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
	return nil
}

func buildScene(display graphics.Display, opts *options.SceneOptions, tr renderer.Translator) (*renderer.Scene, error) {
	fragment, err := opts.FragmentSource()
	if err != nil {
		return nil, err
	}
	return renderer.New(*opts.Scene, display, *opts.Surface, fragment, renderer.WithTranslator(tr))
}

// loadImage decodes src in the background; the scene picks it up on its next
// draw.
func loadImage(ctx context.Context, scene *renderer.Scene, src string) {
	inputs.LoadAsync(ctx, src, func(img image.Image, err error) {
		if err != nil {
			log.Printf("Warning: %v. Keeping the current texture.", err)
			return
		}
		scene.QueueImage(img)
	})
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Bind(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("glscene: WebGL style scene viewer/recorder")
		flag.PrintDefaults()
		return
	}

	if *opts.Config != "" {
		if err := opts.ApplyFile(*opts.Config, options.ExplicitFlags(flag.CommandLine)); err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	var err error
	if *opts.Mode == "record" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = runRecord(ctx, opts)
		stop()
	} else {
		err = runWindow(context.Background(), opts)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
