package options

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneOptions holds the command line configuration. Fields are pointers so
// they can be bound directly to the flag package.
type SceneOptions struct {
	Scene      *string
	Surface    *string
	Image      *string
	Fragment   *string
	Mode       *string // "window" or "record"
	Width      *int
	Height     *int
	FPS        *int
	Duration   *float64
	OutputFile *string
	FFMPEGPath *string
	Config     *string
	Help       *bool
}

// fileOptions mirrors SceneOptions in a scene file. Absent keys stay nil.
type fileOptions struct {
	Scene      *string  `yaml:"scene"`
	Surface    *string  `yaml:"surface"`
	Image      *string  `yaml:"image"`
	Fragment   *string  `yaml:"fragment"`
	Mode       *string  `yaml:"mode"`
	Width      *int     `yaml:"width"`
	Height     *int     `yaml:"height"`
	FPS        *int     `yaml:"fps"`
	Duration   *float64 `yaml:"duration"`
	OutputFile *string  `yaml:"output"`
	FFMPEGPath *string  `yaml:"ffmpeg"`
}

// Bind registers every option on fs with its default value.
func Bind(fs *flag.FlagSet) *SceneOptions {
	return &SceneOptions{
		Scene:      fs.String("scene", "rotating-cube", "Scene to render: rotating-cube, texture-cube, texture-board, fragment-canvas"),
		Surface:    fs.String("surface", "main", "Name of the drawing surface"),
		Image:      fs.String("image", "", "Image file for textured scenes"),
		Fragment:   fs.String("fragment", "", "GLSL ES 3.00 fragment shader file for the fragment canvas"),
		Mode:       fs.String("mode", "window", "Mode: 'window' or 'record'"),
		Width:      fs.Int("width", 1280, "Width of the surface"),
		Height:     fs.Int("height", 720, "Height of the surface"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		Duration:   fs.Float64("duration", 10.0, "Duration to record in seconds"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Config:     fs.String("config", "", "YAML scene file; command line flags take precedence"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
}

// ApplyFile loads the YAML file at path and copies every value it sets onto
// opts, except for the flags named in explicit.
func (opts *SceneOptions) ApplyFile(path string, explicit map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scene file: %w", err)
	}
	return opts.apply(data, explicit)
}

func (opts *SceneOptions) apply(data []byte, explicit map[string]bool) error {
	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return fmt.Errorf("failed to parse scene file: %w", err)
	}

	setString := func(name string, dst *string, v *string) {
		if v != nil && !explicit[name] {
			*dst = *v
		}
	}
	setInt := func(name string, dst *int, v *int) {
		if v != nil && !explicit[name] {
			*dst = *v
		}
	}

	setString("scene", opts.Scene, fo.Scene)
	setString("surface", opts.Surface, fo.Surface)
	setString("image", opts.Image, fo.Image)
	setString("fragment", opts.Fragment, fo.Fragment)
	setString("mode", opts.Mode, fo.Mode)
	setInt("width", opts.Width, fo.Width)
	setInt("height", opts.Height, fo.Height)
	setInt("fps", opts.FPS, fo.FPS)
	if fo.Duration != nil && !explicit["duration"] {
		*opts.Duration = *fo.Duration
	}
	setString("output", opts.OutputFile, fo.OutputFile)
	setString("ffmpeg", opts.FFMPEGPath, fo.FFMPEGPath)
	return nil
}

// FragmentSource returns the contents of the -fragment file, or "" when no
// file was given.
func (opts *SceneOptions) FragmentSource() (string, error) {
	if *opts.Fragment == "" {
		return "", nil
	}
	data, err := os.ReadFile(*opts.Fragment)
	if err != nil {
		return "", fmt.Errorf("failed to read fragment shader: %w", err)
	}
	return string(data), nil
}

// Validate checks the values that cannot be expressed by flag types alone.
func (opts *SceneOptions) Validate() error {
	if *opts.Width <= 0 || *opts.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", *opts.Width, *opts.Height)
	}
	switch *opts.Mode {
	case "window":
	case "record":
		if *opts.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", *opts.FPS)
		}
		if *opts.Duration <= 0 {
			return fmt.Errorf("duration must be positive, got %v", *opts.Duration)
		}
	default:
		return fmt.Errorf("unknown mode %q", *opts.Mode)
	}
	return nil
}

// ExplicitFlags returns the names of the flags set on the command line.
func ExplicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
