// Package config handles viewer configuration: defaults, a YAML file
// and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"runtime"
	"strings"

	"github.com/taigrr/planets/internal/logger"
	"github.com/taigrr/planets/pkg/math3d"
	"github.com/taigrr/planets/pkg/shader"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-"`
}

// RenderConfig holds frame and output settings.
type RenderConfig struct {
	Width      int    `yaml:"width"`  // headless snapshot width
	Height     int    `yaml:"height"` // headless snapshot height
	FPS        int    `yaml:"fps"`
	Workers    int    `yaml:"workers"` // 0 means one per CPU
	Background string `yaml:"background"`
}

// SceneConfig describes what is drawn.
type SceneConfig struct {
	Mesh           string     `yaml:"mesh"` // empty draws a generated sphere
	Shader         string     `yaml:"shader"`
	LightDir       [3]float64 `yaml:"light_dir"`
	RotationSpeed  float64    `yaml:"rotation_speed"` // radians per second
	CameraDistance float64    `yaml:"camera_distance"`
	SphereStacks   int        `yaml:"sphere_stacks"`
	SphereSlices   int        `yaml:"sphere_slices"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock scene: a rocky planet seen
// from five units away, spinning at 0.3 rad/s.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      800,
			Height:     800,
			FPS:        60,
			Workers:    0,
			Background: "10,10,30",
		},
		Scene: SceneConfig{
			Shader:         "rocky",
			LightDir:       [3]float64{1, 1, 1},
			RotationSpeed:  0.3,
			CameraDistance: 5,
			SphereStacks:   48,
			SphereSlices:   96,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// BackgroundColor parses Render.Background ("R,G,B").
func (c *Config) BackgroundColor() (color.RGBA, error) {
	var r, g, b int
	n, err := fmt.Sscanf(strings.TrimSpace(c.Render.Background), "%d,%d,%d", &r, &g, &b)
	if err != nil || n != 3 {
		return color.RGBA{}, fmt.Errorf("%w: background %q is not R,G,B", ErrInvalid, c.Render.Background)
	}
	for _, v := range [...]int{r, g, b} {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("%w: background %q component out of range", ErrInvalid, c.Render.Background)
		}
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}

// Light returns the normalized light direction.
func (c *Config) Light() math3d.Vec3 {
	d := c.Scene.LightDir
	return math3d.V3(d[0], d[1], d[2]).Normalize()
}

// ShaderKind parses Scene.Shader.
func (c *Config) ShaderKind() (shader.Kind, error) {
	return shader.ParseKind(c.Scene.Shader)
}

// WorkerCount resolves Render.Workers, where 0 means one per CPU.
func (c *Config) WorkerCount() int {
	if c.Render.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Render.Workers
}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		bad("render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS < 1 || c.Render.FPS > 240 {
		bad("render.fps %d outside [1,240]", c.Render.FPS)
	}
	if c.Render.Workers < 0 {
		bad("render.workers %d is negative", c.Render.Workers)
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ShaderKind(); err != nil {
		bad("scene.shader: %v", err)
	}
	if c.Light().IsZero() {
		bad("scene.light_dir must not be zero")
	}
	if c.Scene.CameraDistance < 1 || c.Scene.CameraDistance > 20 {
		bad("scene.camera_distance %g outside [1,20]", c.Scene.CameraDistance)
	}
	if c.Scene.SphereStacks < 2 || c.Scene.SphereSlices < 3 {
		bad("sphere %dx%d needs at least 2 stacks and 3 slices", c.Scene.SphereStacks, c.Scene.SphereSlices)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		bad("logging.level: %v", err)
	}

	return errors.Join(errs...)
}
