// Package config loads the landscape viewer settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/leterax/go-landcam/pkg/camera"
	"github.com/leterax/go-landcam/pkg/terrain"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string        `yaml:"log_level"`
	Window   WindowConfig  `yaml:"window"`
	Camera   CameraConfig  `yaml:"camera"`
	Terrain  TerrainConfig `yaml:"terrain"`
	Water    WaterConfig   `yaml:"water"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig holds the start pose and the tuning that can change while
// running. Rotation is (pitch, yaw, roll) in degrees.
type CameraConfig struct {
	Position            [3]float32 `yaml:"position"`
	Rotation            [3]float32 `yaml:"rotation"`
	HorizontalFOV       float32    `yaml:"horizontal_fov"`
	Near                float32    `yaml:"near"`
	Far                 float32    `yaml:"far"`
	MaxSpeed            float32    `yaml:"max_speed"`
	FreeLookSensitivity float32    `yaml:"free_look_sensitivity"`
}

type TerrainConfig struct {
	Width     int     `yaml:"width"`
	Depth     int     `yaml:"depth"`
	CellSize  float32 `yaml:"cell_size"`
	Amplitude float32 `yaml:"amplitude"`
	Seed      int64   `yaml:"seed"`
}

type WaterConfig struct {
	Level float32 `yaml:"level"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "landcam",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:            [3]float32{0, 120, -300},
			Rotation:            [3]float32{-20, 0, 0},
			HorizontalFOV:       camera.DefaultHorizontalFOV,
			Near:                camera.DefaultNear,
			Far:                 camera.DefaultFar,
			MaxSpeed:            camera.DefaultMaxSpeed,
			FreeLookSensitivity: camera.DefaultFreeLookSensitivity,
		},
		Terrain: TerrainConfig{
			Width:     257,
			Depth:     257,
			CellSize:  4,
			Amplitude: 60,
			Seed:      1,
		},
		Water: WaterConfig{
			Level: -10,
		},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r over the defaults and validates the result
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges the viewer cannot recover from
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Camera.HorizontalFOV <= 0 || c.Camera.HorizontalFOV >= 180:
		return fmt.Errorf("%w: horizontal_fov %v outside (0, 180)", ErrInvalidConfig, c.Camera.HorizontalFOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near %v far %v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Camera.MaxSpeed < 0:
		return fmt.Errorf("%w: negative max_speed %v", ErrInvalidConfig, c.Camera.MaxSpeed)
	case c.Terrain.Width < 2 || c.Terrain.Depth < 2 || c.Terrain.CellSize <= 0:
		return fmt.Errorf("%w: terrain %dx%d cell %v", ErrInvalidConfig, c.Terrain.Width, c.Terrain.Depth, c.Terrain.CellSize)
	}
	return nil
}

// StartPosition returns the camera start position
func (c CameraConfig) StartPosition() mgl32.Vec3 {
	return mgl32.Vec3(c.Position)
}

// StartRotation returns the camera start rotation in radians
func (c CameraConfig) StartRotation() mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.DegToRad(c.Rotation[0]),
		mgl32.DegToRad(c.Rotation[1]),
		mgl32.DegToRad(c.Rotation[2]),
	}
}

// Params returns the generator parameters for the heightfield
func (t TerrainConfig) Params() terrain.Params {
	return terrain.Params{
		Width:     t.Width,
		Depth:     t.Depth,
		CellSize:  t.CellSize,
		Amplitude: t.Amplitude,
		Seed:      t.Seed,
	}
}

// Plane returns the water surface as a reflection plane (n.p + d = 0)
func (w WaterConfig) Plane() mgl32.Vec4 {
	return mgl32.Vec4{0, 1, 0, -w.Level}
}
