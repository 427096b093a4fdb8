package main

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/smasonuk/ecg3d"
)

type Config struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Title   string `toml:"title"`
	TPS     int    `toml:"tps"`
	ShowFPS bool   `toml:"show_fps"`

	Camera  CameraConfig  `toml:"camera"`
	Normals NormalsConfig `toml:"normals"`
	Fog     FogConfig     `toml:"fog"`
	Model   ModelConfig   `toml:"model"`
}

type CameraConfig struct {
	Fov      float64    `toml:"fov"`
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
	Position [3]float64 `toml:"position"`
}

type NormalsConfig struct {
	Size  float64 `toml:"size"`
	Color string  `toml:"color"`
}

type FogConfig struct {
	Enabled bool    `toml:"enabled"`
	Color   string  `toml:"color"`
	Near    float64 `toml:"near"`
	Far     float64 `toml:"far"`
}

// ModelConfig places an optional PLY mesh in the scene. An empty path
// leaves it out.
type ModelConfig struct {
	Path     string     `toml:"path"`
	Scale    float64    `toml:"scale"`
	Position [3]float64 `toml:"position"`
	Color    string     `toml:"color"`
}

func DefaultConfig() Config {
	return Config{
		Width:   800,
		Height:  600,
		Title:   "earth",
		TPS:     60,
		ShowFPS: true,
		Camera: CameraConfig{
			Fov:      55,
			Near:     0.1,
			Far:      100,
			Position: [3]float64{0, 8, 30},
		},
		Normals: NormalsConfig{
			Size:  2,
			Color: "#00ff00",
		},
		Fog: FogConfig{
			Enabled: true,
			Color:   "gray",
			Near:    1,
			Far:     100,
		},
		Model: ModelConfig{
			Scale:    1,
			Position: [3]float64{0, 0, 8},
			Color:    "white",
		},
	}
}

// LoadConfig reads a TOML file over the defaults. Keys missing from the file
// keep their default value; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.TPS)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera near %g and far %g must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if _, err := parseColor(c.Normals.Color); err != nil {
		return fmt.Errorf("normals: %w", err)
	}
	if _, err := parseColor(c.Fog.Color); err != nil {
		return fmt.Errorf("fog: %w", err)
	}
	if c.Model.Scale <= 0 {
		return fmt.Errorf("model scale %g must be positive", c.Model.Scale)
	}
	if _, err := parseColor(c.Model.Color); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return nil
}

// parseColor accepts "#rrggbb", "0xrrggbb" or a colour name such as "gray".
func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if hex != strings.ToLower(s) {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("bad colour %q", s)
		}
		return ecg3d.ColorHex(uint32(v)), nil
	}
	if c, ok := ecg3d.NamedColor(s); ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}
