package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/palette"
)

const (
	DefaultPreset     = "turbulence"
	DefaultDensity    = 50
	DefaultMaxValue   = 100
	DefaultStreams    = 1
	DefaultOutput     = "flame.ppm"
	DefaultBackground = "#000000"
)

var ErrInvalid = errors.New("config: invalid value")

// Config holds render settings. Zero Width, Height or Frame fall back to the
// preset's values.
type Config struct {
	Preset     string        `yaml:"preset"`
	Frame      *FrameConfig  `yaml:"frame,omitempty"`
	Width      int           `yaml:"width,omitempty"`
	Height     int           `yaml:"height,omitempty"`
	Density    int           `yaml:"density"`
	Palette    PaletteConfig `yaml:"palette"`
	Background string        `yaml:"background"`
	Output     string        `yaml:"output"`
	MaxValue   int           `yaml:"max_value"`
	Streams    int           `yaml:"streams"`
	Seed       int64         `yaml:"seed"`
}

type FrameConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaletteConfig is either a list of hex colors or a number of random colors.
type PaletteConfig struct {
	Colors []string `yaml:"colors,omitempty"`
	Random int      `yaml:"random,omitempty"`
	Seed   int64    `yaml:"seed,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:     DefaultPreset,
		Density:    DefaultDensity,
		Palette:    PaletteConfig{Colors: []string{"#ff0000", "#00ff00", "#0000ff"}},
		Background: DefaultBackground,
		Output:     DefaultOutput,
		MaxValue:   DefaultMaxValue,
		Streams:    DefaultStreams,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Density < 0:
		return fmt.Errorf("%w: density %d", ErrInvalid, c.Density)
	case c.MaxValue <= 0:
		return fmt.Errorf("%w: max value %d", ErrInvalid, c.MaxValue)
	case c.Streams < 1:
		return fmt.Errorf("%w: streams %d", ErrInvalid, c.Streams)
	case c.Frame != nil && (c.Frame.Width <= 0 || c.Frame.Height <= 0):
		return fmt.Errorf("%w: frame %gx%g", ErrInvalid, c.Frame.Width, c.Frame.Height)
	}
	return nil
}

// Rectangle returns the configured frame, or p's frame when none is set.
func (c *Config) Rectangle(p *Preset) (geometry.Rectangle, error) {
	f := p.Frame
	if c.Frame != nil {
		f = *c.Frame
	}
	return f.Rectangle()
}

// Size returns the configured image size, or p's size when unset.
func (c *Config) Size(p *Preset) (int, int) {
	w, h := c.Width, c.Height
	if w == 0 {
		w = p.Width
	}
	if h == 0 {
		h = p.Height
	}
	return w, h
}

// RenderSeed is the seed the chaos game runs with; zero selects flame.Seed.
func (c *Config) RenderSeed() int64 {
	if c.Seed == 0 {
		return flame.Seed
	}
	return c.Seed
}

func (c *Config) BackgroundColor() (palette.Color, error) {
	return palette.ParseHex(c.Background)
}

func (f FrameConfig) Rectangle() (geometry.Rectangle, error) {
	return geometry.NewRectangle(geometry.Pt(f.X, f.Y), f.Width, f.Height)
}

// Build returns the palette described by c.
func (c PaletteConfig) Build() (palette.Palette, error) {
	if c.Random > 0 {
		p, err := palette.NewRandomSeeded(c.Random, c.Seed)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	colors := make([]palette.Color, 0, len(c.Colors))
	for _, s := range c.Colors {
		col, err := palette.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: palette color %q", ErrInvalid, s)
		}
		colors = append(colors, col)
	}
	p, err := palette.NewInterpolated(colors)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ParsePalette reads the command line form of a palette: either
// "random:N" or a comma separated list of hex colors.
func ParsePalette(s string) (PaletteConfig, error) {
	if n, ok := strings.CutPrefix(s, "random:"); ok {
		count, err := strconv.Atoi(n)
		if err != nil || count < 2 {
			return PaletteConfig{}, fmt.Errorf("%w: random palette %q", ErrInvalid, s)
		}
		return PaletteConfig{Random: count}, nil
	}
	var colors []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			colors = append(colors, part)
		}
	}
	if len(colors) < 2 {
		return PaletteConfig{}, fmt.Errorf("%w: palette %q needs at least two colors", ErrInvalid, s)
	}
	return PaletteConfig{Colors: colors}, nil
}
