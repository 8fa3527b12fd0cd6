package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// NativeSamplersMode selects how the OpenGL back-end decides between
// native sampler objects and emulated per-texture sampler state.
type NativeSamplersMode string

const (
	NativeSamplersAuto NativeSamplersMode = "auto"
	NativeSamplersOn   NativeSamplersMode = "on"
	NativeSamplersOff  NativeSamplersMode = "off"
)

type ApplicationConfig struct {
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
}

type WindowConfig struct {
	X      uint32 `toml:"x"`
	Y      uint32 `toml:"y"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
	Hidden bool   `toml:"hidden"`
}

type RendererConfig struct {
	Backend        string             `toml:"backend"`
	Debug          bool               `toml:"debug"`
	NativeSamplers NativeSamplersMode `toml:"native_samplers"`
	AssetsDir      string             `toml:"assets_dir"`
	WatchAssets    bool               `toml:"watch_assets"`
}

// LimitsConfig overrides the hardware limits reported by a back-end.
// Zero values leave the queried limit untouched.
type LimitsConfig struct {
	MaxColorBufferSamples   uint32 `toml:"max_color_buffer_samples"`
	MaxDepthBufferSamples   uint32 `toml:"max_depth_buffer_samples"`
	MaxStencilBufferSamples uint32 `toml:"max_stencil_buffer_samples"`
	MaxNoAttachmentSamples  uint32 `toml:"max_no_attachment_samples"`
}

type Config struct {
	Application ApplicationConfig `toml:"application"`
	Window      WindowConfig      `toml:"window"`
	Renderer    RendererConfig    `toml:"renderer"`
	Limits      LimitsConfig      `toml:"limits"`
}

func DefaultConfig() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:     "Prism",
			LogLevel: "info",
		},
		Window: WindowConfig{
			X:      100,
			Y:      100,
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			Backend:        "opengl",
			Debug:          true,
			NativeSamplers: NativeSamplersAuto,
			AssetsDir:      "assets",
			WatchAssets:    false,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys missing from the
// file keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err := fmt.Errorf("failed to read config file `%s`: %w", path, err)
		LogError("%s", err.Error())
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.Renderer.Backend = strings.ToLower(strings.TrimSpace(c.Renderer.Backend))
	if c.Renderer.Backend == "" {
		return fmt.Errorf("%w: renderer.backend must not be empty", ErrInvalidConfig)
	}
	switch c.Renderer.NativeSamplers {
	case "":
		c.Renderer.NativeSamplers = NativeSamplersAuto
	case NativeSamplersAuto, NativeSamplersOn, NativeSamplersOff:
	default:
		return fmt.Errorf("%w: renderer.native_samplers must be one of auto, on, off (got `%s`)", ErrInvalidConfig, c.Renderer.NativeSamplers)
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("%w: window size must be non-zero (got %dx%d)", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Application.LogLevel != "" {
		if _, err := log.ParseLevel(c.Application.LogLevel); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Encode writes the configuration back as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
