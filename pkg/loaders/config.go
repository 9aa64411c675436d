package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config describes one command-line render job
type Config struct {
	SceneConfig     string `json:"scene_config" toml:"scene_config"`         // Built-in scene name or path to a .json scene
	OutputFile      string `json:"output_file" toml:"output_file"`           // PNG output path; empty picks output/<scene>/render_<time>.png
	Width           int    `json:"width" toml:"width"`                       // Output width in pixels
	Height          int    `json:"height" toml:"height"`                     // Output height in pixels
	Supersampling   int    `json:"supersampling" toml:"supersampling"`       // Render at this multiple of the output size, then downfilter
	ReflectionDepth int    `json:"reflection_depth" toml:"reflection_depth"` // Maximum reflection depth
}

// DefaultConfig returns the configuration of the classic 640x480 render
func DefaultConfig() Config {
	return Config{
		SceneConfig:     "default",
		OutputFile:      "",
		Width:           640,
		Height:          480,
		Supersampling:   1,
		ReflectionDepth: 1,
	}
}

// LoadConfig reads a config file over the defaults and validates it.
// Files ending in .toml are read as TOML, anything else as JSON.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		err = toml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return &config, nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.SceneConfig == "" {
		return fmt.Errorf("scene_config must not be empty")
	}
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.Supersampling < 1 {
		return fmt.Errorf("supersampling must be at least 1, got %d", c.Supersampling)
	}
	if c.ReflectionDepth < 0 {
		return fmt.Errorf("reflection_depth must not be negative, got %d", c.ReflectionDepth)
	}
	return nil
}

// RenderSize returns the supersampled render resolution
func (c *Config) RenderSize() (width, height int) {
	return c.Width * c.Supersampling, c.Height * c.Supersampling
}
