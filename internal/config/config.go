// Package config loads the calibration pipeline configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable pipeline parameters. The zero value is not
// usable; start from Default.
type Config struct {
	// CanvasSize is the square display canvas both inputs are fitted to.
	CanvasSize int `yaml:"canvas_size"`
	// Border is the autocrop framing border, in pixels.
	Border int `yaml:"border"`
	// Tolerance is the background segmentation color tolerance.
	Tolerance float64 `yaml:"tolerance"`
	// LandmarkCapacity is the per-set landmark limit.
	LandmarkCapacity int `yaml:"landmark_capacity"`

	Overlay OverlayConfig `yaml:"overlay"`
}

// OverlayConfig holds marker sizes for the QA overlay.
type OverlayConfig struct {
	CloudRadius    float64 `yaml:"cloud_radius"`
	CrossHalfWidth float64 `yaml:"cross_half_width"`
	LandmarkRadius float64 `yaml:"landmark_radius"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		CanvasSize:       700,
		Border:           50,
		Tolerance:        10,
		LandmarkCapacity: 12,
		Overlay: OverlayConfig{
			CloudRadius:    2,
			CrossHalfWidth: 5,
			LandmarkRadius: 4,
		},
	}
}

// Load reads a YAML config file. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.CanvasSize < 100 {
		return fmt.Errorf("canvas_size must be at least 100, got %d", c.CanvasSize)
	}
	if c.Border < 0 {
		return fmt.Errorf("border must be non-negative, got %d", c.Border)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", c.Tolerance)
	}
	if c.LandmarkCapacity < 3 {
		return fmt.Errorf("landmark_capacity must be at least 3, got %d", c.LandmarkCapacity)
	}
	return nil
}
