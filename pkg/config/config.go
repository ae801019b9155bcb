// Package config provides configuration loading and management for the watershed command.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// Box is a YAML-friendly bounding box: a minimal corner and a size.
type Box struct {
	Min    [3]int `yaml:"min"`
	Extent [3]int `yaml:"extent"`
}

// BoundingBox converts the box to its voxel form.
func (b Box) BoundingBox() (voxel.BoundingBox, error) {
	return voxel.NewBoundingBox(
		voxel.Point{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
		voxel.Extent{X: b.Extent[0], Y: b.Extent[1], Z: b.Extent[2]},
	)
}

// SeedBox is a box-shaped seed with the id its object should keep.
type SeedBox struct {
	ID  int `yaml:"id"`
	Box `yaml:",inline"`
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumCores bounds how many regions are segmented at once
		NumCores int `yaml:"numCores"`
	} `yaml:"processing"`

	// Segmentation parameters
	Segmentation struct {
		// ExitWithMinimaOnly returns the discovered minima instead of objects
		ExitWithMinimaOnly bool `yaml:"exitWithMinimaOnly"`

		// MaskOnValue and MaskOffValue are the byte values of produced masks
		MaskOnValue  uint8 `yaml:"maskOnValue"`
		MaskOffValue uint8 `yaml:"maskOffValue"`
	} `yaml:"segmentation"`

	// Input parameters
	Input struct {
		// Extensions lists the slice image file extensions to load
		Extensions []string `yaml:"extensions"`
	} `yaml:"input"`

	// ROI restricts segmentation to these boxes, one job each. Empty means the whole volume.
	ROI []Box `yaml:"roi"`

	// Seeds are pre-labeled boxes
	Seeds []SeedBox `yaml:"seeds"`

	// Output parameters
	Output struct {
		// SaveLabelSlices writes one colored image per z-plane of the label grid
		SaveLabelSlices bool `yaml:"saveLabelSlices"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.NumCores = runtime.NumCPU()

	defaults := voxel.DefaultBinaryValues()
	cfg.Segmentation.ExitWithMinimaOnly = false
	cfg.Segmentation.MaskOnValue = defaults.On
	cfg.Segmentation.MaskOffValue = defaults.Off

	cfg.Input.Extensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff"}

	cfg.Output.SaveLabelSlices = true
	cfg.Output.Verbose = false

	return cfg
}

// BinaryValues returns the mask convention configured for produced objects.
func (c *Config) BinaryValues() voxel.BinaryValues {
	return voxel.BinaryValues{On: c.Segmentation.MaskOnValue, Off: c.Segmentation.MaskOffValue}
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var err error
	if c.Processing.NumCores < 1 {
		err = multierr.Append(err, fmt.Errorf("processing.numCores must be at least 1, got %d", c.Processing.NumCores))
	}
	if c.Segmentation.MaskOnValue == c.Segmentation.MaskOffValue {
		err = multierr.Append(err, fmt.Errorf("segmentation.maskOnValue and maskOffValue must differ, both are %d",
			c.Segmentation.MaskOnValue))
	}
	if len(c.Input.Extensions) == 0 {
		err = multierr.Append(err, fmt.Errorf("input.extensions must not be empty"))
	}
	for i, b := range c.ROI {
		if _, boxErr := b.BoundingBox(); boxErr != nil {
			err = multierr.Append(err, fmt.Errorf("roi[%d]: %w", i, boxErr))
		}
	}
	ids := make(map[int]int, len(c.Seeds))
	for i, s := range c.Seeds {
		if s.ID <= 0 {
			err = multierr.Append(err, fmt.Errorf("seeds[%d]: id must be positive, got %d", i, s.ID))
		}
		if prev, ok := ids[s.ID]; ok {
			err = multierr.Append(err, fmt.Errorf("seeds[%d]: id %d already used by seeds[%d]", i, s.ID, prev))
		}
		ids[s.ID] = i
		if _, boxErr := s.BoundingBox(); boxErr != nil {
			err = multierr.Append(err, fmt.Errorf("seeds[%d]: %w", i, boxErr))
		}
	}
	return err
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
