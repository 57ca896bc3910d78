// Package config loads tool defaults from ~/.partialtar/config.yaml.
// A missing file means built-in defaults; command-line flags override
// whatever is loaded.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Quality int  `yaml:"quality"` // brotli quality, 0-11
	Window  int  `yaml:"window"`  // brotli window size (log2), 10-24
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns maximum-ratio compression settings: the whole
// point of the tool is fitting more data under a byte cap.
func DefaultConfig() *Config {
	return &Config{
		Quality: 11,
		Window:  22,
		Verbose: false,
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".partialtar", "config.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the compression settings against the ranges the
// encoder accepts.
func (c *Config) Validate() error {
	if c.Quality < 0 || c.Quality > 11 {
		return fmt.Errorf("quality must be between 0 and 11, got %d", c.Quality)
	}
	if c.Window < 10 || c.Window > 24 {
		return fmt.Errorf("window must be between 10 and 24, got %d", c.Window)
	}
	return nil
}
