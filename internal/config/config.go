// Package config holds the run configuration of wdlabels and reads it from
// YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arnodel/labelstream/extract"
	"github.com/arnodel/labelstream/internal/input"
	"github.com/arnodel/labelstream/parser"
)

// Config is the complete configuration of a run.
type Config struct {
	Mode        string `yaml:"mode"`
	MaxDepth    int    `yaml:"max_depth"`
	BufferSize  int    `yaml:"buffer_size"`
	Compression string `yaml:"compression"`
	Trace       bool   `yaml:"trace"`
	Color       string `yaml:"color"`
	Digest      bool   `yaml:"digest"`
}

// Names of the config files looked for by FindConfigFile.
var configNames = []string{".labelstream.yml", ".labelstream.yaml"}

// Default returns the configuration used when nothing else is specified.
func Default() *Config {
	return &Config{
		Mode:        extract.Strict.String(),
		MaxDepth:    parser.DefaultMaxDepth,
		BufferSize:  64 * 1024,
		Compression: input.Auto.String(),
		Color:       "auto",
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile looks for a config file in dir and its parents.  It returns
// "" if there is none.
func FindConfigFile(dir string) string {
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate checks that all values are usable.  All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.ExtractMode(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.InputCompression(); err != nil {
		errs = append(errs, err)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("invalid color: %q (use auto, always or never)", c.Color))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize))
	}
	return errors.Join(errs...)
}

// ExtractMode returns Mode as an extract.Mode.
func (c *Config) ExtractMode() (extract.Mode, error) {
	return extract.ParseMode(c.Mode)
}

// InputCompression returns Compression as an input.Compression.
func (c *Config) InputCompression() (input.Compression, error) {
	return input.ParseCompression(c.Compression)
}
