// Package config loads the settings of the placeholders command from an
// optional YAML file.
package config

import (
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/vbeffa/placeholders"
)

// DefaultPath is looked up relative to the working directory.
const DefaultPath = ".placeholders.yaml"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	Patterns  []string `yaml:"patterns"`
	Exclude   []string `yaml:"exclude"`
	Format    string   `yaml:"format"`
	CacheSize int      `yaml:"cache_size"`
}

func Default() Config {
	return Config{
		Patterns:  []string{"**/*.sql"},
		Exclude:   []string{},
		Format:    FormatText,
		CacheSize: placeholders.DefaultCacheSize,
	}
}

// Load reads path from fs and fills unset fields from Default. A missing file
// yields the defaults.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Errorf("reading config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, errors.Errorf("parsing config file %s: %w", path, err)
	}

	if len(file.Patterns) > 0 {
		cfg.Patterns = file.Patterns
	}
	if file.Exclude != nil {
		cfg.Exclude = file.Exclude
	}
	if file.Format != "" {
		cfg.Format = file.Format
	}
	if file.CacheSize != 0 {
		cfg.CacheSize = file.CacheSize
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Errorf("unknown format %q", c.Format)
	}
	if c.CacheSize < 0 {
		return errors.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if len(c.Patterns) == 0 {
		return errors.New("at least one pattern is required")
	}
	for _, pattern := range append(slices.Clone(c.Patterns), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid pattern %q", pattern)
		}
	}
	return nil
}
