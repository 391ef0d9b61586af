// Package config loads Snek's optional `.snek.yaml` project file: read,
// yaml.Unmarshal, validate, fill defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level `.snek.yaml` document.
type Config struct {
	// IntCache sets the inclusive range of small integers the interpreter
	// pre-allocates and shares, mirroring how many scripting runtimes cache
	// a fixed band of boxed small integers. Defaults to [-5, 256].
	IntCache struct {
		Min int64 `yaml:"min,omitempty"`
		Max int64 `yaml:"max,omitempty"`
	} `yaml:"int_cache,omitempty"`

	// ImportPath lists directories searched for `import ... from "..."`
	// targets, in order, before falling back to the importing file's own
	// directory.
	ImportPath []string `yaml:"import_path,omitempty"`

	// DiskCache configures the sqlite-backed module metadata cache
	// (internal/module.DiskCache).
	DiskCache struct {
		Enabled bool   `yaml:"enabled,omitempty"`
		Path    string `yaml:"path,omitempty"`
	} `yaml:"disk_cache,omitempty"`
}

// Default returns the configuration used when no `.snek.yaml` is found.
func Default() *Config {
	cfg := &Config{}
	cfg.IntCache.Min = -5
	cfg.IntCache.Max = 256
	cfg.DiskCache.Enabled = true
	cfg.DiskCache.Path = ".snek-cache.db"
	return cfg
}

// Load reads and parses a `.snek.yaml` file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find walks up from dir looking for `.snek.yaml`. Returns "" with a nil
// error if none is found anywhere up to the filesystem root.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ".snek.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromDir finds and loads `.snek.yaml` starting at dir, falling back
// to Default() if none exists.
func LoadFromDir(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.IntCache.Max < c.IntCache.Min {
		return fmt.Errorf("int_cache: max (%d) is less than min (%d)", c.IntCache.Max, c.IntCache.Min)
	}
	return nil
}
