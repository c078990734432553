package forge

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is loaded from hidforge.yml next to the DSL sources. Flags
// override individual fields.
type Config struct {
	// Package is the package clause of generated Go files.
	Package string `yaml:"package"`
	// OutDir receives generated files.
	OutDir string `yaml:"outDir"`
	// EmitBinary also writes the raw descriptor blob per record.
	EmitBinary bool `yaml:"emitBinary"`
	// CacheDir enables the badger-backed build cache.
	CacheDir string `yaml:"cacheDir"`
}

func DefaultConfig() Config {
	return Config{
		Package: "reports",
		OutDir:  ".",
	}
}

func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}
