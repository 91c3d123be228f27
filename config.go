package sapling

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the tuning knobs of a Graph. The zero value is not valid; start
// from DefaultConfig or load one with LoadConfig.
type Config struct {
	// MaxLeafElements is the element count at which a quadtree leaf splits.
	MaxLeafElements int `yaml:"max_leaf_elements" toml:"max_leaf_elements"`
	// MaxDepth bounds quadtree subdivision. Leaves at this depth never split.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
	// DistanceRelative is the initial distance-relative flag of new roots.
	DistanceRelative bool `yaml:"distance_relative" toml:"distance_relative"`
	// Debug enables per-traversal logging and tree depth warnings.
	Debug bool `yaml:"debug" toml:"debug"`
	// LogLevel is one of debug, info, warn or error. Empty means info.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// DefaultConfig returns the configuration used by NewGraph when none is given.
func DefaultConfig() Config {
	return Config{
		MaxLeafElements:  DefaultMaxLeafElements,
		MaxDepth:         DefaultMaxDepth,
		DistanceRelative: true,
		LogLevel:         "info",
	}
}

// Validate reports the first problem with c, if any.
func (c Config) Validate() error {
	if c.MaxLeafElements < 1 {
		return fmt.Errorf("sapling: max_leaf_elements must be positive, got %d", c.MaxLeafElements)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("sapling: max_depth must not be negative, got %d", c.MaxDepth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("sapling: log_level: %w", err)
	}
	return l, nil
}

// ErrUnknownFormat is returned for config data in a format other than yaml
// or toml.
var ErrUnknownFormat = errors.New("sapling: unknown config format")

// LoadConfig reads a config file. The format is chosen by extension: .yaml,
// .yml or .toml. Fields missing from the file keep their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sapling: load config: %w", err)
	}
	return ParseConfig(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseConfig decodes data in the given format ("yaml", "yml" or "toml") on
// top of DefaultConfig and validates the result.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("sapling: parse yaml config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("sapling: parse toml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
