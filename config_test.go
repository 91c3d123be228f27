package sapling

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.MaxLeafElements)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.True(t, cfg.DistanceRelative)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero leaf", func(c *Config) { c.MaxLeafElements = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	cfg.LogLevel = ""
	l, err = cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestParseConfigYAML(t *testing.T) {
	data := []byte("max_leaf_elements: 4\ndebug: true\nlog_level: debug\n")
	cfg, err := ParseConfig(data, "yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxLeafElements)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth, "missing keys keep defaults")
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseConfigTOML(t *testing.T) {
	data := []byte("max_depth = 3\ndistance_relative = false\n")
	cfg, err := ParseConfig(data, "toml")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.False(t, cfg.DistanceRelative)
	assert.Equal(t, DefaultMaxLeafElements, cfg.MaxLeafElements)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("x"), "json")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ParseConfig([]byte("max_depth: [1"), "yaml")
	assert.Error(t, err)

	_, err = ParseConfig([]byte("max_leaf_elements = 0"), "toml")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sapling.yml")
	require.NoError(t, os.WriteFile(path, []byte("max_leaf_elements: 16\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.MaxLeafElements)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
