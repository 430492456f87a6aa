// Package config loads the mock host configuration.
package config

import (
	"fmt"
	"os"

	"github.com/govm-net/guestsdk/memory"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the host configuration.
type Config struct {
	// Network copied into every root call context.
	Network string `yaml:"network"`
	// MemorySize is the guest arena capacity in bytes.
	MemorySize int `yaml:"memory_size"`
	// MaxCallDepth bounds nested calls. Zero disables the limit.
	MaxCallDepth int `yaml:"max_call_depth"`
	// AtomicTransfer makes the mock asset validate both sides of a
	// transfer before mutating either.
	AtomicTransfer bool        `yaml:"atomic_transfer"`
	Store          StoreConfig `yaml:"store"`
	Log            LogConfig   `yaml:"log"`
}

// StoreConfig selects the entity store backend.
type StoreConfig struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Network:      "skynet",
		MemorySize:   memory.DefaultSize,
		MaxCallDepth: 64,
		Store:        StoreConfig{Type: "memory"},
		Log:          LogConfig{Level: "info"},
	}
}

// Load reads a YAML config from path over the defaults. An empty path or a
// missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MemorySize <= 0 {
		return fmt.Errorf("memory_size must be positive, got %d", c.MemorySize)
	}
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Logger builds a zap logger from the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
