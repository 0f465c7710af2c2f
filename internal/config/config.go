// Package config loads wavescope settings from YAML files.
// Values missing from a file keep their defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tejashwikalptaru/wavescope/internal/adapter/spectrum"
	"github.com/tejashwikalptaru/wavescope/internal/domain"
	"github.com/tejashwikalptaru/wavescope/internal/logger"
	"github.com/tejashwikalptaru/wavescope/internal/service"
)

const (
	DefaultFrameRate = 60
	DefaultWidth     = 800
	DefaultHeight    = 400

	// MaxFrameRate bounds the ticker scheduler; displays rarely refresh faster.
	MaxFrameRate = 240
)

// Config is the complete application configuration.
type Config struct {
	Mode          string         `yaml:"mode"`
	BufferLength  int            `yaml:"buffer_length"`
	ParticleCount int            `yaml:"particle_count"`
	Seed          uint64         `yaml:"seed"`
	FrameRate     int            `yaml:"frame_rate"`
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	Analyser      AnalyserConfig `yaml:"analyser"`
	Log           LogConfig      `yaml:"log"`
}

// AnalyserConfig tunes the FFT spectrum source.
type AnalyserConfig struct {
	Smoothing   float64 `yaml:"smoothing"`
	MinDecibels float64 `yaml:"min_decibels"`
	MaxDecibels float64 `yaml:"max_decibels"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	engine := service.DefaultEngineConfig()
	analyser := spectrum.DefaultConfig()
	log := logger.DefaultConfig()

	return &Config{
		Mode:          engine.Mode.String(),
		BufferLength:  engine.BufferLength,
		ParticleCount: engine.ParticleCount,
		FrameRate:     DefaultFrameRate,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Analyser: AnalyserConfig{
			Smoothing:   analyser.Smoothing,
			MinDecibels: analyser.MinDecibels,
			MaxDecibels: analyser.MaxDecibels,
		},
		Log: LogConfig{
			Level:  strings.ToLower(log.Level.String()),
			Format: log.Format,
		},
	}
}

// Load reads path and decodes it over the defaults. The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate returns a *domain.ConfigurationError for the first invalid field.
func (c *Config) Validate() error {
	if _, err := c.Engine(); err != nil {
		return err
	}
	if err := c.AnalyserConfig().Validate(); err != nil {
		return err
	}
	if c.FrameRate <= 0 || c.FrameRate > MaxFrameRate {
		return domain.NewConfigurationError("frame_rate", c.FrameRate, fmt.Sprintf("must be in [1, %d]", MaxFrameRate))
	}
	if c.Width <= 0 {
		return domain.NewConfigurationError("width", c.Width, "must be positive")
	}
	if c.Height <= 0 {
		return domain.NewConfigurationError("height", c.Height, "must be positive")
	}
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		return domain.NewConfigurationError("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return domain.NewConfigurationError("log.format", c.Log.Format, "must be text or json")
	}
	return nil
}

// Engine converts the settings into an engine configuration.
func (c *Config) Engine() (service.EngineConfig, error) {
	mode, err := domain.ParseMode(c.Mode)
	if err != nil {
		return service.EngineConfig{}, err
	}

	engine := service.EngineConfig{
		Mode:          mode,
		BufferLength:  c.BufferLength,
		ParticleCount: c.ParticleCount,
		Seed:          c.Seed,
	}
	if err := engine.Validate(); err != nil {
		return service.EngineConfig{}, err
	}
	return engine, nil
}

// AnalyserConfig returns the spectrum analyser settings.
func (c *Config) AnalyserConfig() spectrum.Config {
	return spectrum.Config{
		BufferLength: c.BufferLength,
		Smoothing:    c.Analyser.Smoothing,
		MinDecibels:  c.Analyser.MinDecibels,
		MaxDecibels:  c.Analyser.MaxDecibels,
	}
}

// LoggerConfig returns the logger settings. An unknown level falls back to INFO.
func (c *Config) LoggerConfig() logger.Config {
	level, _ := logger.ParseLevel(c.Log.Level)
	return logger.Config{
		Level:  level,
		Format: c.Log.Format,
	}
}
