// Package config loads the demo's YAML settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"spherewalk/internal/locomotion"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window     WindowConfig      `yaml:"window"`
	Simulation SimulationConfig  `yaml:"simulation"`
	Logging    LoggingConfig     `yaml:"logging"`
	Controller locomotion.Config `yaml:"controller"`
	Level      string            `yaml:"level"`
}

type WindowConfig struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"targetFPS"`
}

type SimulationConfig struct {
	FixedStep        float32 `yaml:"fixedStep"` // seconds
	MaxStepsPerFrame int     `yaml:"maxStepsPerFrame"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	DefaultFixedStep        = 0.01
	DefaultMaxStepsPerFrame = 8
	DefaultLevel            = "assets/levels/default.yaml"
)

// Default returns the settings used when no file or section is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "spherewalk",
			TargetFPS: 60,
		},
		Simulation: SimulationConfig{
			FixedStep:        DefaultFixedStep,
			MaxStepsPerFrame: DefaultMaxStepsPerFrame,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Controller: locomotion.DefaultConfig(),
		Level:      DefaultLevel,
	}
}

// Load reads path over the defaults. Missing sections keep their default
// values; a relative level path is resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.normalize()
	if cfg.Level != "" && !filepath.IsAbs(cfg.Level) {
		cfg.Level = filepath.Join(filepath.Dir(path), cfg.Level)
	}
	return cfg, nil
}

// normalize replaces unusable values with defaults. The controller section
// is clamped by the controller itself.
func (c *Config) normalize() {
	def := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.TargetFPS <= 0 {
		c.Window.TargetFPS = def.Window.TargetFPS
	}
	if c.Simulation.FixedStep <= 0 {
		c.Simulation.FixedStep = DefaultFixedStep
	}
	if c.Simulation.MaxStepsPerFrame < 1 {
		c.Simulation.MaxStepsPerFrame = DefaultMaxStepsPerFrame
	}
	if c.Level == "" {
		c.Level = DefaultLevel
	}
}
