// Package config provides YAML-based configuration loading for the solver CLI.
package config

import (
	"fmt"
	"time"
)

// Config contains all settings of the squares tool.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// SolverConfig defines search budgets and pruning.
type SolverConfig struct {
	MaxStates int           `yaml:"max_states"` // 0 = unlimited
	Timeout   time.Duration `yaml:"timeout"`    // 0s = unlimited
	Margin    int           `yaml:"margin"`     // -1 = no bounding-box pruning
}

// RenderConfig defines how boards are drawn.
type RenderConfig struct {
	Color     ColorMode     `yaml:"color"`
	Palette   []string      `yaml:"palette"`    // ANSI numbers or hex, by color id
	StepDelay time.Duration `yaml:"step_delay"` // Autoplay interval in the replay viewer
}

// LogConfig defines diagnostic output.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	Timestamps bool   `yaml:"timestamps"`
}

// ColorMode selects when styled output is produced.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode string.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("config: unknown color mode %q (want auto, always or never)", s)
	}
}

// Validate checks values that cannot be used as given.
func (c Config) Validate() error {
	if c.Solver.MaxStates < 0 {
		return fmt.Errorf("config: solver.max_states must be >= 0, got %d", c.Solver.MaxStates)
	}
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("config: solver.timeout must be >= 0, got %s", c.Solver.Timeout)
	}
	if c.Solver.Margin < -1 {
		return fmt.Errorf("config: solver.margin must be >= -1, got %d", c.Solver.Margin)
	}
	if _, err := ParseColorMode(string(c.Render.Color)); err != nil {
		return err
	}
	if c.Render.StepDelay <= 0 {
		return fmt.Errorf("config: render.step_delay must be > 0, got %s", c.Render.StepDelay)
	}
	return nil
}
