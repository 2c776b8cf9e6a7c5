package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/squares.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			MaxStates: 5_000_000,
			Timeout:   0,
			Margin:    -1,
		},
		Render: RenderConfig{
			Color:     ColorAuto,
			Palette:   []string{"1", "2", "4", "3", "5", "6", "208", "245"},
			StepDelay: 400 * time.Millisecond,
		},
		Log: LogConfig{
			Level:      "info",
			Timestamps: false,
		},
	}
}
