package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window:   WindowConfig{Width: 960, Height: 720, Title: "Ashvale"},
		View:     ViewConfig{Width: 640, Height: 480},
		Sim:      SimConfig{Seed: 1, TickRate: 60, Map: "ashvale"},
		LogLevel: "info",
	}
}
