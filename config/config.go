// Package config loads the runtime configuration of the game shell from
// YAML.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Config contains every runtime setting. Content tables are configured
// separately by the content package.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	View     ViewConfig    `yaml:"view"`
	Sim      SimConfig     `yaml:"sim"`
	Content  ContentConfig `yaml:"content"`
	AI       AIConfig      `yaml:"ai"`
	Debug    bool          `yaml:"debug"`
	LogLevel string        `yaml:"log_level"`
}

// WindowConfig sizes the OS window. The view is scaled to fit it.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ViewConfig is the camera viewport in world units.
type ViewConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type SimConfig struct {
	Seed     int64  `yaml:"seed"`
	TickRate int    `yaml:"tick_rate"`
	Map      string `yaml:"map"`
}

// TickMs is the fixed simulation step.
func (s SimConfig) TickMs() int {
	return 1000 / s.TickRate
}

type ContentConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

type AIConfig struct {
	// StrayOverride replaces every NPC type's stray chance when set.
	StrayOverride *float64 `yaml:"stray_override"`
}

// Level parses LogLevel.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log_level: %w", err)
	}
	return lvl, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		errs = append(errs, fmt.Errorf("view size %dx%d must be positive", c.View.Width, c.View.Height))
	}
	if c.Sim.TickRate <= 0 || c.Sim.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate %d must be in 1..1000", c.Sim.TickRate))
	}
	if c.Sim.Map == "" {
		errs = append(errs, errors.New("sim.map is required"))
	}
	if p := c.AI.StrayOverride; p != nil && (*p < 0 || *p > 1) {
		errs = append(errs, fmt.Errorf("ai.stray_override %v must be in 0..1", *p))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
