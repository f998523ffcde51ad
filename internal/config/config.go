// Package config holds the runtime configuration of widgetdemo.
//
// Values are layered: Default(), then an optional TOML file, then
// WIDGETDEMO_* environment variables, then command-line flags.
package config

import (
	"time"
)

// Config contains every tunable of the demo.
// Use Default() to get sensible defaults, then override as needed.
type Config struct {
	Demo  string // "boot" or "slider" (default: "boot")
	Mouse bool   // Enable mouse input (default: true)

	Transition TransitionConfig
	Logging    LoggingConfig
	History    HistoryConfig
	MCP        MCPConfig
}

// TransitionConfig tunes the screen slide.
type TransitionConfig struct {
	Duration  time.Duration // Slide length (default: 300ms)
	Delay     time.Duration // Wait before the slide starts (default: 100ms)
	FPS       int           // Animation tick rate (default: 60)
	Frequency float64       // Spring angular frequency (default: 12.0)
	Damping   float64       // Spring damping ratio (default: 0.9)
}

// LoggingConfig selects where structured logs go.
type LoggingConfig struct {
	File  string // Log file path; empty discards logs
	Level string // debug, info, warn or error (default: "info")
}

// HistoryConfig sizes the slider history chart.
type HistoryConfig struct {
	Capacity int // Points kept for the chart (default: 31)
}

// MCPConfig configures the remote driver server.
type MCPConfig struct {
	Name          string        // Implementation name (default: "widgetdemo")
	Version       string        // Implementation version (default: "1.0.0")
	SettleTimeout time.Duration // Max wait for a transition to finish (default: 2s)
}

const (
	DemoBoot   = "boot"
	DemoSlider = "slider"
)

// Default returns a Config with the demo's stock settings.
func Default() Config {
	return Config{
		Demo:  DemoBoot,
		Mouse: true,

		Transition: TransitionConfig{
			Duration:  300 * time.Millisecond,
			Delay:     100 * time.Millisecond,
			FPS:       60,
			Frequency: 12.0,
			Damping:   0.9,
		},

		Logging: LoggingConfig{
			Level: "info",
		},

		History: HistoryConfig{
			Capacity: 31,
		},

		MCP: MCPConfig{
			Name:          "widgetdemo",
			Version:       "1.0.0",
			SettleTimeout: 2 * time.Second,
		},
	}
}

// WithDemo returns a copy of the config running the named demo.
func (c Config) WithDemo(demo string) Config {
	c.Demo = demo
	return c
}

// WithMouse returns a copy of the config with mouse input enabled/disabled.
func (c Config) WithMouse(enabled bool) Config {
	c.Mouse = enabled
	return c
}

// WithTransitionTiming returns a copy of the config with modified slide timing.
func (c Config) WithTransitionTiming(duration, delay time.Duration) Config {
	c.Transition.Duration = duration
	c.Transition.Delay = delay
	return c
}

// WithLogFile returns a copy of the config logging to path.
func (c Config) WithLogFile(path string) Config {
	c.Logging.File = path
	return c
}

// WithLogLevel returns a copy of the config with modified log level.
func (c Config) WithLogLevel(level string) Config {
	c.Logging.Level = level
	return c
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.Demo != DemoBoot && c.Demo != DemoSlider {
		return &ConfigError{Field: "Demo", Message: "must be \"boot\" or \"slider\""}
	}
	if c.Transition.Duration < 0 {
		return &ConfigError{Field: "Transition.Duration", Message: "must not be negative"}
	}
	if c.Transition.Delay < 0 {
		return &ConfigError{Field: "Transition.Delay", Message: "must not be negative"}
	}
	if c.Transition.FPS <= 0 || c.Transition.FPS > 240 {
		return &ConfigError{Field: "Transition.FPS", Message: "must be between 1 and 240"}
	}
	if c.Transition.Frequency <= 0 {
		return &ConfigError{Field: "Transition.Frequency", Message: "must be positive"}
	}
	if c.Transition.Damping < 0 {
		return &ConfigError{Field: "Transition.Damping", Message: "must not be negative"}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "Logging.Level", Message: "must be one of debug, info, warn, error"}
	}
	if c.History.Capacity < 2 {
		return &ConfigError{Field: "History.Capacity", Message: "must be at least 2"}
	}
	if c.MCP.SettleTimeout <= 0 {
		return &ConfigError{Field: "MCP.SettleTimeout", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
