package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	Output  OutputConfig `yaml:"output" json:"output"`
	UI      UIConfig     `yaml:"ui" json:"ui"`
	Watch   WatchConfig  `yaml:"watch" json:"watch"`
}

// ServerConfig points the client at the analysis backend
type ServerConfig struct {
	URL     string        `yaml:"url" json:"url"`         // backend origin
	Timeout time.Duration `yaml:"timeout" json:"timeout"` // whole-request timeout, 0 = unbounded
}

// OutputConfig configures one-shot CLI output formatting
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// UIConfig configures the interactive TUI
type UIConfig struct {
	Theme   string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
	NoEmoji bool   `yaml:"no_emoji" json:"no_emoji"`
}

// WatchConfig configures the directory watch mode
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"` // settle time before submitting a new file
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: 120 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		UI: UIConfig{
			Theme:   "default",
			NoEmoji: false,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.URL != "" && !strings.HasPrefix(c.Server.URL, "http://") && !strings.HasPrefix(c.Server.URL, "https://") {
		return fmt.Errorf("invalid server URL: %s (must start with http:// or https://)", c.Server.URL)
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("invalid server timeout: %v (must not be negative)", c.Server.Timeout)
	}

	if c.Output.DefaultFormat != "" {
		switch c.Output.DefaultFormat {
		case "text", "json", "markdown":
		default:
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown)", c.Output.DefaultFormat)
		}
	}

	if c.Output.ColorMode != "" {
		switch c.Output.ColorMode {
		case "auto", "always", "never":
		default:
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}

	if c.UI.Theme != "" {
		switch c.UI.Theme {
		case "default", "high-contrast", "minimal":
		default:
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("invalid watch debounce: %v (must not be negative)", c.Watch.Debounce)
	}

	return nil
}
