package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.truthlens.yaml",               // Project-specific config (highest priority)
	"~/.config/truthlens/config.yaml", // User config
	"/etc/truthlens/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (including a local .env file)
// 3. ./.truthlens.yaml
// 4. ~/.config/truthlens/config.yaml
// 5. /etc/truthlens/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	// A local .env may carry TRUTHLENS_* variables; missing file is fine.
	_ = godotenv.Load()

	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths in reverse priority order (lowest to highest)
		paths := make([]string, len(l.configPaths))
		copy(paths, l.configPaths)
		for i := len(paths)/2 - 1; i >= 0; i-- {
			opp := len(paths) - 1 - i
			paths[i], paths[opp] = paths[opp], paths[i]
		}

		for _, path := range paths {
			expandedPath := expandPath(path)
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	l.applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads and merges a YAML config file into the config
func (l *Loader) loadFromFile(config *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path validated by caller
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// applyEnvOverrides applies TRUTHLENS_* environment variable overrides
func (l *Loader) applyEnvOverrides(config *Config) {
	if v := os.Getenv("TRUTHLENS_SERVER_URL"); v != "" {
		config.Server.URL = v
	}
	if v := os.Getenv("TRUTHLENS_SERVER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Server.Timeout = d
		}
	}
	if v := os.Getenv("TRUTHLENS_OUTPUT_FORMAT"); v != "" {
		config.Output.DefaultFormat = v
	}
	if v := os.Getenv("TRUTHLENS_COLOR_MODE"); v != "" {
		config.Output.ColorMode = v
	}
	if v := os.Getenv("TRUTHLENS_THEME"); v != "" {
		config.UI.Theme = v
	}
	if v := os.Getenv("TRUTHLENS_NO_EMOJI"); v != "" {
		config.UI.NoEmoji = v == "1" || strings.EqualFold(v, "true")
	}
}

// validateConfigPath rejects paths that escape to unexpected locations
func validateConfigPath(path string) error {
	cleaned := filepath.Clean(path)
	if strings.Contains(cleaned, "..") {
		return fmt.Errorf("path must not contain '..': %s", path)
	}
	return nil
}

// expandPath expands ~ to the user home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// fileExists reports whether path exists and is a regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
