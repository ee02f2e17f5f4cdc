// Package config loads promptkit configuration from defaults, an
// optional YAML file, and PROMPTKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/promptkit/promptkit/library"
)

// Config holds the resolved promptkit configuration.
type Config struct {
	// MissingMode is the default policy for unbound required
	// placeholders during render: highlight, keep, or fail.
	MissingMode string `mapstructure:"missing_mode"`

	// LogLevel is the zerolog level name.
	LogLevel string `mapstructure:"log_level"`

	// Color controls console log coloring: auto, always, or never.
	Color string `mapstructure:"color"`

	// TemplatePaths are the library search directories in precedence
	// order. Empty means the standard search paths.
	TemplatePaths []string `mapstructure:"template_paths"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MissingMode: "highlight",
		LogLevel:    "info",
		Color:       "auto",
	}
}

// Load resolves configuration in increasing precedence: defaults, the
// config file, then environment. An empty configFile means the default
// location under the user config dir, which may be absent.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("missing_mode", "highlight")
	v.SetDefault("log_level", "info")
	v.SetDefault("color", "auto")
	v.SetDefault("template_paths", []string{})

	v.SetEnvPrefix("PROMPTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			v.AddConfigPath(filepath.Join(home, ".config", "promptkit"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	switch c.MissingMode {
	case "highlight", "keep", "fail":
	default:
		return fmt.Errorf("invalid missing mode %q", c.MissingMode)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q", c.Color)
	}
	return nil
}

// Paths returns the library search directories: the configured paths
// when set, otherwise the standard search paths for projectDir.
func (c *Config) Paths(projectDir string) []string {
	if len(c.TemplatePaths) > 0 {
		return c.TemplatePaths
	}
	return library.SearchPaths(projectDir)
}
