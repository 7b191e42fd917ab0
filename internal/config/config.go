// Package config handles configuration of the webidl command.
//
// Configuration lives in webidl.toml in the working directory. Every key is
// optional; a missing file yields the defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file looked up by Load.
const FileName = "webidl.toml"

// Config represents the complete command configuration.
type Config struct {
	// Parse configuration for the parse command
	Parse ParseConfig `toml:"parse"`

	// Files selects the files checked in directories
	Files FilesConfig `toml:"files"`

	// Log configuration
	Log LogConfig `toml:"log"`

	// Watch configuration for the watch command
	Watch WatchConfig `toml:"watch"`
}

// ParseConfig holds parse command configuration.
type ParseConfig struct {
	// Format: "sexp", "json" or "go"
	Format string `toml:"format"`
}

// FilesConfig holds file selection configuration.
type FilesConfig struct {
	// Extensions of WebIDL files, with the leading dot
	Extensions []string `toml:"extensions"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level: "debug", "info", "warn" or "error"
	Level string `toml:"level"`
}

// WatchConfig holds watcher configuration.
type WatchConfig struct {
	// Debounce delays re-checking until changes settle, e.g. "200ms"
	Debounce string `toml:"debounce"`
}

// Formats lists the accepted values of parse.format.
var Formats = []string{"sexp", "json", "go"}

// Load loads configuration from webidl.toml in the given directory.
// WEBIDL_LOG_LEVEL, if set, overrides the log level.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, FileName)

	config := defaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		var c Config
		if _, err := toml.DecodeFile(configPath, &c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
		c.applyDefaults()
		config = &c
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if level := os.Getenv("WEBIDL_LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			Format: "sexp",
		},
		Files: FilesConfig{
			Extensions: []string{".webidl", ".idl"},
		},
		Log: LogConfig{
			Level: "warn",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
	}
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := defaultConfig()

	if c.Parse.Format == "" {
		c.Parse.Format = defaults.Parse.Format
	}
	if len(c.Files.Extensions) == 0 {
		c.Files.Extensions = defaults.Files.Extensions
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
}

func (c *Config) validate() error {
	if !c.ValidFormat(c.Parse.Format) {
		return fmt.Errorf("invalid parse.format %q, want one of %s", c.Parse.Format, strings.Join(Formats, ", "))
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid extension %q, must start with a dot", ext)
		}
	}
	return nil
}

// ValidFormat reports whether format names an output format.
func (c *Config) ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// DebounceDuration returns the configured watch debounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch.debounce %q: %w", c.Watch.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid watch.debounce %q: negative duration", c.Watch.Debounce)
	}
	return d, nil
}

// IsSource reports whether path has one of the configured extensions.
func (c *Config) IsSource(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Files.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
