// Package config loads CLI settings from an optional YAML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/itemstat/internal/logger"
	"github.com/sadopc/itemstat/internal/walker"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings shared by every command.
type Config struct {
	FollowLinks   bool     `mapstructure:"follow_links"`
	OneFileSystem bool     `mapstructure:"one_file_system"`
	Hidden        bool     `mapstructure:"hidden"`
	Exclude       []string `mapstructure:"exclude"`
	Depth         int      `mapstructure:"depth"`
	Workers       int      `mapstructure:"workers"`
	KeepGoing     bool     `mapstructure:"keep_going"`
	Output        string   `mapstructure:"output"`

	Log LogConfig `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   LogFileConfig `mapstructure:"file"`
}

// LogFileConfig configures the rotated log file.
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("%w: depth cannot be negative", ErrInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", ErrInvalid)
	}
	switch strings.ToLower(c.Output) {
	case "plain", "table", "json":
	default:
		return fmt.Errorf("%w: output must be one of plain, table, json, got %q", ErrInvalid, c.Output)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level must be one of debug, info, warn, error, got %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// WalkOptions returns the traversal options described by c.
func (c *Config) WalkOptions() walker.Options {
	opts := walker.DefaultOptions()
	opts.FollowLinks = c.FollowLinks
	opts.OneFileSystem = c.OneFileSystem
	opts.SkipHidden = !c.Hidden
	opts.Exclude = append([]string(nil), c.Exclude...)
	opts.MaxDepth = c.Depth
	opts.Workers = c.Workers
	return opts
}

// LoggerConfig returns the logger settings described by c.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		File: logger.FileConfig{
			Path:       c.Log.File.Path,
			MaxSizeMB:  c.Log.File.MaxSizeMB,
			MaxAgeDays: c.Log.File.MaxAgeDays,
			MaxBackups: c.Log.File.MaxBackups,
			Compress:   c.Log.File.Compress,
		},
	}
}
