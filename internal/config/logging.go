package config

import "github.com/james-lomax/the-last-compiler/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`       // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"` // JSON lines instead of console text
	DebugMode  bool            `yaml:"debug_mode"`  // Master toggle for .tlc/logs files
	Categories map[string]bool `yaml:"categories"`  // Per-category toggles
}

// Options converts the config into the logging package's settings.
func (c LoggingConfig) Options() logging.Config {
	return logging.Config{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.JSONFormat,
		Categories: c.Categories,
	}
}
