package config

import (
	"github.com/churnlab/churnlab/internal/logging"
)

// LoggingConfig is the logging section of the settings file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// ToLoggingConfig converts the settings section to a logging.Config.
//
// The conversion applies these rules:
//   - Level and Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// ForTUI returns the logging configuration used while the interactive
// application owns the terminal: logs go to the configured file, or nowhere.
func (lc LoggingConfig) ForTUI() logging.Config {
	cfg := lc.ToLoggingConfig()
	if cfg.Output != logging.OutputFile {
		cfg.Output = logging.OutputDiscard
	}
	return cfg
}
