package config

import (
	"errors"
	"strings"

	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/logging"
)

// Defaults.
const (
	DefaultTabWidth   = buffer.DefaultTabWidth
	DefaultLineEnding = "auto"
	DefaultMaxUndo    = 1000
	DefaultLogLevel   = "info"

	MaxTabWidth = 16
)

// Config is the full set of core settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Archive ArchiveConfig `toml:"archive" yaml:"archive"`
}

// EditorConfig holds document settings.
type EditorConfig struct {
	TabWidth int `toml:"tab_width" yaml:"tab_width"`
	// LineEnding is "lf", "crlf", "cr", or "auto" to detect it from the
	// file being opened.
	LineEnding string `toml:"line_ending" yaml:"line_ending"`
	MaxUndo    int    `toml:"max_undo" yaml:"max_undo"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// ArchiveConfig names the file evicted history is written to. An empty
// Path disables archiving.
type ArchiveConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:   DefaultTabWidth,
			LineEnding: DefaultLineEnding,
			MaxUndo:    DefaultMaxUndo,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Validate reports every invalid setting. Each error matches ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		errs = append(errs, invalid("editor.tab_width %d out of range [1, %d]", c.Editor.TabWidth, MaxTabWidth))
	}
	if !strings.EqualFold(c.Editor.LineEnding, "auto") {
		if _, err := buffer.ParseLineEnding(c.Editor.LineEnding); err != nil {
			errs = append(errs, invalid("editor.line_ending: %v", err))
		}
	}
	if c.Editor.MaxUndo < 1 {
		errs = append(errs, invalid("editor.max_undo %d must be positive", c.Editor.MaxUndo))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, invalid("logging.level: %v", err))
	}
	return errors.Join(errs...)
}

// BufferOptions translates the editor settings into buffer options. The
// config must be valid.
func (e EditorConfig) BufferOptions() []buffer.Option {
	opts := []buffer.Option{buffer.WithTabWidth(e.TabWidth)}
	if strings.EqualFold(e.LineEnding, "auto") {
		return append(opts, buffer.WithDetectedLineEnding())
	}
	if le, err := buffer.ParseLineEnding(e.LineEnding); err == nil {
		opts = append(opts, buffer.WithLineEnding(le))
	}
	return opts
}

// LogLevel returns the parsed logging level, falling back to info.
func (l LoggingConfig) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(l.Level)
	return level
}
