package engine

import (
	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/history"
	"github.com/rut-editor/rut/internal/logging"
)

// DefaultMaxUndoEntries is the undo capacity when none is configured.
const DefaultMaxUndoEntries = history.DefaultMaxEntries

// Option configures a Session during creation.
type Option func(*Session)

// WithContent sets the initial content of the session.
func WithContent(content string) Option {
	return func(s *Session) {
		s.initContent = content
	}
}

// WithBufferOptions passes options through to the buffer.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(s *Session) {
		s.bufOpts = append(s.bufOpts, opts...)
	}
}

// WithTabWidth sets the tab width for the buffer.
func WithTabWidth(width int) Option {
	return WithBufferOptions(buffer.WithTabWidth(width))
}

// WithLineEnding sets the line ending used when saving.
func WithLineEnding(ending buffer.LineEnding) Option {
	return WithBufferOptions(buffer.WithLineEnding(ending))
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(s *Session) {
		if max > 0 {
			s.maxUndo = max
		}
	}
}

// WithArchiver hands transactions dropped from history to a.
func WithArchiver(a history.Archiver) Option {
	return func(s *Session) {
		s.archiver = a
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}
