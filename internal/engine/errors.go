package engine

import "errors"

// Errors returned by session operations.
var (
	// ErrNoPath indicates Save was called on a session with no file.
	ErrNoPath = errors.New("session has no file path")

	// ErrEmptyPattern indicates a bulk replace with nothing to find.
	ErrEmptyPattern = errors.New("empty search pattern")
)
