package cursor

import "errors"

// ErrCursorCollision is returned by Set.Add when a cursor already occupies
// the requested head position.
var ErrCursorCollision = errors.New("cursor already exists at position")
