package buffer

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every error returned for an offset or range
// that does not fit the document.
var ErrOutOfBounds = errors.New("offset out of bounds")

// EditError describes a rejected operation.
type EditError struct {
	Op    string // "insert", "delete" or "read"
	Range Range  // offending range; Start == End for inserts
	Len   ByteOffset
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s %s: %v (document length %d)", e.Op, e.Range, ErrOutOfBounds, e.Len)
}

// Unwrap returns ErrOutOfBounds.
func (e *EditError) Unwrap() error {
	return ErrOutOfBounds
}
