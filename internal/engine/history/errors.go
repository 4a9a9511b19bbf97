package history

import (
	"errors"
	"fmt"
)

// ErrEmpty is matched by both ErrNothingToUndo and ErrNothingToRedo.
var ErrEmpty = errors.New("history empty")

var (
	ErrNothingToUndo = fmt.Errorf("nothing to undo: %w", ErrEmpty)
	ErrNothingToRedo = fmt.Errorf("nothing to redo: %w", ErrEmpty)
)
