package cursor

import (
	"fmt"

	"github.com/rut-editor/rut/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Cursor is an editing position. Head is where typing happens; Anchor is
// the fixed end of the selection. Anchor == Head means no selection.
// Cursor is an immutable value type.
type Cursor struct {
	Anchor ByteOffset `yaml:"anchor"`
	Head   ByteOffset `yaml:"head"`
}

// At returns a cursor at offset with no selection.
func At(offset ByteOffset) Cursor {
	return Cursor{Anchor: offset, Head: offset}
}

// NewSelection returns a cursor selecting from anchor to head.
func NewSelection(anchor, head ByteOffset) Cursor {
	return Cursor{Anchor: anchor, Head: head}
}

// HasSelection reports whether the cursor selects at least one byte.
func (c Cursor) HasSelection() bool {
	return c.Anchor != c.Head
}

// Start returns the lower bound of the selection.
func (c Cursor) Start() ByteOffset {
	return min(c.Anchor, c.Head)
}

// End returns the upper bound of the selection.
func (c Cursor) End() ByteOffset {
	return max(c.Anchor, c.Head)
}

// Range returns the selection as a range with Start <= End.
func (c Cursor) Range() Range {
	return Range{Start: c.Start(), End: c.End()}
}

// Len returns the selection length in bytes.
func (c Cursor) Len() ByteOffset {
	return c.End() - c.Start()
}

// IsBackward reports whether the head precedes the anchor.
func (c Cursor) IsBackward() bool {
	return c.Head < c.Anchor
}

// Collapse drops the selection, keeping the head.
func (c Cursor) Collapse() Cursor {
	return At(c.Head)
}

// Extend moves the head to offset and keeps the anchor.
func (c Cursor) Extend(offset ByteOffset) Cursor {
	return Cursor{Anchor: c.Anchor, Head: offset}
}

// MoveTo returns a collapsed cursor at offset.
func (c Cursor) MoveTo(offset ByteOffset) Cursor {
	return At(offset)
}

// Clamp limits both ends to [0, maxOffset].
func (c Cursor) Clamp(maxOffset ByteOffset) Cursor {
	return Cursor{Anchor: clamp(c.Anchor, maxOffset), Head: clamp(c.Head, maxOffset)}
}

// union returns a cursor covering both ranges, backward only when both are.
func (c Cursor) union(other Cursor) Cursor {
	start := min(c.Start(), other.Start())
	end := max(c.End(), other.End())
	if c.IsBackward() && other.IsBackward() {
		return Cursor{Anchor: end, Head: start}
	}
	return Cursor{Anchor: start, Head: end}
}

func (c Cursor) String() string {
	if !c.HasSelection() {
		return fmt.Sprintf("Cursor(%d)", c.Head)
	}
	return fmt.Sprintf("Cursor(%d->%d)", c.Anchor, c.Head)
}

func clamp(offset, maxOffset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
