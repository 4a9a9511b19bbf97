package intent

import (
	"fmt"
	"sort"

	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/cursor"
)

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// NoOwner marks a target that does not belong to any cursor.
const NoOwner = -1

// Target is one replacement an intent asks for: remove Range, then insert
// Text at its start. Owner is the index of the cursor that produced it, or
// NoOwner.
type Target struct {
	Range Range
	Text  string
	Owner int
}

func (t Target) isNoOp() bool {
	return t.Range.IsEmpty() && t.Text == ""
}

// EditIntent is a user-level edit, resolved against the buffer and the
// current cursors into targets. Targets are computed on the document as it
// is before any of them is applied.
type EditIntent interface {
	Description() string
	Targets(buf *buffer.Buffer, cursors []cursor.Cursor) ([]Target, error)
}

// InsertText replaces every selection with Text, or inserts it at each bare
// cursor. Line endings in Text are normalized to "\n".
type InsertText struct {
	Text string
}

func (i InsertText) Description() string { return "insert" }

func (i InsertText) Targets(_ *buffer.Buffer, cursors []cursor.Cursor) ([]Target, error) {
	text := buffer.NormalizeLineEndings(i.Text)
	targets := make([]Target, 0, len(cursors))
	for idx, c := range cursors {
		targets = append(targets, Target{Range: c.Range(), Text: text, Owner: idx})
	}
	return targets, nil
}

// DeleteBackward removes each selection, or Count grapheme clusters before
// each bare cursor. A Count below one is treated as one.
type DeleteBackward struct {
	Count int
}

func (d DeleteBackward) Description() string { return "delete backward" }

func (d DeleteBackward) Targets(buf *buffer.Buffer, cursors []cursor.Cursor) ([]Target, error) {
	targets := make([]Target, 0, len(cursors))
	for idx, c := range cursors {
		if c.HasSelection() {
			targets = append(targets, Target{Range: c.Range(), Owner: idx})
			continue
		}
		start := c.Head
		for n := 0; n < max(d.Count, 1) && start > 0; n++ {
			start = buf.PrevGraphemeBoundary(start)
		}
		targets = append(targets, Target{Range: buffer.NewRange(start, c.Head), Owner: idx})
	}
	return targets, nil
}

// DeleteForward removes each selection, or Count grapheme clusters after
// each bare cursor. A Count below one is treated as one.
type DeleteForward struct {
	Count int
}

func (d DeleteForward) Description() string { return "delete forward" }

func (d DeleteForward) Targets(buf *buffer.Buffer, cursors []cursor.Cursor) ([]Target, error) {
	targets := make([]Target, 0, len(cursors))
	for idx, c := range cursors {
		if c.HasSelection() {
			targets = append(targets, Target{Range: c.Range(), Owner: idx})
			continue
		}
		end := c.Head
		for n := 0; n < max(d.Count, 1) && end < buf.Len(); n++ {
			end = buf.NextGraphemeBoundary(end)
		}
		targets = append(targets, Target{Range: buffer.NewRange(c.Head, end), Owner: idx})
	}
	return targets, nil
}

// Replace puts Text in place of each of Ranges, independent of the
// cursors. The ranges must lie inside the document and must not overlap.
type Replace struct {
	Ranges []Range
	Text   string
}

// ReplaceRange is a Replace of a single range.
func ReplaceRange(start, end buffer.ByteOffset, text string) Replace {
	return Replace{Ranges: []Range{buffer.NewRange(start, end)}, Text: text}
}

func (r Replace) Description() string { return "replace" }

func (r Replace) Targets(buf *buffer.Buffer, _ []cursor.Cursor) ([]Target, error) {
	text := buffer.NormalizeLineEndings(r.Text)
	sorted := make([]Range, len(r.Ranges))
	copy(sorted, r.Ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	targets := make([]Target, 0, len(sorted))
	for i, rng := range sorted {
		if rng.Start < 0 || !rng.IsValid() || rng.End > buf.Len() {
			return nil, &buffer.EditError{Op: "replace", Range: rng, Len: buf.Len()}
		}
		if i > 0 && rng.Start < sorted[i-1].End {
			return nil, fmt.Errorf("%w: %v and %v", ErrOverlappingRanges, sorted[i-1], rng)
		}
		targets = append(targets, Target{Range: rng, Text: text, Owner: NoOwner})
	}
	return targets, nil
}
