package cursor

import "github.com/rut-editor/rut/internal/engine/buffer"

// TransformOffset returns where offset ends up after op is applied.
//
// Inserts at or before offset push it right. Deletes leave offsets at or
// before the range alone, pull offsets inside the range to its start, and
// shift offsets past it left by the deleted length.
func TransformOffset(offset ByteOffset, op buffer.EditOp) ByteOffset {
	return transform(offset, op, true)
}

// transform applies op to offset. With atInsert set, an insert exactly at
// offset moves it; otherwise the offset stays before the inserted text.
func transform(offset ByteOffset, op buffer.EditOp, atInsert bool) ByteOffset {
	switch op.Kind {
	case buffer.OpInsert:
		p := op.Range.Start
		if p < offset || (p == offset && atInsert) {
			return offset + ByteOffset(len(op.Text))
		}
		return offset
	case buffer.OpDelete:
		r := op.Range
		switch {
		case offset <= r.Start:
			return offset
		case offset < r.End:
			return r.Start
		default:
			return offset - r.Len()
		}
	}
	return offset
}

// TransformCursor returns c adjusted for op.
//
// A bare cursor behaves like TransformOffset. For a selection, an insert at
// the start pushes the whole selection right and an insert at the end stays
// outside it, so the selection never grows from edits at its edges.
func TransformCursor(c Cursor, op buffer.EditOp) Cursor {
	if !c.HasSelection() {
		return At(TransformOffset(c.Head, op))
	}

	start := transform(c.Start(), op, true)
	end := transform(c.End(), op, false)
	if end < start {
		end = start
	}
	if c.IsBackward() {
		return Cursor{Anchor: end, Head: start}
	}
	return Cursor{Anchor: start, Head: end}
}

// TransformCursors returns cs adjusted for op, in the same order.
func TransformCursors(cs []Cursor, op buffer.EditOp) []Cursor {
	out := make([]Cursor, len(cs))
	for i, c := range cs {
		out[i] = TransformCursor(c, op)
	}
	return out
}
