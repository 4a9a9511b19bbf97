package engine

import (
	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/cursor"
)

// Cursor commands change only the cursors. They are not recorded in
// history.

// AddCursorAt adds a bare cursor at offset and makes it primary. It
// returns cursor.ErrCursorCollision, leaving the cursors alone, if a
// cursor already has that head.
func (s *Session) AddCursorAt(offset ByteOffset) error {
	if err := s.checkOffset("add cursor", offset); err != nil {
		return err
	}
	return s.cursors.Add(cursor.At(offset))
}

// AddCursorBelow adds a cursor one line below the last cursor, at the same
// column clamped to the line length. It does nothing on the last line.
func (s *Session) AddCursorBelow() error {
	return s.cursors.AddBelow(s.buf)
}

// AddCursorAbove adds a cursor one line above the first cursor. It does
// nothing on the first line.
func (s *Session) AddCursorAbove() error {
	return s.cursors.AddAbove(s.buf)
}

// MoveCursors moves every cursor count steps in dir. With extend set the
// selections grow instead of collapsing.
func (s *Session) MoveCursors(dir cursor.Direction, count int, extend bool) {
	s.cursors.Move(s.buf, dir, max(count, 1), extend)
}

// SetCursors replaces every cursor, cs[0] becoming primary. Every offset
// must lie in the document.
func (s *Session) SetCursors(cs []Cursor) error {
	for _, c := range cs {
		if err := s.checkOffset("set cursors", c.Anchor); err != nil {
			return err
		}
		if err := s.checkOffset("set cursors", c.Head); err != nil {
			return err
		}
	}
	s.cursors.SetAll(cs)
	return nil
}

// ClearSecondary removes every cursor but the primary.
func (s *Session) ClearSecondary() {
	s.cursors.Clear()
}

// Select turns the primary cursor into a selection from anchor to head.
func (s *Session) Select(anchor, head ByteOffset) error {
	if err := s.checkOffset("select", anchor); err != nil {
		return err
	}
	if err := s.checkOffset("select", head); err != nil {
		return err
	}
	cs := s.cursors.All()
	primary := s.cursors.PrimaryIndex()
	cs[primary] = cursor.NewSelection(anchor, head)
	s.cursors.Replace(cs, primary)
	return nil
}

func (s *Session) checkOffset(op string, offset ByteOffset) error {
	if offset < 0 || offset > s.buf.Len() {
		return &buffer.EditError{Op: op, Range: Range{Start: offset, End: offset}, Len: s.buf.Len()}
	}
	return nil
}
