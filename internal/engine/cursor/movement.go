package cursor

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/rut-editor/rut/internal/engine/buffer"
)

// Direction is a cursor movement direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// ParseDirection accepts "left", "right", "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Move returns c moved one step in dir. Left and right step over whole
// grapheme clusters; up and down keep the byte column, clamped to the
// target line. With extend set the anchor stays put. Without it, moving
// left or right from a selection collapses to the matching edge.
func Move(buf *buffer.Buffer, c Cursor, dir Direction, extend bool) Cursor {
	if !extend && c.HasSelection() {
		switch dir {
		case Left:
			return At(c.Start())
		case Right:
			return At(c.End())
		}
	}

	var head ByteOffset
	switch dir {
	case Left:
		head = buf.PrevGraphemeBoundary(c.Head)
	case Right:
		head = buf.NextGraphemeBoundary(c.Head)
	case Up, Down:
		head = vertical(buf, c.Head, dir)
	default:
		head = c.Head
	}

	if extend {
		return c.Extend(head)
	}
	return At(head)
}

// vertical returns the offset one line above or below offset. Moving up
// from the first line goes to the start of the document and moving down
// from the last line goes to its end.
func vertical(buf *buffer.Buffer, offset ByteOffset, dir Direction) ByteOffset {
	p := buf.OffsetToPoint(offset)
	switch {
	case dir == Up && p.Line == 0:
		return 0
	case dir == Down && p.Line+1 >= buf.LineCount():
		return buf.Len()
	}

	line := p.Line + 1
	if dir == Up {
		line = p.Line - 1
	}
	off, _ := columnOffset(buf, line, p.Column)
	return off
}

// columnOffset returns the offset of column on line, clamped to the line
// length and snapped back to a grapheme boundary. The second result is
// false when line does not exist.
func columnOffset(buf *buffer.Buffer, line, column uint32) (ByteOffset, bool) {
	if line >= buf.LineCount() {
		return 0, false
	}
	start := buf.LineStartOffset(line)
	text := buf.LineText(line)
	if int(column) >= len(text) {
		return start + ByteOffset(len(text)), true
	}

	snapped := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		if from > int(column) {
			break
		}
		snapped = from
	}
	return start + ByteOffset(snapped), true
}

// Move moves every cursor count steps in dir, then normalizes.
func (s *Set) Move(buf *buffer.Buffer, dir Direction, count int, extend bool) {
	next := s.All()
	for i := range next {
		for n := 0; n < count; n++ {
			next[i] = Move(buf, next[i], dir, extend)
		}
	}
	s.cursors, s.primary = normalize(next, s.primary)
}

// AddBelow adds a cursor on the line below the last cursor, at the same
// column clamped to that line. It does nothing on the last line and
// returns ErrCursorCollision if the target is already occupied.
func (s *Set) AddBelow(buf *buffer.Buffer) error {
	return s.addVertical(buf, s.Max().Head, Down)
}

// AddAbove is AddBelow for the line above the first cursor.
func (s *Set) AddAbove(buf *buffer.Buffer) error {
	return s.addVertical(buf, s.Min().Head, Up)
}

func (s *Set) addVertical(buf *buffer.Buffer, from ByteOffset, dir Direction) error {
	p := buf.OffsetToPoint(from)
	if dir == Up && p.Line == 0 {
		return nil
	}
	line := p.Line + 1
	if dir == Up {
		line = p.Line - 1
	}
	off, ok := columnOffset(buf, line, p.Column)
	if !ok {
		return nil
	}
	return s.Add(At(off))
}
