package rope

import (
	"fmt"
	"io"
	"strings"
)

// ByteOffset is a byte position in the rope.
type ByteOffset = int64

// Point is a 0-indexed line and byte column.
type Point struct {
	Line   uint32
	Column uint32
}

// String returns "(line:column)".
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Rope is an immutable sequence of bytes organised as a balanced tree.
// The zero value is an empty rope.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{}
}

// FromString builds a rope holding s.
func FromString(s string) Rope {
	return Rope{root: build(s)}
}

// FromReader builds a rope from everything r yields.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := io.Copy(&b, r); err != nil {
		return Rope{}, err
	}
	return b.Rope(), nil
}

// Len returns the length in bytes.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.length
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LineCount returns the number of lines, which is the newline count plus one.
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.lines + 1
}

// String returns the whole text. Use Slice or Chunks for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.root.length))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in [start, end), clamped to the rope bounds.
func (r Rope) Slice(start, end ByteOffset) string {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(end - start))
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at offset, or false when offset is out of range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	return r.root.byteAt(offset), true
}

// Insert returns a rope with text inserted at offset.
// Offsets outside the rope are clamped.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if text == "" {
		return r
	}
	left, right := split(r.root, r.clamp(offset))
	return Rope{root: join(join(left, build(text)), right)}
}

// Delete returns a rope without the bytes in [start, end).
// The range is clamped to the rope bounds.
func (r Rope) Delete(start, end ByteOffset) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return r
	}
	left, rest := split(r.root, start)
	_, right := split(rest, end-start)
	return Rope{root: join(left, right)}
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// Split returns [0, offset) and [offset, Len()).
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	left, right := split(r.root, r.clamp(offset))
	return Rope{root: left}, Rope{root: right}
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: join(r.root, other.root)}
}

// LineStartOffset returns the offset of the first byte of line.
// Lines past the end map to Len().
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if line == 0 || r.root == nil {
		return 0
	}
	if line > r.root.lines {
		return r.Len()
	}
	return r.root.newlineOffset(line) + 1
}

// LineEndOffset returns the offset of the newline ending line, or Len() for
// the last line.
func (r Rope) LineEndOffset(line uint32) ByteOffset {
	if r.root == nil {
		return 0
	}
	if line >= r.root.lines {
		return r.Len()
	}
	return r.root.newlineOffset(line + 1)
}

// LineText returns line without its trailing newline.
func (r Rope) LineText(line uint32) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// OffsetToPoint converts a byte offset to a line and column.
// Offsets are clamped to [0, Len()].
func (r Rope) OffsetToPoint(offset ByteOffset) Point {
	offset = r.clamp(offset)
	if r.root == nil || offset == 0 {
		return Point{}
	}
	line := r.root.newlinesBefore(offset)
	return Point{Line: line, Column: uint32(offset - r.LineStartOffset(line))}
}

// PointToOffset converts a line and column to a byte offset. Columns past
// the end of the line clamp to the line end; lines past the end clamp to Len().
func (r Rope) PointToOffset(p Point) ByteOffset {
	if r.root == nil {
		return 0
	}
	if p.Line > r.root.lines {
		return r.Len()
	}
	start := r.LineStartOffset(p.Line)
	end := r.LineEndOffset(p.Line)
	if start+ByteOffset(p.Column) > end {
		return end
	}
	return start + ByteOffset(p.Column)
}

// Height returns the tree height; an empty rope has height 0.
func (r Rope) Height() int {
	return height(r.root) + 1
}

// LeafCount returns the number of leaves.
func (r Rope) LeafCount() int {
	return r.root.leafCount()
}

// Equals reports whether both ropes hold the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}

// WriteTo writes the text to w leaf by leaf.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := r.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Chunk())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r Rope) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if l := r.Len(); offset > l {
		return l
	}
	return offset
}
