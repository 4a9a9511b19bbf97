package buffer

import "github.com/rivo/uniseg"

// Grapheme boundaries never fall inside a line terminator, and a line
// always starts on a boundary, so the scan window is the current line.

// PrevGraphemeBoundary returns the start of the grapheme cluster ending at
// offset. At offset 0 it returns 0.
func (b *Buffer) PrevGraphemeBoundary(offset ByteOffset) ByteOffset {
	if offset <= 0 {
		return 0
	}
	if offset > b.Len() {
		offset = b.Len()
	}

	line := b.rope.OffsetToPoint(offset).Line
	start := b.rope.LineStartOffset(line)
	if start == offset {
		// Stepping back over the previous line's newline.
		start = b.rope.LineStartOffset(line - 1)
	}

	text := b.rope.Slice(start, offset)
	last := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		last, _ = g.Positions()
	}
	return start + ByteOffset(last)
}

// NextGraphemeBoundary returns the end of the grapheme cluster starting at
// offset. At the end of the document it returns Len().
func (b *Buffer) NextGraphemeBoundary(offset ByteOffset) ByteOffset {
	n := b.Len()
	if offset >= n {
		return n
	}
	if offset < 0 {
		offset = 0
	}

	line := b.rope.OffsetToPoint(offset).Line
	end := b.rope.LineEndOffset(line)
	if end < n {
		end++ // include the newline
	}

	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(b.rope.Slice(offset, end), -1)
	if cluster == "" {
		return offset + 1
	}
	return offset + ByteOffset(len(cluster))
}

// GraphemeCount returns the number of grapheme clusters in r.
func (b *Buffer) GraphemeCount(r Range) (int, error) {
	text, err := b.Read(r)
	if err != nil {
		return 0, err
	}
	return uniseg.GraphemeClusterCount(text), nil
}
