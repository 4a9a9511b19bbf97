package buffer

import (
	"io"

	"github.com/rut-editor/rut/internal/engine/rope"
)

// Snapshot is a read-only view of a buffer at one revision. It shares
// structure with the buffer and is safe to read from any goroutine.
type Snapshot struct {
	rope       rope.Rope
	revision   uint64
	lineEnding LineEnding
}

// Text returns the full content.
func (s *Snapshot) Text() string {
	return s.rope.String()
}

// Slice returns the text in [start, end), clamped to the content.
func (s *Snapshot) Slice(start, end ByteOffset) string {
	return s.rope.Slice(start, end)
}

// Len returns the length in bytes.
func (s *Snapshot) Len() ByteOffset {
	return s.rope.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 {
	return s.rope.LineCount()
}

// LineText returns line without its newline.
func (s *Snapshot) LineText(line uint32) string {
	return s.rope.LineText(line)
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	return pointFromRope(s.rope.OffsetToPoint(offset))
}

// Revision returns the buffer revision the snapshot was taken at.
func (s *Snapshot) Revision() uint64 {
	return s.revision
}

// Checksum returns the BLAKE3 digest of the content.
func (s *Snapshot) Checksum() [32]byte {
	return checksum(s.rope)
}

// WriteTo writes the content with the snapshot's line ending.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	b := Buffer{rope: s.rope, lineEnding: s.lineEnding}
	return b.WriteTo(w)
}

// Chunks iterates over the content leaf by leaf.
func (s *Snapshot) Chunks() *rope.ChunkIterator {
	return s.rope.Chunks()
}
