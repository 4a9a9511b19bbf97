package buffer

import (
	"io"

	"github.com/zeebo/blake3"

	"github.com/rut-editor/rut/internal/engine/rope"
)

// DefaultTabWidth is used when no WithTabWidth option is given.
const DefaultTabWidth = 4

// Buffer is the document store. It is not safe for concurrent use.
type Buffer struct {
	rope       rope.Rope
	revision   uint64
	lineEnding LineEnding
	detect     bool
	tabWidth   int
}

// NewBuffer returns an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lineEnding: LineEndingLF,
		tabWidth:   DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString returns a buffer holding s with line endings
// normalized to LF.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.load(s)
	return b
}

// NewBufferFromReader reads r to the end and returns a buffer holding its
// text with line endings normalized to LF.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)

	// Read everything first so a CRLF split across reads still normalizes.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b.load(string(data))
	return b, nil
}

func (b *Buffer) load(s string) {
	if b.detect {
		b.lineEnding = DetectLineEnding(s)
	}
	b.rope = rope.FromString(NormalizeLineEndings(s))
}

// Apply validates and applies op.
//
// Insert offsets must lie in [0, Len()]; delete ranges must satisfy
// 0 <= Start <= End <= Len(). Anything else returns an *EditError and the
// document is unchanged. Text is stored as given: callers normalize line
// endings before building ops.
func (b *Buffer) Apply(op EditOp) (AppliedEdit, error) {
	n := b.rope.Len()

	switch op.Kind {
	case OpInsert:
		at := op.Range.Start
		if at < 0 || at > n {
			return AppliedEdit{}, &EditError{Op: "insert", Range: Range{Start: at, End: at}, Len: n}
		}
		end := at + ByteOffset(len(op.Text))
		if op.Text != "" {
			b.rope = b.rope.Insert(at, op.Text)
			b.revision++
		}
		return AppliedEdit{
			Op:      EditOp{Kind: OpInsert, Range: Range{Start: at, End: at}, Text: op.Text},
			Inverse: EditOp{Kind: OpDelete, Range: Range{Start: at, End: end}, Text: op.Text},
			Delta:   end - at,
		}, nil

	case OpDelete:
		r := op.Range
		if r.Start < 0 || r.Start > r.End || r.End > n {
			return AppliedEdit{}, &EditError{Op: "delete", Range: r, Len: n}
		}
		removed := b.rope.Slice(r.Start, r.End)
		if !r.IsEmpty() {
			b.rope = b.rope.Delete(r.Start, r.End)
			b.revision++
		}
		return AppliedEdit{
			Op:      EditOp{Kind: OpDelete, Range: r, Text: removed},
			Inverse: EditOp{Kind: OpInsert, Range: Range{Start: r.Start, End: r.Start}, Text: removed},
			Delta:   -r.Len(),
		}, nil
	}

	return AppliedEdit{}, &EditError{Op: op.Kind.String(), Range: op.Range, Len: n}
}

// Read returns the text in r.
func (b *Buffer) Read(r Range) (string, error) {
	n := b.rope.Len()
	if r.Start < 0 || r.Start > r.End || r.End > n {
		return "", &EditError{Op: "read", Range: r, Len: n}
	}
	return b.rope.Slice(r.Start, r.End), nil
}

// Text returns the full content. Prefer Read or Snapshot for large buffers.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// Len returns the length in bytes.
func (b *Buffer) Len() ByteOffset {
	return b.rope.Len()
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines; an empty buffer has one.
func (b *Buffer) LineCount() uint32 {
	return b.rope.LineCount()
}

// LineText returns line without its newline.
func (b *Buffer) LineText(line uint32) string {
	return b.rope.LineText(line)
}

// LineLen returns the byte length of line without its newline.
func (b *Buffer) LineLen(line uint32) int {
	return int(b.rope.LineEndOffset(line) - b.rope.LineStartOffset(line))
}

// LineStartOffset returns the offset of the first byte of line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	return b.rope.LineStartOffset(line)
}

// LineEndOffset returns the offset just before the newline ending line.
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	return b.rope.LineEndOffset(line)
}

// ByteAt returns the byte at offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	return b.rope.ByteAt(offset)
}

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	return pointFromRope(b.rope.OffsetToPoint(offset))
}

// PointToOffset converts line/column to a byte offset.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	return b.rope.PointToOffset(p.toRope())
}

// Revision increases by one with every applied op that changes the text.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// LineEnding returns the terminator used by WriteTo.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// SetLineEnding changes the terminator used by WriteTo.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// TabWidth returns the configured tab width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// Checksum returns the BLAKE3 digest of the content.
func (b *Buffer) Checksum() [32]byte {
	return checksum(b.rope)
}

// WriteTo writes the content to w using the buffer's line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.lineEnding == LineEndingLF {
		return b.rope.WriteTo(w)
	}

	var total int64
	it := b.rope.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, expandLineEndings(it.Chunk(), b.lineEnding))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Snapshot returns a read-only view of the current content.
func (b *Buffer) Snapshot() *Snapshot {
	return &Snapshot{rope: b.rope, revision: b.revision, lineEnding: b.lineEnding}
}

func checksum(r rope.Rope) [32]byte {
	h := blake3.New()
	it := r.Chunks()
	for it.Next() {
		_, _ = io.WriteString(h, it.Chunk())
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
