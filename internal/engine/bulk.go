package engine

import (
	"strings"

	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/intent"
)

// DefaultBulkBatch is the batch size used when NewBulkReplace is given a
// non-positive one.
const DefaultBulkBatch = 100

// BulkReplace replaces every occurrence of a string in small steps. Each
// Step is its own transaction, so a host can stay responsive between
// steps or stop early. Wrap the steps in BeginGroup/EndGroup to undo them
// as one.
type BulkReplace struct {
	s        *Session
	find     string
	replace  string
	batch    int
	next     ByteOffset
	replaced int
	done     bool
}

// NewBulkReplace prepares to replace occurrences of find with replace,
// batch at a time, scanning forward from the start of the document.
func (s *Session) NewBulkReplace(find, replace string, batch int) (*BulkReplace, error) {
	find = buffer.NormalizeLineEndings(find)
	if find == "" {
		return nil, ErrEmptyPattern
	}
	if batch <= 0 {
		batch = DefaultBulkBatch
	}
	return &BulkReplace{
		s:       s,
		find:    find,
		replace: buffer.NormalizeLineEndings(replace),
		batch:   batch,
	}, nil
}

// Step replaces up to batch occurrences after the previous step's last
// replacement. Replaced text is never searched again. When no occurrence
// is left, Step returns an unchanged result and Done becomes true.
func (b *BulkReplace) Step() (TransactionResult, error) {
	if b.done {
		return b.s.unchanged(), nil
	}

	start := min(b.next, b.s.buf.Len())
	text, err := b.s.buf.Read(Range{Start: start, End: b.s.buf.Len()})
	if err != nil {
		return b.s.unchanged(), err
	}

	var ranges []Range
	for pos := 0; len(ranges) < b.batch; {
		i := strings.Index(text[pos:], b.find)
		if i < 0 {
			b.done = true
			break
		}
		at := start + ByteOffset(pos+i)
		ranges = append(ranges, Range{Start: at, End: at + ByteOffset(len(b.find))})
		pos += i + len(b.find)
	}
	if len(ranges) == 0 {
		return b.s.unchanged(), nil
	}

	res, err := b.s.ApplyIntent(intent.Replace{Ranges: ranges, Text: b.replace})
	if err != nil {
		return res, err
	}

	// The replacements before the last one shifted it by the length change.
	shift := ByteOffset(len(ranges)-1) * ByteOffset(len(b.replace)-len(b.find))
	b.next = ranges[len(ranges)-1].Start + shift + ByteOffset(len(b.replace))
	b.replaced += len(ranges)
	if b.next >= b.s.buf.Len() {
		b.done = true
	}
	return res, nil
}

// Run steps until done and returns the number of replacements.
func (b *BulkReplace) Run() (int, error) {
	for !b.done {
		if _, err := b.Step(); err != nil {
			return b.replaced, err
		}
	}
	return b.replaced, nil
}

// Done reports whether no occurrences are left.
func (b *BulkReplace) Done() bool {
	return b.done
}

// Replaced returns the number of occurrences replaced so far.
func (b *BulkReplace) Replaced() int {
	return b.replaced
}
