package buffer

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.TabWidth() != DefaultTabWidth {
		t.Errorf("expected tab width %d, got %d", DefaultTabWidth, b.TabWidth())
	}
	if b.Revision() != 0 {
		t.Errorf("expected revision 0, got %d", b.Revision())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		if got := b.LineText(uint32(i)); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}
	if b.LineLen(1) != 5 {
		t.Errorf("LineLen(1) = %d, want 5", b.LineLen(1))
	}
}

func TestApplyInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	res, err := b.Apply(NewInsert(5, ","))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("got %q", b.Text())
	}
	if res.Delta != 1 {
		t.Errorf("Delta = %d, want 1", res.Delta)
	}
	want := EditOp{Kind: OpDelete, Range: Range{Start: 5, End: 6}, Text: ","}
	if res.Inverse != want {
		t.Errorf("Inverse = %v, want %v", res.Inverse, want)
	}
	if b.Revision() != 1 {
		t.Errorf("Revision() = %d, want 1", b.Revision())
	}
}

func TestApplyDelete(t *testing.T) {
	b := NewBufferFromString("Hello, World")

	res, err := b.Apply(NewDelete(5, 7))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if b.Text() != "HelloWorld" {
		t.Errorf("got %q", b.Text())
	}
	if res.Op.Text != ", " {
		t.Errorf("removed text = %q, want %q", res.Op.Text, ", ")
	}
	if res.Delta != -2 {
		t.Errorf("Delta = %d, want -2", res.Delta)
	}
	if res.Inverse.Kind != OpInsert || res.Inverse.Offset() != 5 || res.Inverse.Text != ", " {
		t.Errorf("Inverse = %v", res.Inverse)
	}
}

func TestApplyOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		op   EditOp
	}{
		{"insert negative", NewInsert(-1, "x")},
		{"insert past end", NewInsert(6, "x")},
		{"delete past end", NewDelete(2, 9)},
		{"delete negative", NewDelete(-3, 2)},
		{"delete inverted", EditOp{Kind: OpDelete, Range: Range{Start: 4, End: 2}}},
		{"unknown kind", EditOp{Kind: OpKind(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString("hello")
			_, err := b.Apply(tt.op)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
			var editErr *EditError
			if !errors.As(err, &editErr) || editErr.Len != 5 {
				t.Errorf("expected *EditError with Len 5, got %#v", err)
			}
			if b.Text() != "hello" || b.Revision() != 0 {
				t.Error("document changed after a rejected op")
			}
		})
	}
}

func TestApplyNoOp(t *testing.T) {
	b := NewBufferFromString("abc")

	if _, err := b.Apply(NewInsert(1, "")); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Apply(NewDelete(2, 2)); err != nil {
		t.Fatal(err)
	}
	if b.Revision() != 0 {
		t.Errorf("no-op edits bumped revision to %d", b.Revision())
	}
}

func TestRead(t *testing.T) {
	b := NewBufferFromString("hello world")

	got, err := b.Read(Range{Start: 6, End: 11})
	if err != nil || got != "world" {
		t.Errorf("Read = %q, %v", got, err)
	}
	if _, err := b.Read(Range{Start: 6, End: 12}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if got, err := b.Read(Range{Start: 11, End: 11}); err != nil || got != "" {
		t.Errorf("empty Read at end = %q, %v", got, err)
	}
}

// Inserting text and deleting the same range with the inverse restores the
// document byte for byte.
func TestInsertDeleteRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	original := strings.Repeat("the quick brown fox\njumps over\n", 100)
	b := NewBufferFromString(original)

	for i := 0; i < 200; i++ {
		at := ByteOffset(rng.Intn(int(b.Len()) + 1))
		text := strings.Repeat("é", 1+rng.Intn(5))

		res, err := b.Apply(NewInsert(at, text))
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if _, err := b.Apply(res.Inverse); err != nil {
			t.Fatalf("inverse: %v", err)
		}
		if b.Text() != original {
			t.Fatalf("round trip %d at %d diverged", i, at)
		}
	}
}

func TestDeleteInsertRoundTrip(t *testing.T) {
	original := "alpha\nbeta\ngamma"
	b := NewBufferFromString(original)

	res, err := b.Apply(NewDelete(3, 12))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Apply(res.Inverse); err != nil {
		t.Fatal(err)
	}
	if b.Text() != original {
		t.Errorf("got %q, want %q", b.Text(), original)
	}

	inv := res.Invert()
	if inv.Op != res.Inverse || inv.Delta != -res.Delta {
		t.Errorf("Invert() = %+v", inv)
	}
}

func TestPointConversion(t *testing.T) {
	b := NewBufferFromString("ab\ncde\n")

	if p := b.OffsetToPoint(4); p != (Point{Line: 1, Column: 1}) {
		t.Errorf("OffsetToPoint(4) = %v", p)
	}
	if off := b.PointToOffset(Point{Line: 1, Column: 99}); off != 6 {
		t.Errorf("PointToOffset clamps to line end, got %d", off)
	}
	if b.LineCount() != 3 || b.LineText(2) != "" {
		t.Errorf("trailing newline should leave an empty last line")
	}
}

func TestPointCompare(t *testing.T) {
	a := Point{Line: 1, Column: 5}
	c := Point{Line: 2, Column: 0}
	if !a.Before(c) || c.Before(a) || a.Compare(a) != 0 {
		t.Error("Point ordering is wrong")
	}
}

func TestRange(t *testing.T) {
	r := NewRange(10, 4)
	if r.Start != 4 || r.End != 10 {
		t.Fatalf("NewRange should order bounds, got %v", r)
	}
	if !r.Contains(4) || r.Contains(10) {
		t.Error("Contains should be half-open")
	}
	if r.Overlaps(Range{Start: 10, End: 12}) {
		t.Error("adjacent ranges do not overlap")
	}
	if !r.Touches(Range{Start: 10, End: 12}) {
		t.Error("adjacent ranges touch")
	}
	if u := r.Union(Range{Start: 8, End: 15}); u != (Range{Start: 4, End: 15}) {
		t.Errorf("Union = %v", u)
	}
}

func TestLineEndings(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		detect LineEnding
	}{
		{"lf", "a\nb\nc", LineEndingLF},
		{"crlf", "a\r\nb\r\nc", LineEndingCRLF},
		{"cr", "a\rb\rc", LineEndingCR},
		{"none", "abc", LineEndingLF},
		{"mixed mostly crlf", "a\r\nb\r\nc\nd", LineEndingCRLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLineEnding(tt.input); got != tt.detect {
				t.Errorf("DetectLineEnding = %v, want %v", got, tt.detect)
			}

			b, err := NewBufferFromReader(strings.NewReader(tt.input), WithDetectedLineEnding())
			if err != nil {
				t.Fatal(err)
			}
			if strings.Contains(b.Text(), "\r") {
				t.Errorf("buffer holds CR after load: %q", b.Text())
			}
			if b.LineEnding() != tt.detect {
				t.Errorf("LineEnding() = %v, want %v", b.LineEnding(), tt.detect)
			}

			var out bytes.Buffer
			if _, err := b.WriteTo(&out); err != nil {
				t.Fatal(err)
			}
			want := strings.ReplaceAll(NormalizeLineEndings(tt.input), "\n", tt.detect.Sequence())
			if out.String() != want {
				t.Errorf("WriteTo = %q, want %q", out.String(), want)
			}
		})
	}
}

func TestParseLineEnding(t *testing.T) {
	for in, want := range map[string]LineEnding{"LF": LineEndingLF, "crlf": LineEndingCRLF, " cr ": LineEndingCR} {
		got, err := ParseLineEnding(in)
		if err != nil || got != want {
			t.Errorf("ParseLineEnding(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLineEnding("tabs"); err == nil {
		t.Error("expected error for unknown line ending")
	}
}

func TestChecksum(t *testing.T) {
	a := NewBufferFromString("same text")
	b := NewBufferFromString("same text")
	if a.Checksum() != b.Checksum() {
		t.Error("equal content should hash equally")
	}

	before := a.Checksum()
	res, _ := a.Apply(NewInsert(0, "x"))
	if a.Checksum() == before {
		t.Error("checksum should change with content")
	}
	if _, err := a.Apply(res.Inverse); err != nil {
		t.Fatal(err)
	}
	if a.Checksum() != before {
		t.Error("checksum should return after undoing the edit")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("hello")
	snap := b.Snapshot()

	if _, err := b.Apply(NewInsert(5, " world")); err != nil {
		t.Fatal(err)
	}
	if snap.Text() != "hello" {
		t.Errorf("snapshot changed to %q", snap.Text())
	}
	if snap.Revision() != 0 || b.Revision() != 1 {
		t.Errorf("revisions: snapshot %d, buffer %d", snap.Revision(), b.Revision())
	}
	if snap.Checksum() == b.Checksum() {
		t.Error("snapshot checksum should differ from edited buffer")
	}

	done := make(chan string)
	go func() { done <- snap.Slice(1, 4) }()
	if got := <-done; got != "ell" {
		t.Errorf("snapshot slice = %q", got)
	}
}

func TestGraphemeBoundaries(t *testing.T) {
	// "a", "e" + combining acute (3 bytes), "b", newline, flag (8 bytes), "c".
	text := "ae\u0301b\n\U0001F1EB\U0001F1F7c"
	b := NewBufferFromString(text)

	tests := []struct {
		name       string
		offset     ByteOffset
		prev, next ByteOffset
	}{
		{"start", 0, 0, 1},
		{"before combining cluster", 1, 0, 4},
		{"after combining cluster", 4, 1, 5},
		{"before newline", 5, 4, 6},
		{"after newline", 6, 5, 14},
		{"after flag", 14, 6, 15},
		{"end", 15, 14, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.PrevGraphemeBoundary(tt.offset); got != tt.prev {
				t.Errorf("PrevGraphemeBoundary(%d) = %d, want %d", tt.offset, got, tt.prev)
			}
			if got := b.NextGraphemeBoundary(tt.offset); got != tt.next {
				t.Errorf("NextGraphemeBoundary(%d) = %d, want %d", tt.offset, got, tt.next)
			}
		})
	}

	n, err := b.GraphemeCount(Range{Start: 0, End: b.Len()})
	if err != nil || n != 6 {
		t.Errorf("GraphemeCount = %d, %v; want 6", n, err)
	}
}
