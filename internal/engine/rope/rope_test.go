package rope

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("new rope should be empty")
	}
	if r.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", r.LineCount())
	}
	if r.Height() != 0 {
		t.Errorf("Height() = %d, want 0", r.Height())
	}

	var zero Rope
	if zero.String() != "" || zero.LeafCount() != 0 {
		t.Error("zero value should behave as an empty rope")
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"with newline", "hello\nworld"},
		{"unicode", "héllo 世界 🌍"},
		{"one leaf", strings.Repeat("x", MaxLeafSize)},
		{"two leaves", strings.Repeat("x", MaxLeafSize+1)},
		{"many leaves", strings.Repeat("abcdefghi\n", 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() mismatch")
			}
			if r.Len() != ByteOffset(len(tt.input)) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.input))
			}
			if want := uint32(strings.Count(tt.input, "\n")) + 1; r.LineCount() != want {
				t.Errorf("LineCount() = %d, want %d", r.LineCount(), want)
			}
			if !r.root.balanced() {
				t.Error("tree is not balanced")
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   ByteOffset
		text     string
		expected string
	}{
		{"at start", "world", 0, "hello ", "hello world"},
		{"at end", "hello", 5, " world", "hello world"},
		{"in middle", "helloworld", 5, " ", "hello world"},
		{"into empty", "", 0, "hello", "hello"},
		{"empty text", "hello", 3, "", "hello"},
		{"past end clamps", "abc", 99, "d", "abcd"},
		{"negative clamps", "abc", -4, "z", "zabc"},
		{"rune boundary", "世界", 3, "!", "世!界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Insert(tt.offset, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end ByteOffset
		expected   string
	}{
		{"prefix", "hello world", 0, 6, "world"},
		{"suffix", "hello world", 5, 11, "hello"},
		{"middle", "hello world", 2, 9, "held"},
		{"everything", "hello", 0, 5, ""},
		{"empty range", "hello", 2, 2, "hello"},
		{"inverted range", "hello", 4, 1, "hello"},
		{"clamped end", "hello", 3, 50, "hel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Delete(tt.start, tt.end)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	r := FromString("hello world").Replace(6, 11, "there")
	if got := r.String(); got != "hello there" {
		t.Errorf("got %q, want %q", got, "hello there")
	}
}

func TestImmutability(t *testing.T) {
	orig := FromString("abc")
	edited := orig.Insert(1, "XYZ").Delete(0, 1)

	if orig.String() != "abc" {
		t.Errorf("original changed to %q", orig.String())
	}
	if edited.String() != "XYZbc" {
		t.Errorf("edited = %q, want %q", edited.String(), "XYZbc")
	}
}

func TestSplitConcat(t *testing.T) {
	text := strings.Repeat("line of text\n", 300)
	r := FromString(text)

	for _, at := range []ByteOffset{0, 1, 13, 512, 1000, ByteOffset(len(text))} {
		left, right := r.Split(at)
		if left.String() != text[:at] {
			t.Errorf("Split(%d) left mismatch", at)
		}
		if right.String() != text[at:] {
			t.Errorf("Split(%d) right mismatch", at)
		}
		joined := left.Concat(right)
		if joined.String() != text {
			t.Errorf("Concat after Split(%d) mismatch", at)
		}
		if !joined.root.balanced() {
			t.Errorf("Concat after Split(%d) not balanced", at)
		}
	}
}

func TestSliceAndByteAt(t *testing.T) {
	text := strings.Repeat("0123456789", 200)
	r := FromString(text)

	if got := r.Slice(505, 520); got != text[505:520] {
		t.Errorf("Slice(505, 520) = %q, want %q", got, text[505:520])
	}
	if got := r.Slice(-5, 3); got != "012" {
		t.Errorf("Slice(-5, 3) = %q, want %q", got, "012")
	}
	if got := r.Slice(10, 5); got != "" {
		t.Errorf("inverted Slice = %q, want empty", got)
	}

	b, ok := r.ByteAt(1234)
	if !ok || b != text[1234] {
		t.Errorf("ByteAt(1234) = %q, %v", b, ok)
	}
	if _, ok := r.ByteAt(r.Len()); ok {
		t.Error("ByteAt(Len()) should report false")
	}
	if _, ok := r.ByteAt(-1); ok {
		t.Error("ByteAt(-1) should report false")
	}
}

func TestLineQueries(t *testing.T) {
	r := FromString("a\nbb\n\nccc")

	if r.LineCount() != 4 {
		t.Fatalf("LineCount() = %d, want 4", r.LineCount())
	}

	starts := []ByteOffset{0, 2, 5, 6}
	ends := []ByteOffset{1, 4, 5, 9}
	texts := []string{"a", "bb", "", "ccc"}
	for i := range starts {
		line := uint32(i)
		if got := r.LineStartOffset(line); got != starts[i] {
			t.Errorf("LineStartOffset(%d) = %d, want %d", line, got, starts[i])
		}
		if got := r.LineEndOffset(line); got != ends[i] {
			t.Errorf("LineEndOffset(%d) = %d, want %d", line, got, ends[i])
		}
		if got := r.LineText(line); got != texts[i] {
			t.Errorf("LineText(%d) = %q, want %q", line, got, texts[i])
		}
	}

	if got := r.LineStartOffset(10); got != r.Len() {
		t.Errorf("LineStartOffset past end = %d, want %d", got, r.Len())
	}
}

func TestPointConversion(t *testing.T) {
	r := FromString("a\nbb\n\nccc")

	tests := []struct {
		offset ByteOffset
		point  Point
	}{
		{0, Point{0, 0}},
		{1, Point{0, 1}},
		{2, Point{1, 0}},
		{3, Point{1, 1}},
		{5, Point{2, 0}},
		{6, Point{3, 0}},
		{9, Point{3, 3}},
	}
	for _, tt := range tests {
		if got := r.OffsetToPoint(tt.offset); got != tt.point {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.point)
		}
		if got := r.PointToOffset(tt.point); got != tt.offset {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, got, tt.offset)
		}
	}

	if got := r.PointToOffset(Point{Line: 1, Column: 40}); got != 4 {
		t.Errorf("column past line end = %d, want 4", got)
	}
	if got := r.PointToOffset(Point{Line: 9}); got != r.Len() {
		t.Errorf("line past end = %d, want %d", got, r.Len())
	}
	if got := r.OffsetToPoint(100); got != (Point{3, 3}) {
		t.Errorf("OffsetToPoint past end = %v", got)
	}
}

func TestPointConversionLarge(t *testing.T) {
	text := generateTextWithLines(500, 40)
	r := FromString(text)
	lines := strings.Split(text, "\n")

	var offset ByteOffset
	for i, line := range lines {
		p := r.OffsetToPoint(offset)
		if p.Line != uint32(i) || p.Column != 0 {
			t.Fatalf("OffsetToPoint(%d) = %v, want (%d:0)", offset, p, i)
		}
		if got := r.LineText(uint32(i)); got != line {
			t.Fatalf("LineText(%d) mismatch", i)
		}
		offset += ByteOffset(len(line)) + 1
	}
}

func TestRandomEditsMatchString(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := New()
	model := ""

	for i := 0; i < 3000; i++ {
		switch {
		case len(model) == 0 || rng.Intn(3) > 0:
			at := rng.Intn(len(model) + 1)
			text := strings.Repeat(string(rune('a'+rng.Intn(26))), 1+rng.Intn(40))
			if rng.Intn(5) == 0 {
				text += "\n"
			}
			r = r.Insert(ByteOffset(at), text)
			model = model[:at] + text + model[at:]
		default:
			start := rng.Intn(len(model))
			end := start + rng.Intn(len(model)-start+1)
			r = r.Delete(ByteOffset(start), ByteOffset(end))
			model = model[:start] + model[end:]
		}

		if r.Len() != ByteOffset(len(model)) {
			t.Fatalf("step %d: Len() = %d, want %d", i, r.Len(), len(model))
		}
	}

	if r.String() != model {
		t.Fatal("content diverged from model")
	}
	if r.LineCount() != uint32(strings.Count(model, "\n"))+1 {
		t.Errorf("LineCount() = %d", r.LineCount())
	}
	if !r.root.balanced() {
		t.Error("tree is not balanced after random edits")
	}
}

func TestLeavesStayBounded(t *testing.T) {
	r := FromString(strings.Repeat("z", 5000))
	for i := 0; i < 200; i++ {
		r = r.Insert(ByteOffset(i*17), "hello")
	}

	it := r.Chunks()
	var sb strings.Builder
	for it.Next() {
		if len(it.Chunk()) > MaxLeafSize {
			t.Fatalf("leaf of %d bytes exceeds %d", len(it.Chunk()), MaxLeafSize)
		}
		sb.WriteString(it.Chunk())
	}
	if sb.String() != r.String() {
		t.Error("chunks do not reassemble the text")
	}
}

func TestBuilder(t *testing.T) {
	text := generateText(10000)

	var b Builder
	for i := 0; i < len(text); i += 7 {
		end := i + 7
		if end > len(text) {
			end = len(text)
		}
		if _, err := b.WriteString(text[i:end]); err != nil {
			t.Fatal(err)
		}
	}
	r := b.Rope()

	if r.String() != text {
		t.Fatal("builder content mismatch")
	}
	if !r.root.balanced() {
		t.Error("builder tree not balanced")
	}
	if r.LeafCount() < 2 {
		t.Errorf("LeafCount() = %d, want several leaves", r.LeafCount())
	}
	if again := b.Rope(); !again.IsEmpty() {
		t.Error("builder should reset after Rope()")
	}
}

func TestFromReaderWriteTo(t *testing.T) {
	text := generateTextWithLines(200, 50)

	r, err := FromReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if !r.Equals(FromString(text)) {
		t.Fatal("FromReader content mismatch")
	}

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(text)) || buf.String() != text {
		t.Errorf("WriteTo wrote %d bytes, content match %v", n, buf.String() == text)
	}
}

func TestHeightIsLogarithmic(t *testing.T) {
	r := New()
	for i := 0; i < 5000; i++ {
		r = r.Insert(r.Len(), "0123456789")
	}
	// An AVL tree with L leaves has height at most log_phi(L).
	limit := int(1.45*math.Log2(float64(r.LeafCount()))) + 2
	if h := r.Height(); h > limit {
		t.Errorf("Height() = %d with %d leaves, limit %d", h, r.LeafCount(), limit)
	}
	if !r.root.balanced() {
		t.Error("tree not balanced after sequential appends")
	}
}
