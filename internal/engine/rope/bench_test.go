package rope

import (
	"math/rand"
	"strings"
	"testing"
)

// generateText creates text of roughly size bytes made of short lines of words.
func generateText(size int) string {
	var sb strings.Builder
	sb.Grow(size)

	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog"}
	lineLen := 0
	for sb.Len() < size {
		word := words[rand.Intn(len(words))]
		if sb.Len()+len(word)+1 > size {
			break
		}
		if sb.Len() > 0 {
			if lineLen > 60 {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}

// generateTextWithLines creates lines of random letters averaging avgLineLen.
func generateTextWithLines(lines int, avgLineLen int) string {
	var sb strings.Builder
	sb.Grow(lines * (avgLineLen + 1))

	for i := 0; i < lines; i++ {
		n := avgLineLen + rand.Intn(21) - 10
		if n < 10 {
			n = 10
		}
		for j := 0; j < n; j++ {
			sb.WriteByte(byte('a' + rand.Intn(26)))
		}
		if i < lines-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func BenchmarkFromString(b *testing.B) {
	text := generateText(1 << 20)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FromString(text)
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	r := FromString(generateText(1 << 20))
	mid := r.Len() / 2
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Insert(mid, "x")
	}
}

func BenchmarkInsertRandom(b *testing.B) {
	r := FromString(generateText(1 << 20))
	n := int(r.Len())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r = r.Insert(ByteOffset(rand.Intn(n)), "x")
	}
}

func BenchmarkDeleteMiddle(b *testing.B) {
	r := FromString(generateText(1 << 20))
	mid := r.Len() / 2
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Delete(mid, mid+10)
	}
}

func BenchmarkLineStartOffset(b *testing.B) {
	r := FromString(generateTextWithLines(10000, 60))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.LineStartOffset(uint32(i % 10000))
	}
}

func BenchmarkOffsetToPoint(b *testing.B) {
	r := FromString(generateTextWithLines(10000, 60))
	n := int(r.Len())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.OffsetToPoint(ByteOffset(i % n))
	}
}

func BenchmarkInsertVsString(b *testing.B) {
	text := generateText(1 << 20)
	b.Run("rope", func(b *testing.B) {
		r := FromString(text)
		for i := 0; i < b.N; i++ {
			_ = r.Insert(ByteOffset(len(text)/2), "x")
		}
	})
	b.Run("string", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = text[:len(text)/2] + "x" + text[len(text)/2:]
		}
	})
}
