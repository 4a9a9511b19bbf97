package buffer

import (
	"fmt"

	"github.com/rut-editor/rut/internal/engine/rope"
)

// ByteOffset is a byte position in the buffer.
type ByteOffset = rope.ByteOffset

// Point is a line and column position, both 0-indexed.
// Column is measured in bytes from the start of the line.
type Point struct {
	Line   uint32 `yaml:"line"`
	Column uint32 `yaml:"column"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before reports whether p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

func (p Point) toRope() rope.Point {
	return rope.Point{Line: p.Line, Column: p.Column}
}

func pointFromRope(p rope.Point) Point {
	return Point{Line: p.Line, Column: p.Column}
}
