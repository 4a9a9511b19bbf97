package rope

// ChunkIterator walks the leaves of a rope in order.
//
//	it := r.Chunks()
//	for it.Next() {
//		fmt.Print(it.Chunk())
//	}
type ChunkIterator struct {
	stack []*node
	chunk string
}

// Chunks returns an iterator positioned before the first leaf.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{}
	if r.root != nil {
		it.stack = append(it.stack, r.root)
	}
	return it
}

// Next advances to the next non-empty leaf.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if n.isLeaf() {
			if n.length == 0 {
				continue
			}
			it.chunk = n.text
			return true
		}
		it.stack = append(it.stack, n.right, n.left)
	}
	it.chunk = ""
	return false
}

// Chunk returns the current leaf text.
func (it *ChunkIterator) Chunk() string {
	return it.chunk
}

// Builder accumulates text into leaves and produces a balanced rope.
// It implements io.Writer and io.StringWriter.
type Builder struct {
	leaves  []*node
	pending []byte
}

// Write appends p.
func (b *Builder) Write(p []byte) (int, error) {
	b.pending = append(b.pending, p...)
	b.flush(false)
	return len(p), nil
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	b.pending = append(b.pending, s...)
	b.flush(false)
	return len(s), nil
}

// Rope returns the accumulated text. The builder is reset.
func (b *Builder) Rope() Rope {
	b.flush(true)
	root := buildBalanced(b.leaves)
	b.leaves, b.pending = nil, nil
	return Rope{root: root}
}

// flush moves complete leaves out of pending. With all set, the remainder
// also becomes a leaf.
func (b *Builder) flush(all bool) {
	start := 0
	for len(b.pending)-start > MaxLeafSize {
		s := string(b.pending[start : start+MaxLeafSize])
		cut := leafBoundary(s, TargetLeafSize)
		b.leaves = append(b.leaves, newLeaf(s[:cut]))
		start += cut
	}
	if start > 0 {
		b.pending = append(b.pending[:0], b.pending[start:]...)
	}
	if all && len(b.pending) > 0 {
		b.leaves = append(b.leaves, newLeaf(string(b.pending)))
		b.pending = b.pending[:0]
	}
}
