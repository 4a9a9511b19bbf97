package rope

import (
	"strings"
)

// Leaf size limits.
const (
	// MaxLeafSize is the largest leaf produced when building or merging.
	MaxLeafSize = 512

	// TargetLeafSize is the preferred leaf size when bulk loading text.
	TargetLeafSize = 384
)

// node is either a leaf (left == nil && right == nil) holding text, or a
// branch with two non-nil children. Nodes are never mutated after creation.
type node struct {
	left, right *node
	text        string

	length ByteOffset
	lines  uint32 // newlines in subtree
	height uint8
}

func newLeaf(s string) *node {
	return &node{
		text:   s,
		length: ByteOffset(len(s)),
		lines:  uint32(strings.Count(s, "\n")),
	}
}

// newBranch joins two children without rebalancing.
func newBranch(l, r *node) *node {
	h := l.height
	if r.height > h {
		h = r.height
	}
	return &node{
		left:   l,
		right:  r,
		length: l.length + r.length,
		lines:  l.lines + r.lines,
		height: h + 1,
	}
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

func height(n *node) int {
	if n == nil {
		return -1
	}
	return int(n.height)
}

func balanceFactor(n *node) int {
	if n.isLeaf() {
		return 0
	}
	return height(n.left) - height(n.right)
}

func rotateRight(n *node) *node {
	l := n.left
	return newBranch(l.left, newBranch(l.right, n.right))
}

func rotateLeft(n *node) *node {
	r := n.right
	return newBranch(newBranch(n.left, r.left), r.right)
}

// rebalance restores the AVL property at n, assuming both subtrees are
// balanced and their heights differ by at most two.
func rebalance(n *node) *node {
	bf := balanceFactor(n)
	switch {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n = newBranch(rotateLeft(n.left), n.right)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n = newBranch(n.left, rotateRight(n.right))
		}
		return rotateLeft(n)
	}
	return n
}

// join concatenates two balanced trees into a balanced tree.
// Either argument may be nil.
func join(l, r *node) *node {
	if l == nil || l.length == 0 {
		return r
	}
	if r == nil || r.length == 0 {
		return l
	}

	hl, hr := height(l), height(r)
	switch {
	case hl > hr+1:
		return rebalance(newBranch(l.left, join(l.right, r)))
	case hr > hl+1:
		return rebalance(newBranch(join(l, r.left), r.right))
	}

	if l.isLeaf() && r.isLeaf() && l.length+r.length <= MaxLeafSize {
		return newLeaf(l.text + r.text)
	}
	return newBranch(l, r)
}

// split divides the subtree at offset into [0, offset) and [offset, len).
func split(n *node, offset ByteOffset) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if offset <= 0 {
		return nil, n
	}
	if offset >= n.length {
		return n, nil
	}

	if n.isLeaf() {
		return newLeaf(n.text[:offset]), newLeaf(n.text[offset:])
	}

	if offset <= n.left.length {
		ll, lr := split(n.left, offset)
		return ll, join(lr, n.right)
	}
	rl, rr := split(n.right, offset-n.left.length)
	return join(n.left, rl), rr
}

// build creates a balanced tree over s, cutting leaves at UTF-8 boundaries.
func build(s string) *node {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxLeafSize {
		return newLeaf(s)
	}

	leaves := make([]*node, 0, len(s)/TargetLeafSize+1)
	for len(s) > 0 {
		if len(s) <= MaxLeafSize {
			leaves = append(leaves, newLeaf(s))
			break
		}
		cut := leafBoundary(s, TargetLeafSize)
		leaves = append(leaves, newLeaf(s[:cut]))
		s = s[cut:]
	}
	return buildBalanced(leaves)
}

func buildBalanced(nodes []*node) *node {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}
	mid := len(nodes) / 2
	return newBranch(buildBalanced(nodes[:mid]), buildBalanced(nodes[mid:]))
}

// leafBoundary picks a cut point near target that does not split a UTF-8
// sequence, preferring the byte after a newline.
func leafBoundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	window := TargetLeafSize / 8
	for i := target; i < len(s) && i < target+window; i++ {
		if s[i-1] == '\n' {
			return i
		}
	}
	cut := target
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return target
	}
	return cut
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func (n *node) appendTo(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		sb.WriteString(n.text)
		return
	}
	n.left.appendTo(sb)
	n.right.appendTo(sb)
}

// appendRange writes the bytes of [start, end) within this subtree.
func (n *node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if n == nil || start >= end {
		return
	}
	if n.isLeaf() {
		sb.WriteString(n.text[start:end])
		return
	}
	ll := n.left.length
	if start < ll {
		e := end
		if e > ll {
			e = ll
		}
		n.left.appendRange(sb, start, e)
	}
	if end > ll {
		s := start - ll
		if s < 0 {
			s = 0
		}
		n.right.appendRange(sb, s, end-ll)
	}
}

// newlinesBefore counts newlines in [0, offset) of the subtree.
func (n *node) newlinesBefore(offset ByteOffset) uint32 {
	var count uint32
	for n != nil && offset > 0 {
		if n.isLeaf() {
			if offset > n.length {
				offset = n.length
			}
			return count + uint32(strings.Count(n.text[:offset], "\n"))
		}
		if offset <= n.left.length {
			n = n.left
			continue
		}
		count += n.left.lines
		offset -= n.left.length
		n = n.right
	}
	return count
}

// newlineOffset returns the offset of the k-th newline (1-based) in the
// subtree. The caller guarantees 1 <= k <= n.lines.
func (n *node) newlineOffset(k uint32) ByteOffset {
	var base ByteOffset
	for !n.isLeaf() {
		if k <= n.left.lines {
			n = n.left
			continue
		}
		k -= n.left.lines
		base += n.left.length
		n = n.right
	}
	idx := 0
	for i := uint32(0); i < k; i++ {
		j := strings.IndexByte(n.text[idx:], '\n')
		if i == k-1 {
			return base + ByteOffset(idx+j)
		}
		idx += j + 1
	}
	return base + ByteOffset(idx)
}

func (n *node) byteAt(offset ByteOffset) byte {
	for !n.isLeaf() {
		if offset < n.left.length {
			n = n.left
		} else {
			offset -= n.left.length
			n = n.right
		}
	}
	return n.text[offset]
}

func (n *node) leafCount() int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return 1
	}
	return n.left.leafCount() + n.right.leafCount()
}

// balanced reports whether every branch satisfies the AVL property and the
// cached metrics match the children. Used by tests.
func (n *node) balanced() bool {
	if n == nil || n.isLeaf() {
		return true
	}
	if n.left == nil || n.right == nil {
		return false
	}
	if bf := balanceFactor(n); bf > 1 || bf < -1 {
		return false
	}
	if n.length != n.left.length+n.right.length || n.lines != n.left.lines+n.right.lines {
		return false
	}
	return n.left.balanced() && n.right.balanced()
}
