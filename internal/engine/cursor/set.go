package cursor

import (
	"slices"
	"sort"

	"github.com/rut-editor/rut/internal/engine/buffer"
)

// Set is an ordered, non-empty collection of cursors.
//
// After every change the set is normalized: cursors are sorted by head, no
// two cursors share a head, and overlapping selections are merged into one
// covering selection. When two cursors land on the same head, the one that
// came later keeps its anchor. One cursor is primary; its identity survives
// merges.
//
// Set is not safe for concurrent use.
type Set struct {
	cursors []Cursor
	primary int
}

// State is a copy of a set's cursors, used to restore it after undo.
type State struct {
	Cursors []Cursor `yaml:"cursors"`
	Primary int      `yaml:"primary"`
}

// NewSet returns a set holding c.
func NewSet(c Cursor) *Set {
	return &Set{cursors: []Cursor{c}}
}

// NewSetAt returns a set with one cursor at offset.
func NewSetAt(offset ByteOffset) *Set {
	return NewSet(At(offset))
}

// NewSetFrom returns a normalized set of cs with cs[0] as primary.
// An empty slice yields a single cursor at 0.
func NewSetFrom(cs []Cursor) *Set {
	s := &Set{}
	s.Replace(cs, 0)
	return s
}

// All returns a copy of the cursors in head order.
func (s *Set) All() []Cursor {
	return slices.Clone(s.cursors)
}

// Heads returns the head offsets in order.
func (s *Set) Heads() []ByteOffset {
	heads := make([]ByteOffset, len(s.cursors))
	for i, c := range s.cursors {
		heads[i] = c.Head
	}
	return heads
}

// Len returns the number of cursors. It is never zero.
func (s *Set) Len() int {
	return len(s.cursors)
}

// Get returns the i-th cursor in head order.
func (s *Set) Get(i int) Cursor {
	return s.cursors[i]
}

// Primary returns the primary cursor.
func (s *Set) Primary() Cursor {
	return s.cursors[s.primary]
}

// PrimaryIndex returns the position of the primary cursor in head order.
func (s *Set) PrimaryIndex() int {
	return s.primary
}

// Max returns the cursor with the highest head.
func (s *Set) Max() Cursor {
	return s.cursors[len(s.cursors)-1]
}

// Min returns the cursor with the lowest head.
func (s *Set) Min() Cursor {
	return s.cursors[0]
}

// Add inserts c and makes it primary. If a cursor already has c's head the
// set is left unchanged and ErrCursorCollision is returned.
func (s *Set) Add(c Cursor) error {
	for _, existing := range s.cursors {
		if existing.Head == c.Head {
			return ErrCursorCollision
		}
	}
	next := append(slices.Clone(s.cursors), c)
	s.Replace(next, len(next)-1)
	return nil
}

// SetAll replaces every cursor with cs, cs[0] becoming primary.
func (s *Set) SetAll(cs []Cursor) {
	s.Replace(cs, 0)
}

// Replace sets the cursors to cs with cs[primary] as primary, then
// normalizes. Later entries in cs win head collisions.
func (s *Set) Replace(cs []Cursor, primary int) {
	if len(cs) == 0 {
		s.cursors, s.primary = []Cursor{At(0)}, 0
		return
	}
	s.cursors, s.primary = normalize(cs, primary)
}

// Clear removes every cursor except the primary.
func (s *Set) Clear() {
	s.cursors = []Cursor{s.cursors[s.primary]}
	s.primary = 0
}

// CollapseAll drops every selection, keeping heads.
func (s *Set) CollapseAll() {
	for i, c := range s.cursors {
		s.cursors[i] = c.Collapse()
	}
}

// HasSelection reports whether any cursor selects text.
func (s *Set) HasSelection() bool {
	for _, c := range s.cursors {
		if c.HasSelection() {
			return true
		}
	}
	return false
}

// Ranges returns each cursor's selection range in order.
func (s *Set) Ranges() []Range {
	ranges := make([]Range, len(s.cursors))
	for i, c := range s.cursors {
		ranges[i] = c.Range()
	}
	return ranges
}

// Transform shifts every cursor past an applied op.
func (s *Set) Transform(op buffer.EditOp) {
	next := make([]Cursor, len(s.cursors))
	for i, c := range s.cursors {
		next[i] = TransformCursor(c, op)
	}
	s.cursors, s.primary = normalize(next, s.primary)
}

// Clamp limits every cursor to [0, maxOffset].
func (s *Set) Clamp(maxOffset ByteOffset) {
	next := make([]Cursor, len(s.cursors))
	for i, c := range s.cursors {
		next[i] = c.Clamp(maxOffset)
	}
	s.cursors, s.primary = normalize(next, s.primary)
}

// State returns a copy of the cursors and primary index.
func (s *Set) State() State {
	return State{Cursors: s.All(), Primary: s.primary}
}

// Restore replaces the set's contents with st.
func (s *Set) Restore(st State) {
	s.Replace(st.Cursors, st.Primary)
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return &Set{cursors: s.All(), primary: s.primary}
}

// Equals reports whether both sets hold the same cursors and primary.
func (s *Set) Equals(other *Set) bool {
	if other == nil {
		return false
	}
	return s.primary == other.primary && slices.Equal(s.cursors, other.cursors)
}

type entry struct {
	c       Cursor
	primary bool
}

// normalize dedupes heads, sorts, and merges overlapping cursors.
func normalize(cs []Cursor, primary int) ([]Cursor, int) {
	entries := make([]entry, 0, len(cs))
	byHead := make(map[ByteOffset]int, len(cs))
	for i, c := range cs {
		if j, ok := byHead[c.Head]; ok {
			entries[j].c = c
			entries[j].primary = entries[j].primary || i == primary
			continue
		}
		byHead[c.Head] = len(entries)
		entries = append(entries, entry{c: c, primary: i == primary})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].c, entries[j].c
		if a.Start() != b.Start() {
			return a.Start() < b.Start()
		}
		return a.End() > b.End()
	})

	merged := entries[:1]
	for _, e := range entries[1:] {
		last := &merged[len(merged)-1]
		if overlaps(last.c, e.c) {
			last.c = last.c.union(e.c)
			last.primary = last.primary || e.primary
			continue
		}
		merged = append(merged, e)
	}

	out := make([]Cursor, len(merged))
	p := -1
	for i, e := range merged {
		out[i] = e.c
		if e.primary && p < 0 {
			p = i
		}
	}
	if p < 0 {
		p = 0
	}
	return out, p
}

// overlaps reports whether b, which does not start before a, must merge
// into a: the selections share a byte, a bare cursor touches a selection
// edge, or the heads coincide.
func overlaps(a, b Cursor) bool {
	switch {
	case b.Start() < a.End():
		return true
	case b.Start() == a.End() && (!a.HasSelection() || !b.HasSelection()):
		return true
	}
	return a.Head == b.Head
}
