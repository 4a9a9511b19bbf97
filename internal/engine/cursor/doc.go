// Package cursor provides cursors and the multi-cursor set.
//
// A Cursor uses the anchor/head model: Head is where typing happens and
// Anchor is the fixed end of the selection. When Anchor == Head there is no
// selection.
//
// A Set holds one or more cursors and keeps them normalized: sorted by head,
// no two with the same head, overlapping selections merged. Adding a cursor
// on an occupied head fails with ErrCursorCollision.
//
//	cs := cursor.NewSetAt(5)
//	_ = cs.Add(cursor.At(10))
//	cs.Transform(buffer.NewInsert(0, "xx")) // heads now 7 and 12
//
// Transform rules for an insert at p: a bare cursor at offset moves when
// p <= offset; a selection's start moves when p <= start and its end moves
// when p < end. For a delete of [s, e): positions at or before s stay,
// positions inside move to s, positions at or after e move left by e-s.
//
// Cursor values are immutable and safe to share. Set is not safe for
// concurrent use.
package cursor
