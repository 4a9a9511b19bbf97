// Package history provides transactional undo and redo.
//
// A Transaction holds the applied edits of one user intent together with
// the cursor state before and after. History keeps two stacks:
//
//	h := history.New(history.WithMaxEntries(500))
//	h.Record(tx)                 // push, clear redo
//	tx, err := h.Undo(buf, cs)   // revert edits in reverse, restore CursorsBefore
//	tx, err = h.Redo(buf, cs)    // reapply edits in order, restore CursorsAfter
//
// Undo and Redo on an empty stack return errors matching ErrEmpty and leave
// the buffer and cursors alone.
//
// # Grouping
//
// Transactions recorded between BeginGroup and EndGroup are merged into one:
//
//	h.BeginGroup("Replace All")
//	// ... several intents ...
//	h.EndGroup()
//
// # Archiving
//
// Transactions leaving history, either evicted past MaxEntries or dropped
// from the redo stack by a new record, are passed to an optional Archiver.
package history
