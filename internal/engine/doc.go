// Package engine provides the editing session for rut.
//
// A Session owns a single document and combines the sub-packages into one
// API:
//
//   - rope: immutable balanced rope for text storage (O(log n) edits)
//   - buffer: position-addressed edit operations with inverses
//   - cursor: ordered multi-cursor set with merge and delta transform
//   - intent: resolves an edit intent into per-cursor edits
//   - history: transaction-based undo/redo
//
// # Basic Usage
//
//	s := engine.New(engine.WithContent("hello"))
//
//	// Type at every cursor
//	s.ApplyIntent(intent.InsertText{Text: " world"})
//
//	// Add a second cursor and delete at both
//	s.AddCursorAt(0)
//	s.ApplyIntent(intent.DeleteForward{Count: 1})
//
//	// Undo restores text and cursors together
//	s.Undo()
//
// # Files
//
//	s, err := engine.Open("notes.txt", engine.WithBufferOptions(buffer.WithDetectedLineEnding()))
//	...
//	if s.Modified() {
//		err = s.Save()
//	}
//
// # Concurrency
//
// A Session is single-threaded and takes no locks. A renderer running on
// another goroutine should receive a Snapshot, which shares the immutable
// rope and copies the cursors.
//
// # Bulk edits
//
// Long operations such as replace-all run as a sequence of small
// transactions so the host can check for input between them:
//
//	br, _ := s.NewBulkReplace("foo", "bar", 100)
//	for !br.Done() {
//		if _, err := br.Step(); err != nil {
//			return err
//		}
//	}
package engine
