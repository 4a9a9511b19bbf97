package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/cursor"
	"github.com/rut-editor/rut/internal/engine/history"
	"github.com/rut-editor/rut/internal/engine/intent"
	"github.com/rut-editor/rut/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Cursor is a head with an optional selection anchor.
	Cursor = cursor.Cursor

	// EditIntent is a user-level edit applied at every cursor.
	EditIntent = intent.EditIntent
)

// TransactionResult describes what an edit, undo or redo did.
type TransactionResult struct {
	// Changed is false when the operation left the document alone.
	Changed     bool
	ID          uuid.UUID
	Description string
	Edits       int
	Delta       ByteOffset
	Revision    uint64
	Cursors     []Cursor
}

// Session owns one document: its buffer, cursors and history. All mutation
// goes through ApplyIntent, Undo and Redo.
//
// A Session is not safe for concurrent use. Hand a Snapshot to other
// goroutines instead.
type Session struct {
	id      uuid.UUID
	buf     *buffer.Buffer
	cursors *cursor.Set
	history *history.History
	log     *logging.Logger

	path          string
	savedRevision uint64
	savedSum      [32]byte

	// Configuration
	bufOpts     []buffer.Option
	maxUndo     int
	archiver    history.Archiver
	initContent string
}

// New creates a session holding the configured content, with one cursor at
// the start.
func New(opts ...Option) *Session {
	s := configure(opts)
	s.init(buffer.NewBufferFromString(s.initContent, s.bufOpts...))
	return s
}

func configure(opts []Option) *Session {
	s := &Session{
		id:      uuid.New(),
		maxUndo: DefaultMaxUndoEntries,
		log:     logging.Null(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("session").WithField("session", s.id.String()[:8])
	return s
}

func (s *Session) init(buf *buffer.Buffer) {
	s.buf = buf
	s.cursors = cursor.NewSetAt(0)
	histOpts := []history.Option{history.WithMaxEntries(s.maxUndo)}
	if s.archiver != nil {
		histOpts = append(histOpts, history.WithArchiver(s.archiver))
	}
	s.history = history.New(histOpts...)
	s.markSaved()
}

// ID returns the session's unique id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// ApplyIntent applies in at every cursor and records the result as one
// undo step. An intent that changes nothing returns a result with Changed
// false and records nothing.
func (s *Session) ApplyIntent(in EditIntent) (TransactionResult, error) {
	tx, err := intent.ApplyToAll(s.buf, s.cursors, in)
	if err != nil {
		s.log.Debug("intent %s rejected: %v", in.Description(), err)
		return s.unchanged(), err
	}
	if tx == nil {
		return s.unchanged(), nil
	}

	s.history.Record(tx)
	s.checkArchive()
	s.log.Debug("applied %s: %d edits, delta %d, revision %d",
		tx.Description, len(tx.Edits), tx.Delta(), s.buf.Revision())
	return s.result(tx), nil
}

// Undo reverts the last transaction and restores the cursors it started
// with. With nothing to undo it returns an error matching history.ErrEmpty
// and changes nothing.
func (s *Session) Undo() (TransactionResult, error) {
	tx, err := s.history.Undo(s.buf, s.cursors)
	s.checkArchive()
	if err != nil {
		if errors.Is(err, history.ErrEmpty) {
			s.log.Debug("undo: %v", err)
		} else {
			s.log.Error("undo: %v", err)
		}
		return s.unchanged(), err
	}
	s.log.Debug("undid %s, revision %d", tx.Description, s.buf.Revision())
	return s.result(tx), nil
}

// Redo reapplies the last undone transaction and restores the cursors it
// ended with. With nothing to redo it returns an error matching
// history.ErrEmpty and changes nothing.
func (s *Session) Redo() (TransactionResult, error) {
	tx, err := s.history.Redo(s.buf, s.cursors)
	s.checkArchive()
	if err != nil {
		if errors.Is(err, history.ErrEmpty) {
			s.log.Debug("redo: %v", err)
		} else {
			s.log.Error("redo: %v", err)
		}
		return s.unchanged(), err
	}
	s.log.Debug("redid %s, revision %d", tx.Description, s.buf.Revision())
	return s.result(tx), nil
}

// CanUndo reports whether Undo has anything to do.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo has anything to do.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// UndoInfo summarizes the undo stack, oldest first.
func (s *Session) UndoInfo() []history.Info {
	return s.history.UndoInfo()
}

// BeginGroup starts collecting transactions into a single undo step.
func (s *Session) BeginGroup(name string) {
	s.history.BeginGroup(name)
}

// EndGroup closes the open group. The result has Changed false when no
// group was open or nothing was recorded in it.
func (s *Session) EndGroup() TransactionResult {
	tx := s.history.EndGroup()
	s.checkArchive()
	if tx == nil {
		return s.unchanged()
	}
	return s.result(tx)
}

// checkArchive logs archiver failures. They never fail the edit that
// triggered them.
func (s *Session) checkArchive() {
	if err := s.history.Err(); err != nil {
		s.log.Warn("archiving history: %v", err)
	}
}

func (s *Session) result(tx *history.Transaction) TransactionResult {
	return TransactionResult{
		Changed:     true,
		ID:          tx.ID,
		Description: tx.Description,
		Edits:       len(tx.Edits),
		Delta:       tx.Delta(),
		Revision:    s.buf.Revision(),
		Cursors:     s.cursors.All(),
	}
}

func (s *Session) unchanged() TransactionResult {
	return TransactionResult{Revision: s.buf.Revision(), Cursors: s.cursors.All()}
}

// ============================================================================
// Read Operations
// ============================================================================

// Cursors returns a copy of the cursors in document order.
func (s *Session) Cursors() []Cursor {
	return s.cursors.All()
}

// PrimaryCursor returns the primary cursor.
func (s *Session) PrimaryCursor() Cursor {
	return s.cursors.Primary()
}

// DocumentSlice returns the text in r.
func (s *Session) DocumentSlice(r Range) (string, error) {
	return s.buf.Read(r)
}

// Text returns the full content. Prefer DocumentSlice or Snapshot for
// large documents.
func (s *Session) Text() string {
	return s.buf.Text()
}

// Len returns the document length in bytes.
func (s *Session) Len() ByteOffset {
	return s.buf.Len()
}

// LineCount returns the number of lines.
func (s *Session) LineCount() uint32 {
	return s.buf.LineCount()
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Session) OffsetToPoint(offset ByteOffset) Point {
	return s.buf.OffsetToPoint(offset)
}

// Revision returns the buffer revision, which changes with every edit.
func (s *Session) Revision() uint64 {
	return s.buf.Revision()
}

// LineEnding returns the terminator used when saving.
func (s *Session) LineEnding() buffer.LineEnding {
	return s.buf.LineEnding()
}

// Snapshot is an immutable view of a session, safe to hand to another
// goroutine.
type Snapshot struct {
	*buffer.Snapshot
	Cursors []Cursor
	Primary int
}

// Snapshot captures the document and cursors. It is O(1) in document size.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Snapshot: s.buf.Snapshot(),
		Cursors:  s.cursors.All(),
		Primary:  s.cursors.PrimaryIndex(),
	}
}
