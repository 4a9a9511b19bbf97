package history

import (
	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/cursor"
)

// DefaultMaxEntries is the undo capacity when none is configured.
const DefaultMaxEntries = 1000

// History keeps the undo and redo stacks for one document.
// It is not safe for concurrent use.
type History struct {
	undoStack []*Transaction
	redoStack []*Transaction

	// Grouping state
	grouping  bool
	groupName string
	groupTxs  []*Transaction

	maxEntries int
	archiver   Archiver
	err        error
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries caps the undo stack. Non-positive values select
// DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n <= 0 {
			n = DefaultMaxEntries
		}
		h.maxEntries = n
	}
}

// WithArchiver hands every dropped transaction to a.
func WithArchiver(a Archiver) Option {
	return func(h *History) {
		h.archiver = a
	}
}

// New returns an empty history.
func New(opts ...Option) *History {
	h := &History{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record pushes tx onto the undo stack and clears the redo stack. Empty
// transactions are ignored. While a group is open, tx is held until
// EndGroup.
func (h *History) Record(tx *Transaction) {
	if tx == nil || tx.IsEmpty() {
		return
	}
	if h.grouping {
		h.groupTxs = append(h.groupTxs, tx)
		return
	}
	h.push(tx)
}

func (h *History) push(tx *Transaction) {
	for i := len(h.redoStack) - 1; i >= 0; i-- {
		h.archive(h.redoStack[i], ReasonTruncated)
	}
	h.redoStack = nil

	h.undoStack = append(h.undoStack, tx)
	h.evict()
}

func (h *History) evict() {
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		for _, old := range h.undoStack[:excess] {
			h.archive(old, ReasonEvicted)
		}
		h.undoStack = append([]*Transaction(nil), h.undoStack[excess:]...)
	}
}

func (h *History) archive(tx *Transaction, reason Reason) {
	if h.archiver == nil {
		return
	}
	if err := h.archiver.Archive(tx, reason); err != nil && h.err == nil {
		h.err = err
	}
}

// Err returns the first archiver error since the previous call and clears
// it. Archiver failures never block recording.
func (h *History) Err() error {
	err := h.err
	h.err = nil
	return err
}

// Undo reverts the most recent transaction and restores the cursors it
// started from. An open group is closed first. With nothing to undo it
// returns ErrNothingToUndo and changes nothing.
func (h *History) Undo(buf *buffer.Buffer, cursors *cursor.Set) (*Transaction, error) {
	h.EndGroup()

	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	tx := h.undoStack[len(h.undoStack)-1]
	if err := tx.Revert(buf); err != nil {
		return nil, err
	}

	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, tx)
	cursors.Restore(tx.CursorsBefore)
	return tx, nil
}

// Redo reapplies the most recently undone transaction and restores the
// cursors it ended with. With nothing to redo it returns ErrNothingToRedo
// and changes nothing.
func (h *History) Redo(buf *buffer.Buffer, cursors *cursor.Set) (*Transaction, error) {
	h.EndGroup()

	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	tx := h.redoStack[len(h.redoStack)-1]
	if err := tx.Reapply(buf); err != nil {
		return nil, err
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, tx)
	cursors.Restore(tx.CursorsAfter)
	return tx, nil
}

// CanUndo reports whether Undo has anything to do.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the undo stack depth.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the redo stack depth.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// UndoInfo summarizes the undo stack, oldest first.
func (h *History) UndoInfo() []Info {
	return infos(h.undoStack)
}

// RedoInfo summarizes the redo stack, oldest undone last.
func (h *History) RedoInfo() []Info {
	return infos(h.redoStack)
}

func infos(txs []*Transaction) []Info {
	out := make([]Info, len(txs))
	for i, tx := range txs {
		out[i] = tx.Info()
	}
	return out
}

// PeekUndo returns the next transaction Undo would revert.
func (h *History) PeekUndo() (*Transaction, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// Clear drops both stacks and any open group without archiving.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupTxs = nil
}

// SetMaxEntries changes the capacity, evicting the oldest entries if the
// stack is now too deep.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	h.maxEntries = n
	h.evict()
}

// MaxEntries returns the undo capacity.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
