package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/cursor"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Transaction is one undo step: the edits an intent produced, in the order
// they were applied, and the cursors on either side.
type Transaction struct {
	ID          uuid.UUID `yaml:"id"`
	Description string    `yaml:"description"`
	Timestamp   time.Time `yaml:"timestamp"`

	Edits []buffer.AppliedEdit `yaml:"edits"`

	CursorsBefore cursor.State `yaml:"cursors_before"`
	CursorsAfter  cursor.State `yaml:"cursors_after"`
}

// NewTransaction starts an empty transaction.
func NewTransaction(description string, before cursor.State) *Transaction {
	return &Transaction{
		ID:            uuid.New(),
		Description:   description,
		Timestamp:     time.Now(),
		CursorsBefore: before,
		CursorsAfter:  before,
	}
}

// Add appends an applied edit.
func (t *Transaction) Add(e buffer.AppliedEdit) {
	t.Edits = append(t.Edits, e)
}

// IsEmpty reports whether the transaction changed nothing.
func (t *Transaction) IsEmpty() bool {
	for _, e := range t.Edits {
		if !e.Op.IsNoOp() {
			return false
		}
	}
	return true
}

// Delta returns the total change in document length.
func (t *Transaction) Delta() ByteOffset {
	var d ByteOffset
	for _, e := range t.Edits {
		d += e.Delta
	}
	return d
}

// Revert applies the inverse of every edit in reverse order. On failure
// the edits already reverted are reapplied and the error is returned.
func (t *Transaction) Revert(buf *buffer.Buffer) error {
	ops := make([]buffer.EditOp, len(t.Edits))
	for i, e := range t.Edits {
		ops[len(ops)-1-i] = e.Inverse
	}
	if err := applyAll(buf, ops); err != nil {
		return fmt.Errorf("revert %s: %w", t.ID, err)
	}
	return nil
}

// Reapply applies every edit again in its original order. On failure the
// edits already reapplied are reverted and the error is returned.
func (t *Transaction) Reapply(buf *buffer.Buffer) error {
	ops := make([]buffer.EditOp, len(t.Edits))
	for i, e := range t.Edits {
		ops[i] = e.Op
	}
	if err := applyAll(buf, ops); err != nil {
		return fmt.Errorf("reapply %s: %w", t.ID, err)
	}
	return nil
}

// applyAll applies ops in order, or none of them.
func applyAll(buf *buffer.Buffer, ops []buffer.EditOp) error {
	done := make([]buffer.AppliedEdit, 0, len(ops))
	for _, op := range ops {
		res, err := buf.Apply(op)
		if err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				_, _ = buf.Apply(done[i].Inverse)
			}
			return err
		}
		done = append(done, res)
	}
	return nil
}

// Merge combines txs, oldest first, into one transaction that undoes as a
// unit. It returns nil when txs is empty.
func Merge(description string, txs []*Transaction) *Transaction {
	if len(txs) == 0 {
		return nil
	}
	merged := NewTransaction(description, txs[0].CursorsBefore)
	merged.Timestamp = txs[0].Timestamp
	for _, tx := range txs {
		merged.Edits = append(merged.Edits, tx.Edits...)
	}
	merged.CursorsAfter = txs[len(txs)-1].CursorsAfter
	return merged
}

// Info is a read-only summary of a transaction.
type Info struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time
	Edits       int
	Delta       ByteOffset
}

// Info summarizes the transaction.
func (t *Transaction) Info() Info {
	return Info{
		ID:          t.ID,
		Description: t.Description,
		Timestamp:   t.Timestamp,
		Edits:       len(t.Edits),
		Delta:       t.Delta(),
	}
}
