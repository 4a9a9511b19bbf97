package intent

import (
	"fmt"
	"sort"

	"github.com/rut-editor/rut/internal/engine/buffer"
	"github.com/rut-editor/rut/internal/engine/cursor"
	"github.com/rut-editor/rut/internal/engine/history"
)

// ApplyToAll resolves in against the cursors and applies the resulting
// edits as one transaction.
//
// Targets are applied highest offset first. After each buffer edit every
// other cursor, and every target not yet applied, is shifted past it, so
// sibling cursors never point into stale text. A cursor that owns a target
// ends collapsed after the inserted text. The cursor set is then
// normalized, which merges cursors that now share a head.
//
// If any edit fails, the ones already applied are reverted, the cursors are
// left alone and the error is returned. When nothing changes ApplyToAll
// returns a nil transaction and a nil error.
func ApplyToAll(buf *buffer.Buffer, cursors *cursor.Set, in EditIntent) (*history.Transaction, error) {
	working := cursors.All()
	targets, err := in.Targets(buf, working)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Description(), err)
	}
	order := make([]int, len(targets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return targets[order[i]].Range.Start > targets[order[j]].Range.Start
	})

	tx := history.NewTransaction(in.Description(), cursors.State())

	apply := func(op buffer.EditOp, owner int) error {
		if op.IsNoOp() {
			return nil
		}
		res, err := buf.Apply(op)
		if err != nil {
			return err
		}
		tx.Add(res)
		for i := range working {
			if i != owner {
				working[i] = cursor.TransformCursor(working[i], res.Op)
			}
		}
		for i := range targets {
			targets[i].Range = transformRange(targets[i].Range, res.Op)
		}
		return nil
	}

	for n, idx := range order {
		t := targets[idx]
		if t.isNoOp() {
			continue
		}
		start := t.Range.Start
		err := apply(buffer.NewDelete(t.Range.Start, t.Range.End), t.Owner)
		if err == nil {
			err = apply(buffer.NewInsert(start, t.Text), t.Owner)
		}
		if err != nil {
			if rerr := tx.Revert(buf); rerr != nil {
				err = fmt.Errorf("%w (rollback: %v)", err, rerr)
			}
			return nil, fmt.Errorf("%s: target %d: %w", in.Description(), n, err)
		}
		if t.Owner != NoOwner {
			working[t.Owner] = cursor.At(start + buffer.ByteOffset(len(t.Text)))
		}
	}

	if tx.IsEmpty() {
		return nil, nil
	}
	cursors.Replace(working, cursors.PrimaryIndex())
	tx.CursorsAfter = cursors.State()
	return tx, nil
}

// transformRange shifts r past op the way a forward selection would move.
func transformRange(r Range, op buffer.EditOp) Range {
	c := cursor.TransformCursor(cursor.NewSelection(r.Start, r.End), op)
	return c.Range()
}
