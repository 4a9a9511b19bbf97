// Package intent turns user-level edits into buffer operations applied at
// every cursor.
//
// An EditIntent such as InsertText or DeleteBackward is resolved into one
// Target per cursor. ApplyToAll applies the targets from the highest offset
// down, shifting the remaining cursors after every edit, and returns the
// edits as a single history.Transaction:
//
//	tx, err := intent.ApplyToAll(buf, cursors, intent.InsertText{Text: "x"})
//	if err != nil {
//		return err
//	}
//	hist.Record(tx)
package intent
