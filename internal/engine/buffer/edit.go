package buffer

import "fmt"

// OpKind tags an EditOp.
type OpKind uint8

const (
	OpInsert OpKind = iota // insert Text at Range.Start
	OpDelete               // delete Range
)

// String returns "insert" or "delete".
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k OpKind) MarshalText() ([]byte, error) {
	if k > OpDelete {
		return nil, fmt.Errorf("unknown op kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *OpKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "insert":
		*k = OpInsert
	case "delete":
		*k = OpDelete
	default:
		return fmt.Errorf("unknown op kind %q", text)
	}
	return nil
}

// EditOp is a primitive document mutation.
//
// For OpInsert only Range.Start is meaningful. For OpDelete, Text is empty
// until the op has been applied; the inverse of a delete is an insert of the
// removed text.
type EditOp struct {
	Kind  OpKind `yaml:"kind"`
	Range Range  `yaml:"range"`
	Text  string `yaml:"text,omitempty"`
}

// NewInsert returns an op inserting text at offset.
func NewInsert(offset ByteOffset, text string) EditOp {
	return EditOp{Kind: OpInsert, Range: Range{Start: offset, End: offset}, Text: text}
}

// NewDelete returns an op deleting [start, end).
func NewDelete(start, end ByteOffset) EditOp {
	return EditOp{Kind: OpDelete, Range: Range{Start: start, End: end}}
}

// Offset returns the position the op acts on.
func (op EditOp) Offset() ByteOffset {
	return op.Range.Start
}

// Delta returns the change in document length the op causes.
func (op EditOp) Delta() ByteOffset {
	if op.Kind == OpInsert {
		return ByteOffset(len(op.Text))
	}
	return -op.Range.Len()
}

// IsNoOp reports whether applying the op leaves the document unchanged.
func (op EditOp) IsNoOp() bool {
	if op.Kind == OpInsert {
		return op.Text == ""
	}
	return op.Range.IsEmpty()
}

func (op EditOp) String() string {
	if op.Kind == OpInsert {
		return fmt.Sprintf("Insert(%d, %q)", op.Range.Start, op.Text)
	}
	return fmt.Sprintf("Delete%s", op.Range)
}

// AppliedEdit is the record of an op that has been applied.
type AppliedEdit struct {
	// Op is the op as applied. For deletes, Op.Text holds the removed text.
	Op EditOp `yaml:"op"`

	// Inverse restores the document to its state before Op.
	Inverse EditOp `yaml:"inverse"`

	// Delta is the change in document length.
	Delta ByteOffset `yaml:"delta"`
}

// Invert returns the applied edit that undoes e.
func (e AppliedEdit) Invert() AppliedEdit {
	return AppliedEdit{Op: e.Inverse, Inverse: e.Op, Delta: -e.Delta}
}
