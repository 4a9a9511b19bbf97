package history

import "fmt"

// Reason says why a transaction left the history.
type Reason uint8

const (
	// ReasonEvicted: the undo stack grew past its capacity.
	ReasonEvicted Reason = iota
	// ReasonTruncated: a new transaction was recorded after undo and
	// cleared the redo stack.
	ReasonTruncated
)

func (r Reason) String() string {
	switch r {
	case ReasonEvicted:
		return "evicted"
	case ReasonTruncated:
		return "truncated"
	}
	return "unknown"
}

// MarshalText encodes the reason by name.
func (r Reason) MarshalText() ([]byte, error) {
	if r > ReasonTruncated {
		return nil, fmt.Errorf("unknown reason %d", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a reason written by MarshalText.
func (r *Reason) UnmarshalText(text []byte) error {
	switch string(text) {
	case "evicted":
		*r = ReasonEvicted
	case "truncated":
		*r = ReasonTruncated
	default:
		return fmt.Errorf("unknown reason %q", text)
	}
	return nil
}

// Archiver receives transactions as they are dropped from history.
type Archiver interface {
	Archive(tx *Transaction, reason Reason) error
}

// ArchiverFunc adapts a function to Archiver.
type ArchiverFunc func(tx *Transaction, reason Reason) error

// Archive calls f.
func (f ArchiverFunc) Archive(tx *Transaction, reason Reason) error {
	return f(tx, reason)
}
