// Package buffer stores the document text and applies position-addressed
// edit operations to it.
//
// A Buffer wraps an immutable rope. Every change goes through Apply, which
// takes an EditOp (an insert or a delete), validates it against the current
// length and returns an AppliedEdit carrying the inverse operation and the
// offset delta:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	res, err := buf.Apply(buffer.NewInsert(7, "Beautiful "))
//	// buf.Text() == "Hello, Beautiful World!"
//	_, err = buf.Apply(res.Inverse)
//	// buf.Text() == "Hello, World!"
//
// Invalid offsets fail with an *EditError that matches ErrOutOfBounds and
// leave the document untouched.
//
// Position types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column (0-indexed, column in bytes)
//   - Range: half-open byte range [Start, End)
//
// Text is held with LF line endings. NewBufferFromReader normalizes CRLF and
// CR on load and WriteTo expands LF back into the configured LineEnding.
//
// A Buffer is not safe for concurrent use. Snapshot returns a read-only view
// that can be handed to other goroutines.
package buffer
