// Package rope provides an immutable, height-balanced rope for text storage.
//
// Text lives in bounded leaf strings. Branch nodes cache the byte length and
// newline count of their subtree, so offset lookup, line lookup, insertion and
// deletion all walk a single root-to-leaf path: O(log n) in the document size.
//
// Every operation returns a new Rope and shares untouched subtrees with the
// original, which makes snapshots free:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")  // "hello, world"
//	r = r.Delete(0, 7)    // "world"
//	text := r.String()    // "world"
//
// A Rope value is safe to read from several goroutines at once.
package rope
