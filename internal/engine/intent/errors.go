package intent

import "errors"

// ErrOverlappingRanges is returned by Replace when two of its ranges share
// a byte.
var ErrOverlappingRanges = errors.New("overlapping ranges")
