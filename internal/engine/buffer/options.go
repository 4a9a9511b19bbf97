package buffer

// Option configures a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the terminator used by WriteTo.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
		b.detect = false
	}
}

// WithDetectedLineEnding makes NewBufferFromReader and NewBufferFromString
// pick the terminator from the loaded text.
func WithDetectedLineEnding() Option {
	return func(b *Buffer) {
		b.detect = true
	}
}

// WithTabWidth sets the tab width. Non-positive widths are ignored.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}
