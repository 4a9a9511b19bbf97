package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rut-editor/rut/internal/engine/buffer"
)

// NewFromReader creates a session from the text in r.
func NewFromReader(r io.Reader, opts ...Option) (*Session, error) {
	s := configure(opts)
	buf, err := buffer.NewBufferFromReader(r, s.bufOpts...)
	if err != nil {
		return nil, err
	}
	s.init(buf)
	return s, nil
}

// Open creates a session for the file at path. A file that does not exist
// yet opens as an empty document and is created by Save.
func Open(path string, opts ...Option) (*Session, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := New(opts...)
		s.path = path
		s.log.Info("new file %s", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	s, err := NewFromReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s.path = path
	s.log.Info("opened %s: %d bytes, %d lines, %s", path, s.buf.Len(), s.buf.LineCount(), s.buf.LineEnding())
	return s, nil
}

// Path returns the file the session saves to, or "".
func (s *Session) Path() string {
	return s.path
}

// Save writes the document to its file. It returns ErrNoPath if the
// session was not opened from a file and SaveAs was never called.
func (s *Session) Save() error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.SaveAs(s.path)
}

// SaveAs writes the document to path and makes path the session's file.
// The file is replaced atomically.
func (s *Session) SaveAs(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tmp.Name()

	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	w := bufio.NewWriter(tmp)
	n, err := s.buf.WriteTo(w)
	if err == nil {
		err = tmp.Chmod(mode)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		// Clean up temp file on failure
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.path = path
	s.markSaved()
	s.log.Info("saved %s: %d bytes", path, n)
	return nil
}

// WriteTo writes the document with the configured line ending.
func (s *Session) WriteTo(w io.Writer) (int64, error) {
	return s.buf.WriteTo(w)
}

// Modified reports whether the document differs from what was last loaded
// or saved. Edits that were undone back to the saved text do not count.
func (s *Session) Modified() bool {
	if s.buf.Revision() == s.savedRevision {
		return false
	}
	return s.buf.Checksum() != s.savedSum
}

func (s *Session) markSaved() {
	s.savedRevision = s.buf.Revision()
	s.savedSum = s.buf.Checksum()
}
