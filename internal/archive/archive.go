// Package archive keeps transactions that fall out of undo history.
//
// An archive file is a sequence of xz streams, each holding YAML documents,
// one Record per document. Every Writer appends a new stream, so an archive
// grows across sessions and can always be read back in full.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"

	"github.com/rut-editor/rut/internal/engine/history"
)

// Record is one archived transaction.
type Record struct {
	Document    string               `yaml:"document,omitempty"`
	Reason      history.Reason       `yaml:"reason"`
	ArchivedAt  time.Time            `yaml:"archived_at"`
	Transaction *history.Transaction `yaml:"transaction"`
}

// Writer implements history.Archiver. It is not safe for concurrent use.
type Writer struct {
	xw       *xz.Writer
	file     *os.File
	document string
	count    int
	closed   bool
}

// ErrClosed is returned by Archive after Close.
var ErrClosed = errors.New("archive closed")

// NewWriter starts a compressed stream on w. Records are tagged with
// document, which may be empty.
func NewWriter(w io.Writer, document string) (*Writer, error) {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	return &Writer{xw: xw, document: document}, nil
}

// Open appends a new stream to the archive file at path, creating it if
// needed.
func Open(path, document string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	w, err := NewWriter(f, document)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// Archive writes tx as one YAML document.
func (w *Writer) Archive(tx *history.Transaction, reason history.Reason) error {
	if w.closed {
		return ErrClosed
	}
	data, err := yaml.Marshal(Record{
		Document:    w.document,
		Reason:      reason,
		ArchivedAt:  time.Now(),
		Transaction: tx,
	})
	if err != nil {
		return fmt.Errorf("encoding transaction %s: %w", tx.ID, err)
	}
	// Each record carries its own separator so streams from separate
	// writers concatenate into valid YAML.
	if _, err := io.WriteString(w.xw, "---\n"); err != nil {
		return err
	}
	if _, err := w.xw.Write(data); err != nil {
		return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
	}
	w.count++
	return nil
}

// Count returns how many records this writer has written.
func (w *Writer) Count() int {
	return w.count
}

// Close finishes the xz stream and closes the file opened by Open.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.xw.Close()
	if w.file != nil {
		err = errors.Join(err, w.file.Close())
	}
	return err
}

// Read decodes every record in r.
func Read(r io.Reader) ([]Record, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	data, err := io.ReadAll(xr)
	if err != nil {
		return nil, fmt.Errorf("decompressing archive: %w", err)
	}

	var records []Record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("decoding record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
}

// ReadFile decodes every record in the archive file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
