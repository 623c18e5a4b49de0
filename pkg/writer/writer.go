package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer delivers a generated agreement to its destination.
type Writer interface {
	// WriteDoc writes the full agreement text.
	WriteDoc(doc string) error

	// Destination describes where documents go, for logging.
	Destination() string
}

// StreamWriter writes documents to an io.Writer, one per call.
type StreamWriter struct {
	out       io.Writer
	separator string
	written   int
}

// NewStream returns a StreamWriter. When separator is non-empty it is written
// between consecutive documents.
func NewStream(out io.Writer, separator string) *StreamWriter {
	return &StreamWriter{out: out, separator: separator}
}

func (w *StreamWriter) WriteDoc(doc string) error {
	if w.written > 0 && w.separator != "" {
		if _, err := fmt.Fprintln(w.out, w.separator); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w.out, doc); err != nil {
		return err
	}
	w.written++
	return nil
}

func (w *StreamWriter) Destination() string {
	return "stdout"
}

// FileWriter writes each document to a file, replacing the previous one.
type FileWriter struct {
	path string
}

// NewFile creates a FileWriter for path.
func NewFile(path string) *FileWriter {
	return &FileWriter{path: path}
}

// WriteDoc writes to a temp file in the same directory and renames it over
// the target so readers never see a partial agreement.
func (w *FileWriter) WriteDoc(doc string) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ndagen-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(doc + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	return nil
}

func (w *FileWriter) Destination() string {
	return w.path
}

// For returns a FileWriter when path is set and a StreamWriter on out otherwise.
func For(path string, out io.Writer, separator string) Writer {
	if path != "" {
		return NewFile(path)
	}
	return NewStream(out, separator)
}
