// Package writer creates and pre-sizes raster files.
package writer

import (
	"fmt"
	"io"
	"os"
)

// FileWriter wraps an os.File opened for creating a raster file. It writes
// headers at absolute offsets and reserves the raster payload so later
// windowed writes land inside the file.
//
// Thread-safety: Not thread-safe. Caller must synchronize access.
type FileWriter struct {
	file *os.File
}

// CreateMode specifies the file creation behavior.
type CreateMode int

const (
	// ModeTruncate creates a new file, truncating if it exists.
	// Equivalent to os.Create() behavior.
	ModeTruncate CreateMode = iota

	// ModeExclusive creates a new file, fails if it exists.
	// Equivalent to os.O_CREATE | os.O_EXCL.
	ModeExclusive
)

// NewFileWriter creates a writer for a new file, opened for reading and
// writing.
func NewFileWriter(filename string, mode CreateMode) (*FileWriter, error) {
	var osFile *os.File
	var err error

	switch mode {
	case ModeTruncate:
		//nolint:gosec // G304: caller-provided raster path is intentional
		osFile, err = os.Create(filename)

	case ModeExclusive:
		//nolint:gosec // G304: caller-provided raster path is intentional
		osFile, err = os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)

	default:
		return nil, fmt.Errorf("invalid create mode: %d", mode)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return &FileWriter{file: osFile}, nil
}

// WriteAt writes data at a specific offset in the file.
// Implements io.WriterAt interface.
func (w *FileWriter) WriteAt(data []byte, offset int64) (int, error) {
	if w.file == nil {
		return 0, fmt.Errorf("writer is closed")
	}

	if len(data) == 0 {
		return 0, nil // Nothing to write
	}

	n, err := w.file.WriteAt(data, offset)
	if err != nil {
		return n, fmt.Errorf("write at offset %d failed: %w", offset, err)
	}

	if n != len(data) {
		return n, fmt.Errorf("incomplete write at offset %d: wrote %d of %d bytes", offset, n, len(data))
	}

	return n, nil
}

// ReadAt reads data at a specific offset.
// Implements io.ReaderAt interface for compatibility.
func (w *FileWriter) ReadAt(buf []byte, off int64) (int, error) {
	if w.file == nil {
		return 0, fmt.Errorf("writer is closed")
	}

	return w.file.ReadAt(buf, off)
}

// Reserve grows the file to at least size bytes. The new region reads as
// zeros. A file already that large is left untouched.
func (w *FileWriter) Reserve(size int64) error {
	if w.file == nil {
		return fmt.Errorf("writer is closed")
	}

	cur, err := w.Size()
	if err != nil {
		return err
	}
	if cur >= size {
		return nil
	}

	if err := w.file.Truncate(size); err != nil {
		return fmt.Errorf("reserve %d bytes failed: %w", size, err)
	}
	return nil
}

// Size returns the current file size.
func (w *FileWriter) Size() (int64, error) {
	if w.file == nil {
		return 0, fmt.Errorf("writer is closed")
	}

	fi, err := w.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat failed: %w", err)
	}
	return fi.Size(), nil
}

// Flush ensures all writes are committed to disk.
// This should be called before closing or when data durability is required.
func (w *FileWriter) Flush() error {
	if w.file == nil {
		return fmt.Errorf("writer is closed")
	}

	return w.file.Sync()
}

// Close closes the underlying file.
// This does NOT automatically flush - call Flush() first if needed.
// After Close(), the writer cannot be used.
func (w *FileWriter) Close() error {
	if w.file == nil {
		return nil // Already closed
	}

	err := w.file.Close()
	w.file = nil
	return err
}

// Name returns the path the writer was created with.
func (w *FileWriter) Name() string {
	if w.file == nil {
		return ""
	}
	return w.file.Name()
}

// Ensure FileWriter implements io.ReaderAt and io.WriterAt
var (
	_ io.ReaderAt = (*FileWriter)(nil)
	_ io.WriterAt = (*FileWriter)(nil)
)
