package bip

import (
	"errors"
	"fmt"

	"github.com/scigolib/bip/internal/backend"
	"github.com/scigolib/bip/internal/compose"
	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/symmetry"
	"github.com/scigolib/bip/internal/window"
)

// Writer stores blocks into an existing BIP raster.
//
// Thread-safety: Not thread-safe. Caller must synchronize access.
type Writer struct {
	name     string
	desc     Descriptor
	layout   backend.Layout
	sym      symmetry.Symmetry
	composer *compose.Composer
	backend  backend.Backend
}

// OpenWriter opens name for writing. The file must exist; use Create to
// make one. A mapped writer extends a short file to the full raster size.
func OpenWriter(name string, desc Descriptor) (*Writer, error) {
	desc = desc.withDefaults()
	comp, l, err := desc.prepare(compose.Writing)
	if err != nil {
		return nil, constructionError(name, err)
	}

	end, _ := l.End()
	if err := checkFile(name, end, true); err != nil {
		return nil, constructionError(name, err)
	}

	be, err := openBackend(name, l, true, desc.Backend)
	if err != nil {
		return nil, constructionError(name, err)
	}

	return &Writer{
		name:     name,
		desc:     desc,
		layout:   l,
		sym:      desc.Symmetry,
		composer: comp,
		backend:  be,
	}, nil
}

// Shape returns the logical (rows, cols).
func (w *Writer) Shape() (rows, cols int64) {
	return w.desc.LogicalShape()
}

// Backend reports the storage strategy in use.
func (w *Writer) Backend() BackendKind {
	if w.backend == nil {
		return BackendAuto
	}
	return w.backend.Kind()
}

// Write stores a with its top-left pixel at logical (row0, col0). The
// block must lie inside the raster (ErrRange) and match the declared type
// and bands after decomposition (ErrTypeMismatch). A rejected write
// leaves the file untouched.
func (w *Writer) Write(a *Array, row0, col0 int64) error {
	if w.backend == nil {
		return ErrClosed
	}
	if err := a.Validate(); err != nil {
		return err
	}

	lr, lc := w.Shape()
	if row0 < 0 || col0 < 0 || row0 > lr || col0 > lc {
		return fmt.Errorf("%w: start (%d, %d) outside raster (%d, %d)", ErrRange, row0, col0, lr, lc)
	}
	if _, err := window.Contiguous(row0, int64(a.Rows), lr); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	if _, err := window.Contiguous(col0, int64(a.Cols), lc); err != nil {
		return fmt.Errorf("cols: %w", err)
	}

	raw, err := w.composer.Decompose(a)
	if err != nil {
		return err
	}
	if raw.Rows == 0 || raw.Cols == 0 {
		return nil
	}
	g, err := core.EncodeArray(raw, w.desc.Type)
	if err != nil {
		return err
	}

	rg, r0, c0 := w.sym.ToRaw(g, row0, col0, w.layout.Rows, w.layout.Cols)
	return w.backend.WriteWindow(r0, c0, rg)
}

// Close flushes and releases the backend. It is safe to call Close
// multiple times.
func (w *Writer) Close() error {
	if w.backend == nil {
		return nil // Already closed.
	}
	err := w.backend.Close()
	w.backend = nil
	return err
}

// WithWriter opens a writer, runs fn and always closes the writer. If fn
// fails, an error is logged warning that the file may be partially
// generated, and the returned error matches both ErrPartialOutput and the
// cause.
func WithWriter(name string, desc Descriptor, fn func(*Writer) error) (err error) {
	w, err := OpenWriter(name, desc)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("The BIP writer for ", name, " panicked. The file may be only partially generated and corrupt: ", r)
			_ = w.Close()
			panic(r)
		}

		closeErr := w.Close()
		if err != nil {
			logger.Error("The BIP writer for ", name, " failed. The file may be only partially generated and corrupt: ", err)
			err = fmt.Errorf("%w: %s: %w", ErrPartialOutput, name, errors.Join(err, closeErr))
			return
		}
		err = closeErr
	}()

	return fn(w)
}
