// Package bip reads and writes band-interleaved-by-pixel (BIP) rasters.
//
// A BIP file stores a 2-D grid of pixels row-major with all bands of one
// pixel adjacent, starting at a byte offset. A Chipper extracts rectangular,
// optionally stepped or reversed windows from such a file; a Writer stores
// blocks into one. Both present the raster in a logical orientation that may
// differ from the on-disk one by flips and a transpose, and may compose
// adjacent raw bands into complex samples.
//
// Storage is memory mapped when possible, with a transparent fallback to
// explicit seek-based I/O that yields identical results.
package bip

import (
	"fmt"

	"github.com/scigolib/bip/internal/backend"
	"github.com/scigolib/bip/internal/compose"
	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/symmetry"
	"github.com/scigolib/bip/internal/window"
)

// Chipper reads windows from a BIP raster.
//
// Thread-safety: Not thread-safe. Caller must synchronize access.
type Chipper struct {
	name     string
	desc     Descriptor
	layout   backend.Layout
	sym      symmetry.Symmetry
	composer *compose.Composer
	backend  backend.Backend
}

// Open validates desc against the file and selects a storage backend.
// Every failure matches ErrConstruction; incompatible complex settings also
// match ErrConfig.
func Open(name string, desc Descriptor) (*Chipper, error) {
	desc = desc.withDefaults()
	comp, l, err := desc.prepare(compose.Reading)
	if err != nil {
		return nil, constructionError(name, err)
	}

	end, _ := l.End()
	if err := checkFile(name, end, false); err != nil {
		return nil, constructionError(name, err)
	}

	be, err := openBackend(name, l, false, desc.Backend)
	if err != nil {
		return nil, constructionError(name, err)
	}

	return &Chipper{
		name:     name,
		desc:     desc,
		layout:   l,
		sym:      desc.Symmetry,
		composer: comp,
		backend:  be,
	}, nil
}

// Shape returns the logical (rows, cols).
func (c *Chipper) Shape() (rows, cols int64) {
	return c.desc.LogicalShape()
}

// Bands returns the number of bands per pixel in returned arrays.
func (c *Chipper) Bands() int {
	return c.desc.Bands
}

// Descriptor returns the layout the chipper was opened with.
func (c *Chipper) Descriptor() Descriptor {
	return c.desc
}

// Backend reports the storage strategy in use.
func (c *Chipper) Backend() BackendKind {
	if c.backend == nil {
		return BackendAuto
	}
	return c.backend.Kind()
}

// Read returns the logical window selected by rows and cols as a
// (count(rows), count(cols), bands) array. A window touching any index
// outside the raster fails with ErrRange and reads nothing.
func (c *Chipper) Read(rows, cols AxisRange) (*Array, error) {
	if c.backend == nil {
		return nil, ErrClosed
	}

	lr, lc := c.Shape()
	rr, err := window.Normalize(rows, lr)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	cr, err := window.Normalize(cols, lc)
	if err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}

	rawRows, rawCols := c.sym.RawWindow(rr, cr)
	g, err := c.backend.ReadWindow(rawRows, rawCols)
	if err != nil {
		return nil, err
	}
	g = c.sym.ToLogical(g)

	raw, err := core.DecodeGrid(g, c.desc.Type, c.composer.RawBands())
	if err != nil {
		return nil, err
	}
	return c.composer.Compose(raw)
}

// ReadAll returns the whole raster in logical orientation.
func (c *Chipper) ReadAll() (*Array, error) {
	return c.Read(All(), All())
}

// Close releases the backend. It is safe to call Close multiple times.
func (c *Chipper) Close() error {
	if c.backend == nil {
		return nil // Already closed.
	}
	err := c.backend.Close()
	c.backend = nil
	return err
}
