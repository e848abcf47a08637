// Package backend implements the two storage strategies behind a BIP
// chipper or writer: a memory-mapped view of the file and explicit
// seek/read/write on a file handle. Both operate on raw-orientation,
// already validated windows and produce byte grids.
package backend

import (
	"fmt"

	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/utils"
	"github.com/scigolib/bip/internal/window"
)

// Kind names a storage strategy.
type Kind int

// Storage strategies.
const (
	KindAuto Kind = iota
	KindMapped
	KindManual
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindMapped:
		return "mapped"
	case KindManual:
		return "manual"
	default:
		return fmt.Sprintf("backend(%d)", int(k))
	}
}

// Backend reads and writes rectangular raw windows.
//
// Thread-safety: Not thread-safe. Caller must synchronize access.
type Backend interface {
	// ReadWindow copies the selected raw pixels, in the ranges' traversal
	// order, into a new grid.
	ReadWindow(rows, cols window.Range) (*core.Grid, error)
	// WriteWindow stores g with its top-left pixel at raw (row0, col0).
	WriteWindow(row0, col0 int64, g *core.Grid) error
	Kind() Kind
	// Close releases the handle. It is safe to call Close multiple times.
	Close() error
}

// Layout describes where the raw raster lives in the file.
type Layout struct {
	Offset   int64 // byte offset of the first sample
	Rows     int64 // raw axis 1 length
	Cols     int64 // raw axis 2 length, the per-row extent
	ElemSize int64 // bytes per pixel: type size * band count
}

// RowStride returns the byte distance between consecutive raw rows.
func (l Layout) RowStride() int64 {
	return l.ElemSize * l.Cols
}

// Size returns the raster payload size in bytes.
func (l Layout) Size() (int64, error) {
	return utils.RasterBytes(l.Rows, l.Cols, l.ElemSize)
}

// End returns the file offset one past the last raster byte.
func (l Layout) End() (int64, error) {
	size, err := l.Size()
	if err != nil {
		return 0, err
	}
	return utils.SafeAdd(l.Offset, size)
}

// Validate checks the layout is non-negative and addressable.
func (l Layout) Validate() error {
	if l.Offset < 0 {
		return fmt.Errorf("negative data offset %d", l.Offset)
	}
	if l.Rows < 0 || l.Cols < 0 {
		return fmt.Errorf("negative raw shape (%d, %d)", l.Rows, l.Cols)
	}
	if l.ElemSize < 1 {
		return fmt.Errorf("invalid element size %d", l.ElemSize)
	}
	_, err := l.End()
	return err
}

// pixelOffset returns the byte offset of raw pixel (r, c) relative to the
// first sample.
func (l Layout) pixelOffset(r, c int64) int64 {
	return r*l.RowStride() + c*l.ElemSize
}

// checkWrite validates a write block against the raw extent.
func (l Layout) checkWrite(row0, col0 int64, g *core.Grid) error {
	if int64(g.ElemSize) != l.ElemSize {
		return fmt.Errorf("%w: block element is %d bytes, raster element is %d",
			core.ErrTypeMismatch, g.ElemSize, l.ElemSize)
	}
	if row0 < 0 || col0 < 0 || row0+int64(g.Rows) > l.Rows || col0+int64(g.Cols) > l.Cols {
		return fmt.Errorf("%w: block %dx%d at (%d, %d) exceeds raw shape (%d, %d)",
			core.ErrRange, g.Rows, g.Cols, row0, col0, l.Rows, l.Cols)
	}
	return nil
}

// checkRead validates resolved ranges against the raw extent.
func (l Layout) checkRead(rows, cols window.Range) error {
	if rows.Count > 0 && (rows.Min() < 0 || rows.Min()+rows.Span() > l.Rows) {
		return fmt.Errorf("%w: raw rows %d..%d outside [0, %d)", core.ErrRange, rows.Start, rows.Last(), l.Rows)
	}
	if cols.Count > 0 && (cols.Min() < 0 || cols.Min()+cols.Span() > l.Cols) {
		return fmt.Errorf("%w: raw cols %d..%d outside [0, %d)", core.ErrRange, cols.Start, cols.Last(), l.Cols)
	}
	return nil
}
