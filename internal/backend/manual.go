package backend

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/utils"
	"github.com/scigolib/bip/internal/window"
)

// Manual serves windows through explicit seeks on a file handle. Reads
// fetch one contiguous run per row covering the whole requested column
// span and subsample it in memory, trading extra bytes for fewer seeks.
type Manual struct {
	layout   Layout
	file     *os.File
	writable bool
}

// OpenManual opens name for seek-based access.
func OpenManual(name string, l Layout, writable bool) (*Manual, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	//nolint:gosec // G304: caller-provided raster path is intentional
	f, err := os.OpenFile(name, flag, 0)
	if err != nil {
		return nil, utils.WrapError("open raster file", err)
	}
	return &Manual{layout: l, file: f, writable: writable}, nil
}

// Kind implements Backend.
func (m *Manual) Kind() Kind {
	return KindManual
}

// ReadWindow implements Backend.
func (m *Manual) ReadWindow(rows, cols window.Range) (*core.Grid, error) {
	if m.file == nil {
		return nil, core.ErrClosed
	}
	if err := m.layout.checkRead(rows, cols); err != nil {
		return nil, err
	}

	es := m.layout.ElemSize
	g := core.NewGrid(int(rows.Count), int(cols.Count), int(es))
	if rows.Count == 0 || cols.Count == 0 {
		return g, nil
	}

	first := cols.Min()
	run := utils.GetBuffer(int(cols.Span() * es))
	defer utils.ReleaseBuffer(run)

	for i := int64(0); i < rows.Count; i++ {
		row := rows.Index(i)
		pos := m.layout.Offset + m.layout.pixelOffset(row, first)
		if _, err := m.file.Seek(pos, io.SeekStart); err != nil {
			return nil, utils.WrapError(fmt.Sprintf("seek to row %d", row), err)
		}
		if _, err := io.ReadFull(m.file, run); err != nil {
			return nil, utils.WrapError(fmt.Sprintf("read row %d", row), err)
		}

		dst := g.Row(int(i))
		if cols.Step == 1 {
			copy(dst, run)
			continue
		}
		// Apply the column step and any reversal to the contiguous run.
		for j := int64(0); j < cols.Count; j++ {
			src := (cols.Index(j) - first) * es
			copy(dst[j*es:(j+1)*es], run[src:src+es])
		}
	}
	return g, nil
}

// WriteWindow implements Backend. A block spanning every raw column is
// written in one operation; otherwise rows are written one by one with a
// forward seek over the untouched columns between them. No seek is issued
// after the final row.
func (m *Manual) WriteWindow(row0, col0 int64, g *core.Grid) error {
	if m.file == nil {
		return core.ErrClosed
	}
	if !m.writable {
		return errors.New("file is opened read-only")
	}
	if err := m.layout.checkWrite(row0, col0, g); err != nil {
		return err
	}
	if g.Rows == 0 || g.Cols == 0 {
		return nil
	}

	pos := m.layout.Offset + m.layout.pixelOffset(row0, col0)
	if _, err := m.file.Seek(pos, io.SeekStart); err != nil {
		return utils.WrapError(fmt.Sprintf("seek to row %d", row0), err)
	}

	if col0 == 0 && int64(g.Cols) == m.layout.Cols {
		if _, err := m.file.Write(g.Data); err != nil {
			return utils.WrapError(fmt.Sprintf("write rows %d..%d", row0, row0+int64(g.Rows)-1), err)
		}
		return nil
	}

	skip := m.layout.ElemSize * (m.layout.Cols - int64(g.Cols))
	for i := 0; i < g.Rows; i++ {
		if _, err := m.file.Write(g.Row(i)); err != nil {
			return utils.WrapError(fmt.Sprintf("write row %d", row0+int64(i)), err)
		}
		if i < g.Rows-1 {
			if _, err := m.file.Seek(skip, io.SeekCurrent); err != nil {
				return utils.WrapError(fmt.Sprintf("seek past row %d", row0+int64(i)), err)
			}
		}
	}
	return nil
}

// Close syncs a writable file and closes it.
// It is safe to call Close multiple times.
func (m *Manual) Close() error {
	if m.file == nil {
		return nil // Already closed.
	}
	var syncErr error
	if m.writable {
		syncErr = m.file.Sync()
	}
	closeErr := m.file.Close()
	m.file = nil

	if syncErr != nil {
		return utils.WrapError("sync", syncErr)
	}
	return utils.WrapError("close", closeErr)
}
