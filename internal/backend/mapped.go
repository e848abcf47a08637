package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/utils"
	"github.com/scigolib/bip/internal/window"
)

// ErrMapUnavailable marks a mapping attempt that failed for reasons the
// manual backend can work around (address space, platform, empty raster).
var ErrMapUnavailable = errors.New("memory mapping unavailable")

// Mapped serves windows from a shared memory mapping of the raster. The
// file descriptor is closed as soon as the mapping exists, so the mapping
// is the only live handle.
type Mapped struct {
	layout   Layout
	mapping  []byte // page-aligned region returned by mmap
	view     []byte // mapping starting at the first sample
	writable bool
}

// OpenMapped maps the raster described by l. A writable mapping extends
// a short file to the full raster size first.
func OpenMapped(name string, l Layout, writable bool) (*Mapped, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	size, _ := l.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: empty raster", ErrMapUnavailable)
	}
	end, _ := l.End()
	aligned := l.Offset - l.Offset%pageSize()
	length := end - aligned
	if !utils.FitsInt(length) {
		return nil, fmt.Errorf("%w: %d bytes exceed the address space", ErrMapUnavailable, length)
	}

	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	//nolint:gosec // G304: caller-provided raster path is intentional
	f, err := os.OpenFile(name, flag, 0)
	if err != nil {
		return nil, utils.WrapError("open for mapping", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, utils.WrapError("stat for mapping", err)
	}
	if fi.Size() < end {
		if !writable {
			return nil, fmt.Errorf("file holds %d bytes, raster needs %d", fi.Size(), end)
		}
		if err := f.Truncate(end); err != nil {
			return nil, utils.WrapError("extend file for mapping", err)
		}
	}

	data, err := mmapFile(f, aligned, int(length), writable)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapUnavailable, err)
	}

	return &Mapped{
		layout:   l,
		mapping:  data,
		view:     data[l.Offset-aligned:],
		writable: writable,
	}, nil
}

// Kind implements Backend.
func (m *Mapped) Kind() Kind {
	return KindMapped
}

// ReadWindow implements Backend. The result never aliases the mapping.
func (m *Mapped) ReadWindow(rows, cols window.Range) (*core.Grid, error) {
	if m.view == nil {
		return nil, core.ErrClosed
	}
	if err := m.layout.checkRead(rows, cols); err != nil {
		return nil, err
	}

	es := m.layout.ElemSize
	g := core.NewGrid(int(rows.Count), int(cols.Count), int(es))
	for i := int64(0); i < rows.Count; i++ {
		base := m.layout.pixelOffset(rows.Index(i), 0)
		dst := g.Row(int(i))
		if cols.Step == 1 {
			start := base + cols.Start*es
			copy(dst, m.view[start:start+cols.Count*es])
			continue
		}
		for j := int64(0); j < cols.Count; j++ {
			src := base + cols.Index(j)*es
			copy(dst[j*es:(j+1)*es], m.view[src:src+es])
		}
	}
	return g, nil
}

// WriteWindow implements Backend by assigning into the mapping.
func (m *Mapped) WriteWindow(row0, col0 int64, g *core.Grid) error {
	if m.view == nil {
		return core.ErrClosed
	}
	if !m.writable {
		return errors.New("mapping is read-only")
	}
	if err := m.layout.checkWrite(row0, col0, g); err != nil {
		return err
	}
	for i := 0; i < g.Rows; i++ {
		off := m.layout.pixelOffset(row0+int64(i), col0)
		copy(m.view[off:off+int64(g.RowBytes())], g.Row(i))
	}
	return nil
}

// Close flushes a writable mapping and unmaps it.
// It is safe to call Close multiple times.
func (m *Mapped) Close() error {
	if m.mapping == nil {
		return nil // Already closed.
	}
	var syncErr error
	if m.writable {
		syncErr = msync(m.mapping)
	}
	unmapErr := munmap(m.mapping)
	m.mapping = nil
	m.view = nil

	if syncErr != nil {
		return utils.WrapError("msync", syncErr)
	}
	return utils.WrapError("munmap", unmapErr)
}
