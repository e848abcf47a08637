package bip

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jrivets/log4g"

	"github.com/scigolib/bip/internal/backend"
)

var logger = log4g.GetLogger("bip")

// Backend constructors. Tests replace openMapped to force a mapping failure.
var (
	openMapped = func(name string, l backend.Layout, writable bool) (backend.Backend, error) {
		m, err := backend.OpenMapped(name, l, writable)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	openManual = func(name string, l backend.Layout, writable bool) (backend.Backend, error) {
		m, err := backend.OpenManual(name, l, writable)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
)

// openBackend selects the storage strategy once. BackendAuto tries a
// mapping and falls back to manual access, which serves identical results.
func openBackend(name string, l backend.Layout, writable bool, kind BackendKind) (backend.Backend, error) {
	switch kind {
	case BackendManual:
		return openManual(name, l, writable)
	case BackendMapped:
		return openMapped(name, l, writable)
	case BackendAuto:
	default:
		return nil, fmt.Errorf("unknown backend %s", kind)
	}

	be, err := openMapped(name, l, writable)
	if err == nil {
		return be, nil
	}

	size, _ := l.Size()
	access := "reading"
	if writable {
		access = "writing"
	}
	logger.Warn("Falling back to manual ", access, " of ", name, " (", humanize.Bytes(uint64(size)),
		"), memory map failed: ", err)
	return openManual(name, l, writable)
}

// checkFile verifies name is an existing regular file of at least size
// bytes. A writer may target a shorter file; a mapped writer extends it.
func checkFile(name string, size int64, writable bool) error {
	fi, err := os.Stat(name)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", name)
	}

	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	//nolint:gosec // G304: caller-provided raster path is intentional
	f, err := os.OpenFile(name, flag, 0)
	if err != nil {
		return err
	}
	_ = f.Close()

	if !writable && fi.Size() < size {
		return fmt.Errorf("file holds %s, raster needs %s",
			humanize.Comma(fi.Size()), humanize.Comma(size))
	}
	return nil
}
