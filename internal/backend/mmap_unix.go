//go:build unix

package backend

import (
	"os"

	"golang.org/x/sys/unix"
)

func mmapFile(f *os.File, offset int64, length int, writable bool) ([]byte, error) {
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(int(f.Fd()), offset, length, prot, unix.MAP_SHARED)
}

func munmap(b []byte) error {
	return unix.Munmap(b)
}

func msync(b []byte) error {
	return unix.Msync(b, unix.MS_SYNC)
}

func pageSize() int64 {
	return int64(unix.Getpagesize())
}
