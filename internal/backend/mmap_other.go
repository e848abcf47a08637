//go:build !unix

package backend

import (
	"errors"
	"os"
)

var errMapUnsupported = errors.New("memory mapping is not supported on this platform")

func mmapFile(_ *os.File, _ int64, _ int, _ bool) ([]byte, error) {
	return nil, errMapUnsupported
}

func munmap(_ []byte) error {
	return nil
}

func msync(_ []byte) error {
	return nil
}

func pageSize() int64 {
	return int64(os.Getpagesize())
}
