// Package utils provides shared helpers for the BIP chipper internals.
package utils

import "sync"

// Row runs read by the manual backend are usually a few KiB to a few MiB;
// the pool keeps the smaller ones around between rows and calls.
const pooledBufferCap = 64 * 1024

var bufferPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, pooledBufferCap)
	},
}

// GetBuffer returns a byte slice of length size from the pool.
func GetBuffer(size int) []byte {
	buf := bufferPool.Get().([]byte)
	if cap(buf) < size {
		bufferPool.Put(buf[:0]) //nolint:staticcheck // SA6002: slice header copy is fine here
		return make([]byte, size)
	}
	return buf[:size]
}

// ReleaseBuffer returns a buffer to the pool. Oversized buffers are dropped
// so a single huge row does not pin memory.
func ReleaseBuffer(buf []byte) {
	if cap(buf) > 4*pooledBufferCap {
		return
	}
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bufferPool.Put(buf[:0])
}
