package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two non-negative int64 values
// would overflow.
func CheckMultiplyOverflow(a, b int64) error {
	if a < 0 || b < 0 {
		return fmt.Errorf("negative operand: %d * %d", a, b)
	}
	if a == 0 || b == 0 {
		return nil
	}
	if a > math.MaxInt64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds int64 max", a, b)
	}
	return nil
}

// SafeMultiply multiplies two non-negative int64 values, failing on overflow.
func SafeMultiply(a, b int64) (int64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// SafeAdd adds two non-negative int64 values, failing on overflow.
func SafeAdd(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("negative operand: %d + %d", a, b)
	}
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("addition overflow: %d + %d exceeds int64 max", a, b)
	}
	return a + b, nil
}

// RasterBytes returns rows*cols*elemSize, failing on overflow.
func RasterBytes(rows, cols, elemSize int64) (int64, error) {
	pixels, err := SafeMultiply(rows, cols)
	if err != nil {
		return 0, fmt.Errorf("raster size %dx%d: %w", rows, cols, err)
	}
	size, err := SafeMultiply(pixels, elemSize)
	if err != nil {
		return 0, fmt.Errorf("raster size %dx%d of %d-byte elements: %w", rows, cols, elemSize, err)
	}
	return size, nil
}

// FitsInt reports whether n can be used as a Go slice length on this platform.
func FitsInt(n int64) bool {
	return n >= 0 && uint64(n) <= uint64(math.MaxInt)
}
