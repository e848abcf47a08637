package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeMultiply(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr bool
	}{
		{"zero", 0, math.MaxInt64, 0, false},
		{"small", 100, 50, 5000, false},
		{"max times one", math.MaxInt64, 1, math.MaxInt64, false},
		{"overflow", math.MaxInt64/2 + 1, 2, 0, true},
		{"negative", -1, 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeMultiply(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSafeAdd(t *testing.T) {
	got, err := SafeAdd(10, 20)
	require.NoError(t, err)
	require.Equal(t, int64(30), got)

	_, err = SafeAdd(math.MaxInt64, 1)
	require.Error(t, err)

	_, err = SafeAdd(-5, 1)
	require.Error(t, err)
}

func TestRasterBytes(t *testing.T) {
	size, err := RasterBytes(100, 50, 2)
	require.NoError(t, err)
	require.Equal(t, int64(10000), size)

	size, err = RasterBytes(0, 50, 8)
	require.NoError(t, err)
	require.Zero(t, size)

	_, err = RasterBytes(math.MaxInt32, math.MaxInt32, 16)
	require.Error(t, err)
}

func TestFitsInt(t *testing.T) {
	require.True(t, FitsInt(0))
	require.True(t, FitsInt(1<<20))
	require.False(t, FitsInt(-1))
}
