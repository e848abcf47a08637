package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArray_Validate(t *testing.T) {
	tests := []struct {
		name    string
		a       *Array
		wantErr bool
	}{
		{"ok", &Array{Rows: 2, Cols: 2, Bands: 1, Data: make([]int16, 4)}, false},
		{"empty", &Array{Rows: 0, Cols: 4, Bands: 1, Data: []int16{}}, false},
		{"short", &Array{Rows: 2, Cols: 2, Bands: 1, Data: make([]int16, 3)}, true},
		{"strided", &Array{Rows: 2, Cols: 2, Bands: 1, Stride: 4, Data: make([]int16, 6)}, false},
		{"stride too small", &Array{Rows: 2, Cols: 2, Bands: 1, Stride: 1, Data: make([]int16, 4)}, true},
		{"zero bands", &Array{Rows: 1, Cols: 1, Bands: 0, Data: make([]int16, 1)}, true},
		{"unsupported", &Array{Rows: 1, Cols: 1, Bands: 1, Data: []string{"x"}}, true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestArray_Contiguous(t *testing.T) {
	a := &Array{Rows: 2, Cols: 1, Bands: 2, Stride: 3, Data: []float32{1, 2, 0, 3, 4}}
	require.False(t, a.IsContiguous())

	c := a.Contiguous()
	require.True(t, c.IsContiguous())
	require.Equal(t, []float32{1, 2, 3, 4}, c.Data)

	require.Same(t, c, c.Contiguous())
}

func TestNewArray(t *testing.T) {
	a := NewArray(Complex128, 2, 3, 2)
	require.Equal(t, Complex128, a.Kind())
	require.Len(t, a.Data, 12)
	require.NoError(t, a.Validate())
	require.Nil(t, MakeSlice(KindInvalid, 1))
}
