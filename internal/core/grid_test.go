package core

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqGrid builds a 1-byte grid whose cell (r, c) holds r*cols+c.
func seqGrid(rows, cols int) *Grid {
	g := NewGrid(rows, cols, 1)
	for i := range g.Data {
		g.Data[i] = byte(i)
	}
	return g
}

func TestGrid_Transpose(t *testing.T) {
	g := seqGrid(2, 3)
	tr := g.Transpose()
	require.Equal(t, 3, tr.Rows)
	require.Equal(t, 2, tr.Cols)
	require.Equal(t, []byte{0, 3, 1, 4, 2, 5}, tr.Data)
	require.Equal(t, g.Data, tr.Transpose().Data)
}

func TestGrid_Flips(t *testing.T) {
	g := seqGrid(2, 3)
	require.Equal(t, []byte{3, 4, 5, 0, 1, 2}, g.FlipRows().Data)
	require.Equal(t, []byte{2, 1, 0, 5, 4, 3}, g.FlipCols().Data)
	require.Equal(t, g.Data, g.FlipRows().FlipRows().Data)
	require.Equal(t, g.Data, g.FlipCols().FlipCols().Data)
}

func TestGrid_MultiByteCells(t *testing.T) {
	g := &Grid{Rows: 1, Cols: 2, ElemSize: 2, Data: []byte{1, 2, 3, 4}}
	require.Equal(t, []byte{3, 4, 1, 2}, g.FlipCols().Data)
	tr := g.Transpose()
	require.Equal(t, []byte{1, 2}, tr.Cell(0, 0))
	require.Equal(t, []byte{3, 4}, tr.Cell(1, 0))
}

func TestEncodeDecode_ByteOrder(t *testing.T) {
	a := &Array{Rows: 1, Cols: 2, Bands: 1, Data: []int16{0x0102, -2}}

	be := DataType{Kind: Int16, Order: binary.BigEndian}
	g, err := EncodeArray(a, be)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0xff, 0xfe}, g.Data)
	require.Equal(t, 2, g.ElemSize)

	le := DataType{Kind: Int16, Order: binary.LittleEndian}
	g, err = EncodeArray(a, le)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x01, 0xfe, 0xff}, g.Data)

	back, err := DecodeGrid(g, le, 1)
	require.NoError(t, err)
	require.Equal(t, a.Data, back.Data)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a    *Array
	}{
		{"uint8", &Array{Rows: 2, Cols: 2, Bands: 1, Data: []uint8{1, 2, 3, 255}}},
		{"int32 bands", &Array{Rows: 1, Cols: 2, Bands: 3, Data: []int32{-1, 2, -3, 4, -5, 6}}},
		{"float32", &Array{Rows: 2, Cols: 1, Bands: 1, Data: []float32{1.5, -0.25}}},
		{"float64", &Array{Rows: 1, Cols: 1, Bands: 2, Data: []float64{1e300, -1e-300}}},
		{"complex64", &Array{Rows: 1, Cols: 2, Bands: 1, Data: []complex64{complex(1, 2), complex(-3, 4)}}},
		{"complex128", &Array{Rows: 1, Cols: 1, Bands: 1, Data: []complex128{complex(1e10, -1)}}},
	}
	for _, tt := range tests {
		for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
			t.Run(tt.name+"/"+order.String(), func(t *testing.T) {
				dt := DataType{Kind: tt.a.Kind(), Order: order}
				g, err := EncodeArray(tt.a, dt)
				require.NoError(t, err)
				require.Len(t, g.Data, tt.a.Rows*tt.a.Cols*tt.a.Bands*dt.Size())

				back, err := DecodeGrid(g, dt, tt.a.Bands)
				require.NoError(t, err)
				require.Equal(t, tt.a.Data, back.Data)
			})
		}
	}
}

func TestEncodeArray_KindMismatch(t *testing.T) {
	a := &Array{Rows: 1, Cols: 1, Bands: 1, Data: []float64{1}}
	_, err := EncodeArray(a, DataType{Kind: Float32})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestEncodeArray_Strided(t *testing.T) {
	// Two rows of two samples, stride 3: the third element of each row is slack.
	a := &Array{Rows: 2, Cols: 2, Bands: 1, Stride: 3, Data: []uint8{1, 2, 99, 3, 4}}
	g, err := EncodeArray(a, DataType{Kind: Uint8})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, g.Data)
}

func TestDecodeGrid_BandMismatch(t *testing.T) {
	g := NewGrid(1, 1, 4)
	_, err := DecodeGrid(g, DataType{Kind: Int16}, 1)
	require.Error(t, err)

	a, err := DecodeGrid(g, DataType{Kind: Int16}, 2)
	require.NoError(t, err)
	require.Equal(t, []int16{0, 0}, a.Data)
}

func TestDecodeGrid_Empty(t *testing.T) {
	g := NewGrid(0, 3, 2)
	a, err := DecodeGrid(g, DataType{Kind: Uint16}, 1)
	require.NoError(t, err)
	require.Equal(t, 0, a.Rows)
	require.Equal(t, 3, a.Cols)
	require.Empty(t, a.Data)
}
