package core

import (
	"encoding/binary"
	"fmt"
)

// Grid is a row-major 2-D block of fixed-size byte elements. Symmetry and
// storage operate on grids so they never depend on the element type; one
// grid element is all bands of one pixel.
type Grid struct {
	Rows     int
	Cols     int
	ElemSize int
	Data     []byte
}

// NewGrid allocates a zeroed grid.
func NewGrid(rows, cols, elemSize int) *Grid {
	return &Grid{
		Rows:     rows,
		Cols:     cols,
		ElemSize: elemSize,
		Data:     make([]byte, rows*cols*elemSize),
	}
}

// RowBytes returns the byte width of one row.
func (g *Grid) RowBytes() int {
	return g.Cols * g.ElemSize
}

// Row returns the bytes of row r.
func (g *Grid) Row(r int) []byte {
	w := g.RowBytes()
	return g.Data[r*w : (r+1)*w]
}

// Cell returns the bytes of element (r, c).
func (g *Grid) Cell(r, c int) []byte {
	off := (r*g.Cols + c) * g.ElemSize
	return g.Data[off : off+g.ElemSize]
}

// Transpose returns a new grid with rows and columns swapped.
func (g *Grid) Transpose() *Grid {
	out := NewGrid(g.Cols, g.Rows, g.ElemSize)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			copy(out.Cell(c, r), g.Cell(r, c))
		}
	}
	return out
}

// FlipRows returns a new grid with the row order reversed.
func (g *Grid) FlipRows() *Grid {
	out := NewGrid(g.Rows, g.Cols, g.ElemSize)
	for r := 0; r < g.Rows; r++ {
		copy(out.Row(g.Rows-1-r), g.Row(r))
	}
	return out
}

// FlipCols returns a new grid with the column order of every row reversed.
func (g *Grid) FlipCols() *Grid {
	out := NewGrid(g.Rows, g.Cols, g.ElemSize)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			copy(out.Cell(r, g.Cols-1-c), g.Cell(r, c))
		}
	}
	return out
}

// EncodeArray serializes a into a grid using dt's byte order. The array
// kind must equal dt.Kind.
func EncodeArray(a *Array, dt DataType) (*Grid, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.Kind() != dt.Kind {
		return nil, fmt.Errorf("%w: array is %s, raw type is %s", ErrTypeMismatch, a.Kind(), dt.Kind)
	}
	a = a.Contiguous()
	g := &Grid{Rows: a.Rows, Cols: a.Cols, ElemSize: dt.Size() * a.Bands}
	if a.Rows*a.Cols == 0 {
		g.Data = []byte{}
		return g, nil
	}
	data := trimSlice(a.Data, a.Rows*a.Cols*a.Bands)
	buf, err := binary.Append(make([]byte, 0, a.Rows*g.RowBytes()), dt.ByteOrder(), data)
	if err != nil {
		return nil, fmt.Errorf("encode %s array: %w", dt, err)
	}
	g.Data = buf
	return g, nil
}

// DecodeGrid interprets g as elements of dt with the given band count.
func DecodeGrid(g *Grid, dt DataType, bands int) (*Array, error) {
	if bands < 1 || g.ElemSize != dt.Size()*bands {
		return nil, fmt.Errorf("grid element of %d bytes does not hold %d bands of %s",
			g.ElemSize, bands, dt)
	}
	a := NewArray(dt.Kind, g.Rows, g.Cols, bands)
	if len(g.Data) == 0 {
		return a, nil
	}
	if _, err := binary.Decode(g.Data, dt.ByteOrder(), a.Data); err != nil {
		return nil, fmt.Errorf("decode %s grid: %w", dt, err)
	}
	return a, nil
}

// trimSlice cuts a typed slice to n elements so binary.Append never
// serializes slack capacity past the array shape.
func trimSlice(data interface{}, n int) interface{} {
	switch v := data.(type) {
	case []uint8:
		return v[:n]
	case []int8:
		return v[:n]
	case []uint16:
		return v[:n]
	case []int16:
		return v[:n]
	case []uint32:
		return v[:n]
	case []int32:
		return v[:n]
	case []uint64:
		return v[:n]
	case []int64:
		return v[:n]
	case []float32:
		return v[:n]
	case []float64:
		return v[:n]
	case []complex64:
		return v[:n]
	case []complex128:
		return v[:n]
	default:
		return data
	}
}
