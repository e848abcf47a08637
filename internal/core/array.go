package core

import (
	"fmt"
	"reflect"
)

// Array is a dense row-major (rows, cols, bands) block of elements. Data
// holds a typed slice ([]int16, []complex64, ...). Stride is the number of
// elements between the starts of consecutive rows; zero means Cols*Bands.
type Array struct {
	Rows   int
	Cols   int
	Bands  int
	Stride int
	Data   interface{}
}

// NewArray allocates a zeroed contiguous array.
func NewArray(kind Kind, rows, cols, bands int) *Array {
	return &Array{
		Rows:  rows,
		Cols:  cols,
		Bands: bands,
		Data:  MakeSlice(kind, rows*cols*bands),
	}
}

// MakeSlice allocates a typed slice of n elements of kind k.
func MakeSlice(k Kind, n int) interface{} {
	switch k {
	case Uint8:
		return make([]uint8, n)
	case Int8:
		return make([]int8, n)
	case Uint16:
		return make([]uint16, n)
	case Int16:
		return make([]int16, n)
	case Uint32:
		return make([]uint32, n)
	case Int32:
		return make([]int32, n)
	case Uint64:
		return make([]uint64, n)
	case Int64:
		return make([]int64, n)
	case Float32:
		return make([]float32, n)
	case Float64:
		return make([]float64, n)
	case Complex64:
		return make([]complex64, n)
	case Complex128:
		return make([]complex128, n)
	default:
		return nil
	}
}

// KindOf returns the element kind of a typed slice.
func KindOf(data interface{}) Kind {
	switch data.(type) {
	case []uint8:
		return Uint8
	case []int8:
		return Int8
	case []uint16:
		return Uint16
	case []int16:
		return Int16
	case []uint32:
		return Uint32
	case []int32:
		return Int32
	case []uint64:
		return Uint64
	case []int64:
		return Int64
	case []float32:
		return Float32
	case []float64:
		return Float64
	case []complex64:
		return Complex64
	case []complex128:
		return Complex128
	default:
		return KindInvalid
	}
}

// Kind returns the element kind of a.Data.
func (a *Array) Kind() Kind {
	return KindOf(a.Data)
}

// RowStride returns the effective row stride in elements.
func (a *Array) RowStride() int {
	if a.Stride == 0 {
		return a.Cols * a.Bands
	}
	return a.Stride
}

// IsContiguous reports whether rows are packed back to back.
func (a *Array) IsContiguous() bool {
	return a.RowStride() == a.Cols*a.Bands
}

// Validate checks that the array is rectangular and its backing slice is
// long enough for the declared shape.
func (a *Array) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil array", ErrTypeMismatch)
	}
	if a.Kind() == KindInvalid {
		return fmt.Errorf("%w: unsupported array data %T", ErrTypeMismatch, a.Data)
	}
	if a.Rows < 0 || a.Cols < 0 || a.Bands < 1 {
		return fmt.Errorf("invalid array shape (%d, %d, %d)", a.Rows, a.Cols, a.Bands)
	}
	if a.RowStride() < a.Cols*a.Bands {
		return fmt.Errorf("row stride %d shorter than row width %d", a.RowStride(), a.Cols*a.Bands)
	}
	need := 0
	if a.Rows > 0 {
		need = (a.Rows-1)*a.RowStride() + a.Cols*a.Bands
	}
	if n := reflect.ValueOf(a.Data).Len(); n < need {
		return fmt.Errorf("array data holds %d elements, shape (%d, %d, %d) needs %d",
			n, a.Rows, a.Cols, a.Bands, need)
	}
	return nil
}

// Contiguous returns a, or a packed copy of it when rows are strided.
func (a *Array) Contiguous() *Array {
	if a.IsContiguous() {
		return a
	}
	width := a.Cols * a.Bands
	src := reflect.ValueOf(a.Data)
	dst := reflect.MakeSlice(src.Type(), a.Rows*width, a.Rows*width)
	for r := 0; r < a.Rows; r++ {
		off := r * a.RowStride()
		reflect.Copy(dst.Slice(r*width, (r+1)*width), src.Slice(off, off+width))
	}
	return &Array{Rows: a.Rows, Cols: a.Cols, Bands: a.Bands, Data: dst.Interface()}
}
