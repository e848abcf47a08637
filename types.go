package bip

import (
	"github.com/scigolib/bip/internal/backend"
	"github.com/scigolib/bip/internal/compose"
	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/symmetry"
	"github.com/scigolib/bip/internal/window"
)

// Element types and arrays.
type (
	// Kind identifies a fixed-width numeric element type.
	Kind = core.Kind
	// DataType is an element kind with an explicit byte order.
	DataType = core.DataType
	// Array is a dense row-major (rows, cols, bands) block of elements.
	Array = core.Array
)

// Element kinds.
const (
	Uint8      = core.Uint8
	Int8       = core.Int8
	Uint16     = core.Uint16
	Int16      = core.Int16
	Uint32     = core.Uint32
	Int32      = core.Int32
	Uint64     = core.Uint64
	Int64      = core.Int64
	Float32    = core.Float32
	Float64    = core.Float64
	Complex64  = core.Complex64
	Complex128 = core.Complex128
)

// Windows.
type (
	// AxisRange is a (start, stop, step) request along one logical axis.
	AxisRange = window.AxisRange
)

// ToEnd as a stop value runs to the natural end of the axis in the
// traversal direction.
const ToEnd = window.ToEnd

// All selects a whole axis in ascending order.
func All() AxisRange { return window.All() }

// Span selects [start, stop) with step 1.
func Span(start, stop int64) AxisRange { return window.Span(start, stop) }

// Reversed selects a whole axis of the given length in descending order.
func Reversed(length int64) AxisRange { return window.Reversed(length) }

// Orientation and composition.
type (
	// Symmetry declares the flips and transpose between raw and logical
	// orientation. Flips apply in raw axes first, then the transpose.
	Symmetry = symmetry.Symmetry
	// ComplexMode selects how raw bands become domain samples.
	ComplexMode = compose.Mode
	// TransformFunc maps arrays between raw and domain representations.
	TransformFunc = compose.TransformFunc
	// BackendKind names a storage strategy.
	BackendKind = backend.Kind
)

// Complex composition modes.
const (
	ComplexNone         = compose.None
	ComplexTransform    = compose.Transform
	ComplexAdjacentPair = compose.AdjacentPair
)

// Storage strategies. BackendAuto maps the file and falls back to manual
// access when mapping fails.
const (
	BackendAuto   = backend.KindAuto
	BackendMapped = backend.KindMapped
	BackendManual = backend.KindManual
)

// NewArray allocates a zeroed contiguous array.
func NewArray(kind Kind, rows, cols, bands int) *Array {
	return core.NewArray(kind, rows, cols, bands)
}

// ParseKind parses an element type name ("int16") or numpy code ("i2").
func ParseKind(s string) (Kind, error) { return core.ParseKind(s) }
