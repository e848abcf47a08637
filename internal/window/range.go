// Package window resolves user axis requests (start, stop, step) into
// concrete, bounds-checked index sequences.
package window

import (
	"fmt"

	"github.com/scigolib/bip/internal/core"
)

// ToEnd is the stop sentinel. With a positive step it resolves to the axis
// length; with a negative step traversal runs down to and including index 0.
const ToEnd int64 = -1

// AxisRange is a user axis request. Step may be negative.
type AxisRange struct {
	Start int64
	Stop  int64
	Step  int64
}

// All selects a whole axis in ascending order.
func All() AxisRange {
	return AxisRange{Start: 0, Stop: ToEnd, Step: 1}
}

// Span selects [start, stop) with step 1.
func Span(start, stop int64) AxisRange {
	return AxisRange{Start: start, Stop: stop, Step: 1}
}

// Reversed selects a whole axis of the given length in descending order.
func Reversed(length int64) AxisRange {
	return AxisRange{Start: length - 1, Stop: ToEnd, Step: -1}
}

func (r AxisRange) String() string {
	return fmt.Sprintf("%d:%d:%d", r.Start, r.Stop, r.Step)
}

// Range is a resolved axis selection: Count indices Start, Start+Step, ...
// all inside [0, Length).
type Range struct {
	Start  int64
	Step   int64
	Count  int64
	Length int64
}

// Normalize resolves r against an axis of the given length. A zero-length
// result is valid. A selection touching any index outside [0, length)
// fails with core.ErrRange; nothing is clamped.
func Normalize(r AxisRange, length int64) (Range, error) {
	if length < 0 {
		return Range{}, fmt.Errorf("%w: negative axis length %d", core.ErrRange, length)
	}
	if r.Step == 0 {
		return Range{}, fmt.Errorf("%w: step must be non-zero in %s", core.ErrRange, r)
	}

	stop := r.Stop
	if stop == ToEnd && r.Step > 0 {
		stop = length
	}
	// With a negative step, ToEnd already equals the exclusive bound -1.

	var count int64
	if r.Step > 0 {
		if stop > r.Start {
			count = (stop - r.Start + r.Step - 1) / r.Step
		}
	} else {
		if r.Start > stop {
			count = (r.Start - stop - r.Step - 1) / -r.Step
		}
	}

	res := Range{Start: r.Start, Step: r.Step, Count: count, Length: length}
	if count == 0 {
		return res, nil
	}
	first, last := res.Start, res.Last()
	if first < 0 || first >= length || last < 0 || last >= length {
		return Range{}, fmt.Errorf("%w: %s selects indices %d..%d outside [0, %d)",
			core.ErrRange, r, first, last, length)
	}
	return res, nil
}

// Last returns the final index of a non-empty range.
func (r Range) Last() int64 {
	return r.Start + (r.Count-1)*r.Step
}

// Index returns the i-th selected index.
func (r Range) Index(i int64) int64 {
	return r.Start + i*r.Step
}

// Min returns the smallest selected index of a non-empty range.
func (r Range) Min() int64 {
	if r.Step < 0 {
		return r.Last()
	}
	return r.Start
}

// Span returns the number of indices between the smallest and largest
// selected index, inclusive, i.e. the contiguous run covering the range.
func (r Range) Span() int64 {
	if r.Count == 0 {
		return 0
	}
	abs := r.Step
	if abs < 0 {
		abs = -abs
	}
	return (r.Count-1)*abs + 1
}

// Indices expands the range into an explicit index list.
func (r Range) Indices() []int64 {
	out := make([]int64, r.Count)
	for i := range out {
		out[i] = r.Index(int64(i))
	}
	return out
}

// Mirror maps the range onto an axis traversed from the opposite end:
// index i becomes Length-1-i. Order of traversal is preserved.
func (r Range) Mirror() Range {
	if r.Count == 0 {
		return Range{Start: 0, Step: -r.Step, Count: 0, Length: r.Length}
	}
	return Range{Start: r.Length - 1 - r.Start, Step: -r.Step, Count: r.Count, Length: r.Length}
}

// Contiguous builds the ascending step-1 range [start, start+count).
func Contiguous(start, count, length int64) (Range, error) {
	return Normalize(Span(start, start+count), length)
}
