// Package symmetry reconciles raw on-disk raster orientation with the
// logical orientation presented to callers.
//
// The mapping from raw to logical is fixed: first the flips are applied in
// raw axes (FlipRows reverses raw axis 1, FlipCols reverses raw axis 2),
// then, if Transpose is set, the two axes are swapped. Writes apply the
// inverse: transpose first, then the flips.
package symmetry

import (
	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/window"
)

// Symmetry is a construction-time orientation configuration.
type Symmetry struct {
	FlipRows  bool
	FlipCols  bool
	Transpose bool
}

// LogicalShape returns the caller-visible shape of a raw raster.
func (s Symmetry) LogicalShape(rawRows, rawCols int64) (rows, cols int64) {
	if s.Transpose {
		return rawCols, rawRows
	}
	return rawRows, rawCols
}

// RawWindow translates resolved logical ranges into raw ranges. Reading the
// raw ranges in their given order and applying ToLogical yields the
// logical window.
func (s Symmetry) RawWindow(rows, cols window.Range) (rawRows, rawCols window.Range) {
	rawRows, rawCols = rows, cols
	if s.Transpose {
		rawRows, rawCols = cols, rows
	}
	if s.FlipRows {
		rawRows = rawRows.Mirror()
	}
	if s.FlipCols {
		rawCols = rawCols.Mirror()
	}
	return rawRows, rawCols
}

// ToLogical reorders a grid read through RawWindow into logical order.
// Flips are already folded into the raw ranges, so only the transpose
// remains.
func (s Symmetry) ToLogical(g *core.Grid) *core.Grid {
	if s.Transpose {
		return g.Transpose()
	}
	return g
}

// ToRaw converts a logical block placed at (row0, col0) into a raw block
// and its ascending raw origin, for a raw raster of rawRows x rawCols.
func (s Symmetry) ToRaw(g *core.Grid, row0, col0, rawRows, rawCols int64) (*core.Grid, int64, int64) {
	r0, c0 := row0, col0
	if s.Transpose {
		g = g.Transpose()
		r0, c0 = col0, row0
	}
	if s.FlipRows {
		g = g.FlipRows()
		r0 = rawRows - r0 - int64(g.Rows)
	}
	if s.FlipCols {
		g = g.FlipCols()
		c0 = rawCols - c0 - int64(g.Cols)
	}
	return g, r0, c0
}

// Apply maps a whole raw grid to logical orientation.
func (s Symmetry) Apply(g *core.Grid) *core.Grid {
	if s.FlipRows {
		g = g.FlipRows()
	}
	if s.FlipCols {
		g = g.FlipCols()
	}
	if s.Transpose {
		g = g.Transpose()
	}
	return g
}

// Invert maps a whole logical grid back to raw orientation.
func (s Symmetry) Invert(g *core.Grid) *core.Grid {
	out, _, _ := s.ToRaw(g, 0, 0, 0, 0)
	return out
}

// IsIdentity reports whether the configuration leaves data untouched.
func (s Symmetry) IsIdentity() bool {
	return !s.FlipRows && !s.FlipCols && !s.Transpose
}
