// Package winexpr parses textual window expressions such as
//
//	10:20, ::-1
//	:, 5
//	0:100:4, 3:-1
//
// into axis ranges. Each axis is start:stop:step with every part optional,
// or a single index. A stop of -1 means "to the end". An omitted column
// axis selects all columns; a whole row axis is written ":".
package winexpr

import (
	"fmt"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"

	"github.com/scigolib/bip/internal/window"
)

var (
	winLexer = lexer.Must(lexer.Regexp(`(\s+)` +
		`|(?P<Int>-?\d+)` +
		`|(?P<Punct>[:,])`,
	))
	parser = participle.MustBuild(
		&Window{},
		participle.Lexer(winLexer),
	)
)

type (
	// Window is a parsed "rows, cols" expression.
	Window struct {
		Rows *Axis `@@`
		Cols *Axis `[ "," @@ ]`
	}

	// Axis is a parsed start:stop:step triple.
	Axis struct {
		Start  *int64 `[ @Int ]`
		Slice  bool   `[ @":"`
		Stop   *int64 `  [ @Int ]`
		Stride bool   `  [ @":"`
		Step   *int64 `    [ @Int ] ] ]`
	}
)

// Parse parses a window expression against a logical raster of the given
// shape.
func Parse(expr string, rows, cols int64) (window.AxisRange, window.AxisRange, error) {
	w := &Window{}
	if err := parser.ParseString(expr, w); err != nil {
		return window.AxisRange{}, window.AxisRange{}, fmt.Errorf("invalid window %q: %v", expr, err)
	}

	rr, err := w.Rows.Range(rows)
	if err != nil {
		return window.AxisRange{}, window.AxisRange{}, fmt.Errorf("invalid window %q: rows: %v", expr, err)
	}
	cr := window.All()
	if w.Cols != nil {
		if cr, err = w.Cols.Range(cols); err != nil {
			return window.AxisRange{}, window.AxisRange{}, fmt.Errorf("invalid window %q: cols: %v", expr, err)
		}
	}
	return rr, cr, nil
}

// Range converts the axis into a request on an axis of the given length.
// A bare index i selects [i, i+1).
func (a *Axis) Range(length int64) (window.AxisRange, error) {
	if a == nil {
		return window.All(), nil
	}
	if !a.Slice {
		if a.Start == nil {
			return window.AxisRange{}, fmt.Errorf("empty axis")
		}
		return window.Span(*a.Start, *a.Start+1), nil
	}

	r := window.AxisRange{Step: 1, Stop: window.ToEnd}
	if a.Step != nil {
		if *a.Step == 0 {
			return window.AxisRange{}, fmt.Errorf("step must be non-zero")
		}
		r.Step = *a.Step
	}
	if a.Start != nil {
		r.Start = *a.Start
	} else if r.Step < 0 {
		r.Start = length - 1
	}
	if a.Stop != nil {
		r.Stop = *a.Stop
	}
	return r, nil
}
