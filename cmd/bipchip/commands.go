package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	ucli "gopkg.in/urfave/cli.v2"

	"github.com/scigolib/bip"
	"github.com/scigolib/bip/internal/core"
	"github.com/scigolib/bip/internal/winexpr"
)

func runInfo(c *ucli.Context) error {
	fn, err := fileArg(c)
	if err != nil {
		return err
	}
	desc, err := initDescriptor(c)
	if err != nil {
		return err
	}

	ch, err := bip.Open(fn, desc)
	if err != nil {
		return err
	}
	defer ch.Close()

	rows, cols := ch.Shape()
	size := desc.Rows * desc.Cols * int64(desc.Type.Size()*desc.RawBands())
	fmt.Printf("%-14s %s\n", "file:", fn)
	fmt.Printf("%-14s %s x %s\n", "raw shape:", humanize.Comma(desc.Rows), humanize.Comma(desc.Cols))
	fmt.Printf("%-14s %s x %s\n", "logical shape:", humanize.Comma(rows), humanize.Comma(cols))
	fmt.Printf("%-14s %s, %d raw band(s) per pixel\n", "type:", desc.Type, desc.RawBands())
	fmt.Printf("%-14s %s\n", "complex:", desc.Complex)
	fmt.Printf("%-14s flip_rows=%t flip_cols=%t transpose=%t\n", "symmetry:",
		desc.Symmetry.FlipRows, desc.Symmetry.FlipCols, desc.Symmetry.Transpose)
	fmt.Printf("%-14s %s at offset %s\n", "payload:", humanize.Bytes(uint64(size)), humanize.Comma(desc.Offset))
	fmt.Printf("%-14s %s\n", "backend:", ch.Backend())
	return nil
}

func runCreate(c *ucli.Context) error {
	fn, err := fileArg(c)
	if err != nil {
		return err
	}
	desc, err := initDescriptor(c)
	if err != nil {
		return err
	}

	mode := bip.CreateTruncate
	if c.Bool(argExclusive) {
		mode = bip.CreateExclusive
	}
	if err := bip.Create(fn, desc, mode); err != nil {
		return err
	}
	logger.Info("Created raster ", fn, " rows=", desc.Rows, " cols=", desc.Cols, " type=", desc.Type)
	return nil
}

func runRead(c *ucli.Context) error {
	fn, err := fileArg(c)
	if err != nil {
		return err
	}
	desc, err := initDescriptor(c)
	if err != nil {
		return err
	}

	ch, err := bip.Open(fn, desc)
	if err != nil {
		return err
	}
	defer ch.Close()

	lr, lc := ch.Shape()
	rows, cols, err := winexpr.Parse(c.String(argWindow), lr, lc)
	if err != nil {
		return err
	}
	a, err := ch.Read(rows, cols)
	if err != nil {
		return errors.Wrapf(err, "could not read window %q", c.String(argWindow))
	}
	return printArray(os.Stdout, a)
}

func runFill(c *ucli.Context) error {
	fn, err := fileArg(c)
	if err != nil {
		return err
	}
	desc, err := initDescriptor(c)
	if err != nil {
		return err
	}
	if desc.Complex == bip.ComplexTransform {
		return fmt.Errorf("fill does not support the %s complex mode", desc.Complex)
	}

	lock := flock.New(fn + ".lock")
	if ok, err := lock.TryLock(); !ok || err != nil {
		return fmt.Errorf("could not get lock for %s, is another writer running?", fn)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(fn + ".lock")
	}()

	return bip.WithWriter(fn, desc, func(w *bip.Writer) error {
		lr, lc := w.Shape()
		rows, cols, err := winexpr.Parse(c.String(argWindow), lr, lc)
		if err != nil {
			return err
		}
		r0, nr, err := block(rows, lr)
		if err != nil {
			return errors.Wrap(err, "rows")
		}
		c0, nc, err := block(cols, lc)
		if err != nil {
			return errors.Wrap(err, "cols")
		}

		kind := desc.Type.Kind
		if desc.Complex == bip.ComplexAdjacentPair {
			kind, _ = core.ComplexPair(kind)
		}
		a := constArray(kind, int(nr), int(nc), desc.Bands, c.Float64(argValue))
		if err := w.Write(a, r0, c0); err != nil {
			return err
		}
		logger.Info("Filled ", humanize.Comma(nr*nc), " pixels of ", fn, " with ", c.Float64(argValue))
		return nil
	})
}

// block resolves an ascending step-1 axis request into (start, count).
func block(r bip.AxisRange, length int64) (int64, int64, error) {
	if r.Step != 1 {
		return 0, 0, fmt.Errorf("fill needs an ascending step-1 window, got step %d", r.Step)
	}
	stop := r.Stop
	if stop == bip.ToEnd {
		stop = length
	}
	if stop < r.Start {
		stop = r.Start
	}
	return r.Start, stop - r.Start, nil
}

// constArray builds an array with every sample set to v.
func constArray(kind bip.Kind, rows, cols, bands int, v float64) *bip.Array {
	if bands == 0 {
		bands = 1
	}
	a := bip.NewArray(kind, rows, cols, bands)
	switch d := a.Data.(type) {
	case []uint8:
		fill(d, uint8(v))
	case []int8:
		fill(d, int8(v))
	case []uint16:
		fill(d, uint16(v))
	case []int16:
		fill(d, int16(v))
	case []uint32:
		fill(d, uint32(v))
	case []int32:
		fill(d, int32(v))
	case []uint64:
		fill(d, uint64(v))
	case []int64:
		fill(d, int64(v))
	case []float32:
		fill(d, float32(v))
	case []float64:
		fill(d, v)
	case []complex64:
		fill(d, complex(float32(v), 0))
	case []complex128:
		fill(d, complex(v, 0))
	}
	return a
}

func fill[T any](d []T, v T) {
	for i := range d {
		d[i] = v
	}
}

// printArray writes one line per pixel: "row col: band0 band1 ...".
func printArray(w io.Writer, a *bip.Array) error {
	switch d := a.Data.(type) {
	case []uint8:
		return printPixels(w, d, a)
	case []int8:
		return printPixels(w, d, a)
	case []uint16:
		return printPixels(w, d, a)
	case []int16:
		return printPixels(w, d, a)
	case []uint32:
		return printPixels(w, d, a)
	case []int32:
		return printPixels(w, d, a)
	case []uint64:
		return printPixels(w, d, a)
	case []int64:
		return printPixels(w, d, a)
	case []float32:
		return printPixels(w, d, a)
	case []float64:
		return printPixels(w, d, a)
	case []complex64:
		return printPixels(w, d, a)
	case []complex128:
		return printPixels(w, d, a)
	default:
		return fmt.Errorf("unsupported array data %T", a.Data)
	}
}

func printPixels[T any](w io.Writer, d []T, a *bip.Array) error {
	var sb strings.Builder
	for r := 0; r < a.Rows; r++ {
		for c := 0; c < a.Cols; c++ {
			sb.Reset()
			fmt.Fprintf(&sb, "%d %d:", r, c)
			off := r*a.RowStride() + c*a.Bands
			for b := 0; b < a.Bands; b++ {
				fmt.Fprintf(&sb, " %v", d[off+b])
			}
			sb.WriteByte('\n')
			if _, err := io.WriteString(w, sb.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
