package compose

import (
	"fmt"

	"github.com/scigolib/bip/internal/core"
)

// pairBands folds (re, im) band pairs into complex samples.
func pairBands(raw *core.Array) (*core.Array, error) {
	if raw.Bands%2 != 0 {
		return nil, fmt.Errorf("%w: odd raw band count %d cannot form complex pairs", core.ErrTypeMismatch, raw.Bands)
	}
	raw = raw.Contiguous()
	out := &core.Array{Rows: raw.Rows, Cols: raw.Cols, Bands: raw.Bands / 2}
	n := out.Rows * out.Cols * out.Bands
	switch src := raw.Data.(type) {
	case []float32:
		dst := make([]complex64, n)
		for i := range dst {
			dst[i] = complex(src[2*i], src[2*i+1])
		}
		out.Data = dst
	case []float64:
		dst := make([]complex128, n)
		for i := range dst {
			dst[i] = complex(src[2*i], src[2*i+1])
		}
		out.Data = dst
	default:
		return nil, fmt.Errorf("%w: cannot pair %s bands", core.ErrTypeMismatch, raw.Kind())
	}
	return out, nil
}

// splitBands unfolds complex samples into interleaved (re, im) bands of the
// given float kind, narrowing or widening the complex width as needed.
func splitBands(a *core.Array, kind core.Kind) (*core.Array, error) {
	n := a.Rows * a.Cols * a.Bands
	out := &core.Array{Rows: a.Rows, Cols: a.Cols, Bands: 2 * a.Bands}
	switch kind {
	case core.Float32:
		dst := make([]float32, 2*n)
		switch src := a.Data.(type) {
		case []complex64:
			for i := 0; i < n; i++ {
				dst[2*i], dst[2*i+1] = real(src[i]), imag(src[i])
			}
		case []complex128:
			for i := 0; i < n; i++ {
				c := complex64(src[i])
				dst[2*i], dst[2*i+1] = real(c), imag(c)
			}
		}
		out.Data = dst
	case core.Float64:
		dst := make([]float64, 2*n)
		switch src := a.Data.(type) {
		case []complex64:
			for i := 0; i < n; i++ {
				c := complex128(src[i])
				dst[2*i], dst[2*i+1] = real(c), imag(c)
			}
		case []complex128:
			for i := 0; i < n; i++ {
				dst[2*i], dst[2*i+1] = real(src[i]), imag(src[i])
			}
		}
		out.Data = dst
	default:
		return nil, fmt.Errorf("%w: cannot split complex data into %s bands", core.ErrConfig, kind)
	}
	return out, nil
}
