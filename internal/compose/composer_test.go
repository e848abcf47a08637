package compose

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/bip/internal/core"
)

func dt(k core.Kind) core.DataType {
	return core.DataType{Kind: k, Order: binary.LittleEndian}
}

func TestNew_Validation(t *testing.T) {
	double := func(a *core.Array) (*core.Array, error) { return a, nil }

	tests := []struct {
		name    string
		cfg     Config
		raw     core.Kind
		bands   int
		dir     Direction
		wantErr bool
	}{
		{"none int16", Config{Mode: None}, core.Int16, 1, Reading, false},
		{"pair float32", Config{Mode: AdjacentPair}, core.Float32, 1, Reading, false},
		{"pair float64", Config{Mode: AdjacentPair}, core.Float64, 3, Writing, false},
		{"pair int16", Config{Mode: AdjacentPair}, core.Int16, 1, Reading, true},
		{"pair complex64", Config{Mode: AdjacentPair}, core.Complex64, 1, Reading, true},
		{"transform complex64", Config{Mode: Transform, Read: double, Domain: core.Complex64}, core.Complex64, 1, Reading, true},
		{"transform int16 reading", Config{Mode: Transform, Read: double, Domain: core.Complex64}, core.Int16, 1, Reading, false},
		{"transform without read", Config{Mode: Transform, Write: double}, core.Int16, 1, Reading, true},
		{"transform without domain", Config{Mode: Transform, Read: double}, core.Int16, 1, Reading, true},
		{"transform without write", Config{Mode: Transform, Read: double}, core.Int16, 1, Writing, true},
		{"transform writing", Config{Mode: Transform, Write: double}, core.Uint16, 1, Writing, false},
		{"zero bands", Config{Mode: None}, core.Uint8, 0, Reading, true},
		{"invalid raw", Config{Mode: None}, core.KindInvalid, 1, Reading, true},
		{"unknown mode", Config{Mode: Mode(9)}, core.Uint8, 1, Reading, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, dt(tt.raw), tt.bands, tt.dir)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, core.ErrConfig))
				require.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
		})
	}
}

func TestRawBands(t *testing.T) {
	c, err := New(Config{Mode: None}, dt(core.Float32), 3, Reading)
	require.NoError(t, err)
	require.Equal(t, 3, c.RawBands())

	c, err = New(Config{Mode: AdjacentPair}, dt(core.Float32), 3, Reading)
	require.NoError(t, err)
	require.Equal(t, 6, c.RawBands())
	require.Equal(t, AdjacentPair, c.Mode())
}

func TestAdjacentPair_Compose(t *testing.T) {
	c, err := New(Config{Mode: AdjacentPair}, dt(core.Float32), 1, Reading)
	require.NoError(t, err)

	raw := &core.Array{Rows: 1, Cols: 2, Bands: 2, Data: []float32{1, 2, 3, 4}}
	out, err := c.Compose(raw)
	require.NoError(t, err)
	require.Equal(t, core.Complex64, out.Kind())
	require.Equal(t, 1, out.Bands)
	require.Equal(t, []complex64{complex(1, 2), complex(3, 4)}, out.Data)

	c, err = New(Config{Mode: AdjacentPair}, dt(core.Float64), 1, Reading)
	require.NoError(t, err)
	out, err = c.Compose(&core.Array{Rows: 1, Cols: 1, Bands: 2, Data: []float64{-1.5, 0.25}})
	require.NoError(t, err)
	require.Equal(t, []complex128{complex(-1.5, 0.25)}, out.Data)
}

func TestAdjacentPair_OddBands(t *testing.T) {
	_, err := pairBands(&core.Array{Rows: 1, Cols: 1, Bands: 3, Data: []float32{1, 2, 3}})
	require.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestAdjacentPair_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  core.Kind
		in   interface{}
	}{
		{"complex64 into float32", core.Float32, []complex64{complex(1, -1), complex(2.5, 3), complex(0, 7), complex(-4, 0)}},
		{"complex128 into float32", core.Float32, []complex128{complex(1, -1), complex(2.5, 3), complex(0, 7), complex(-4, 0)}},
		{"complex128 into float64", core.Float64, []complex128{complex(1e10, -1e-10), complex(2, 3), complex(0, 7), complex(-4, 0)}},
		{"complex64 into float64", core.Float64, []complex64{complex(1, -1), complex(2.5, 3), complex(0, 7), complex(-4, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(Config{Mode: AdjacentPair}, dt(tt.raw), 2, Writing)
			require.NoError(t, err)
			r, err := New(Config{Mode: AdjacentPair}, dt(tt.raw), 2, Reading)
			require.NoError(t, err)

			a := &core.Array{Rows: 1, Cols: 2, Bands: 2, Data: tt.in}
			raw, err := w.Decompose(a)
			require.NoError(t, err)
			require.Equal(t, tt.raw, raw.Kind())
			require.Equal(t, 4, raw.Bands)

			back, err := r.Compose(raw)
			require.NoError(t, err)
			require.Equal(t, 2, back.Bands)

			// Values are exact in both widths.
			pair, _ := core.ComplexPair(tt.raw)
			require.Equal(t, pair, back.Kind())
			switch got := back.Data.(type) {
			case []complex64:
				for i := range got {
					require.Equal(t, complex64(complexAt(tt.in, i)), got[i])
				}
			case []complex128:
				for i := range got {
					require.Equal(t, complexAt(tt.in, i), got[i])
				}
			}
		})
	}
}

func complexAt(data interface{}, i int) complex128 {
	switch d := data.(type) {
	case []complex64:
		return complex128(d[i])
	case []complex128:
		return d[i]
	}
	return 0
}

func TestAdjacentPair_DecomposeRejects(t *testing.T) {
	c, err := New(Config{Mode: AdjacentPair}, dt(core.Float32), 1, Writing)
	require.NoError(t, err)

	_, err = c.Decompose(&core.Array{Rows: 1, Cols: 1, Bands: 1, Data: []float32{1}})
	require.ErrorIs(t, err, core.ErrTypeMismatch)

	_, err = c.Decompose(&core.Array{Rows: 1, Cols: 1, Bands: 2, Data: []complex64{1, 2}})
	require.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestNone_Decompose(t *testing.T) {
	c, err := New(Config{Mode: None}, dt(core.Uint8), 1, Writing)
	require.NoError(t, err)

	_, err = c.Decompose(&core.Array{Rows: 2, Cols: 2, Bands: 1, Data: make([]float64, 4)})
	require.ErrorIs(t, err, core.ErrTypeMismatch)

	_, err = c.Decompose(&core.Array{Rows: 1, Cols: 2, Bands: 2, Data: make([]uint8, 4)})
	require.ErrorIs(t, err, core.ErrTypeMismatch)

	a := &core.Array{Rows: 2, Cols: 2, Bands: 1, Data: []uint8{1, 2, 3, 4}}
	out, err := c.Decompose(a)
	require.NoError(t, err)
	require.Equal(t, a.Data, out.Data)
}

func TestTransform(t *testing.T) {
	// i16 (re, im) pairs scaled by 1/2 into complex64.
	read := func(a *core.Array) (*core.Array, error) {
		src := a.Data.([]int16)
		out := core.NewArray(core.Complex64, a.Rows, a.Cols, a.Bands/2)
		dst := out.Data.([]complex64)
		for i := range dst {
			dst[i] = complex(float32(src[2*i])/2, float32(src[2*i+1])/2)
		}
		return out, nil
	}
	write := func(a *core.Array) (*core.Array, error) {
		src := a.Data.([]complex64)
		out := core.NewArray(core.Int16, a.Rows, a.Cols, 2*a.Bands)
		dst := out.Data.([]int16)
		for i, v := range src {
			dst[2*i], dst[2*i+1] = int16(real(v)*2), int16(imag(v)*2)
		}
		return out, nil
	}
	cfg := Config{Mode: Transform, Read: read, Write: write, Domain: core.Complex64}

	r, err := New(cfg, dt(core.Int16), 1, Reading)
	require.NoError(t, err)
	w, err := New(cfg, dt(core.Int16), 1, Writing)
	require.NoError(t, err)

	a := &core.Array{Rows: 1, Cols: 2, Bands: 1, Data: []complex64{complex(1, -2), complex(3.5, 4)}}
	raw, err := w.Decompose(a)
	require.NoError(t, err)
	require.Equal(t, []int16{2, -4, 7, 8}, raw.Data)

	back, err := r.Compose(raw)
	require.NoError(t, err)
	require.Equal(t, a.Data, back.Data)
}

func TestTransform_OutputKindChecked(t *testing.T) {
	wrong := func(a *core.Array) (*core.Array, error) {
		return core.NewArray(core.Float64, a.Rows, a.Cols, 1), nil
	}
	cfg := Config{Mode: Transform, Read: wrong, Write: wrong, Domain: core.Complex64}

	r, err := New(cfg, dt(core.Int16), 1, Reading)
	require.NoError(t, err)
	_, err = r.Compose(core.NewArray(core.Int16, 1, 1, 2))
	require.ErrorIs(t, err, core.ErrTypeMismatch)

	w, err := New(cfg, dt(core.Int16), 1, Writing)
	require.NoError(t, err)
	_, err = w.Decompose(core.NewArray(core.Complex64, 1, 1, 1))
	require.ErrorIs(t, err, core.ErrTypeMismatch)
}

func TestTransform_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	fail := func(*core.Array) (*core.Array, error) { return nil, boom }
	cfg := Config{Mode: Transform, Read: fail, Write: fail, Domain: core.Complex64}

	r, err := New(cfg, dt(core.Int16), 1, Reading)
	require.NoError(t, err)
	_, err = r.Compose(core.NewArray(core.Int16, 1, 1, 2))
	require.ErrorIs(t, err, boom)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":          None,
		"none":      None,
		"transform": Transform,
		"adjacent":  AdjacentPair,
		"true":      AdjacentPair,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
		if in != "" && in != "true" {
			require.Equal(t, in, got.String())
		}
	}
	_, err := ParseMode("sideways")
	require.Error(t, err)
}
