// Package compose merges interleaved raw bands into domain samples on read
// and splits domain samples back into raw bands on write.
package compose

import (
	"fmt"

	"github.com/scigolib/bip/internal/core"
)

// Mode selects the composition policy.
type Mode int

// Composition modes.
const (
	// None passes raw bands through unchanged.
	None Mode = iota
	// Transform delegates to caller-supplied functions.
	Transform
	// AdjacentPair treats bands 2k and 2k+1 as the real and imaginary
	// parts of one complex sample of the paired width.
	AdjacentPair
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Transform:
		return "transform"
	case AdjacentPair:
		return "adjacent"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "none", "transform" or "adjacent".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "none", "false":
		return None, nil
	case "transform":
		return Transform, nil
	case "adjacent", "adjacent-pair", "pair", "true":
		return AdjacentPair, nil
	default:
		return None, fmt.Errorf("unknown complex mode %q", s)
	}
}

// TransformFunc maps an array between its raw and domain representations.
type TransformFunc func(*core.Array) (*core.Array, error)

// Config describes how bands are composed.
type Config struct {
	Mode Mode
	// Read maps raw arrays to domain arrays of kind Domain.
	Read TransformFunc
	// Write maps domain arrays to raw arrays of the declared raw type.
	Write TransformFunc
	// Domain is the asserted element kind produced by Read.
	Domain core.Kind
}

// Direction tells New which half of a Transform must be present.
type Direction int

// Directions.
const (
	Reading Direction = iota
	Writing
)

// Composer applies one Config to arrays of a declared raw type.
type Composer struct {
	cfg   Config
	raw   core.DataType
	bands int
}

// New validates cfg against the raw type. bands is the declared band count
// before doubling. Incompatible pairings fail with core.ErrConfig.
func New(cfg Config, raw core.DataType, bands int, dir Direction) (*Composer, error) {
	if bands < 1 {
		return nil, fmt.Errorf("%w: band count must be at least 1, got %d", core.ErrConfig, bands)
	}
	if !raw.Kind.Valid() {
		return nil, fmt.Errorf("%w: invalid raw type %s", core.ErrConfig, raw.Kind)
	}

	switch cfg.Mode {
	case None:
	case AdjacentPair:
		if _, ok := core.ComplexPair(raw.Kind); !ok {
			return nil, fmt.Errorf("%w: adjacent-pair composition needs a float32 or float64 raw type, got %s",
				core.ErrConfig, raw.Kind)
		}
	case Transform:
		if raw.Kind.IsComplex() {
			return nil, fmt.Errorf("%w: transform composition needs a real raw type, got %s",
				core.ErrConfig, raw.Kind)
		}
		if dir == Reading && cfg.Read == nil {
			return nil, fmt.Errorf("%w: transform composition without a read function", core.ErrConfig)
		}
		if dir == Reading && !cfg.Domain.Valid() {
			return nil, fmt.Errorf("%w: transform composition without a domain type", core.ErrConfig)
		}
		if dir == Writing && cfg.Write == nil {
			return nil, fmt.Errorf("%w: transform composition without a write function", core.ErrConfig)
		}
	default:
		return nil, fmt.Errorf("%w: unknown complex mode %d", core.ErrConfig, int(cfg.Mode))
	}

	return &Composer{cfg: cfg, raw: raw, bands: bands}, nil
}

// Mode returns the configured mode.
func (c *Composer) Mode() Mode {
	return c.cfg.Mode
}

// RawBands returns the number of bands stored per pixel on disk. Any
// composition doubles the declared count.
func (c *Composer) RawBands() int {
	if c.cfg.Mode == None {
		return c.bands
	}
	return 2 * c.bands
}

// Compose converts a raw array into the domain representation.
func (c *Composer) Compose(raw *core.Array) (*core.Array, error) {
	switch c.cfg.Mode {
	case AdjacentPair:
		return pairBands(raw)
	case Transform:
		out, err := c.cfg.Read(raw)
		if err != nil {
			return nil, fmt.Errorf("read transform: %w", err)
		}
		if err := checkOutput(out, c.cfg.Domain, raw.Rows, raw.Cols, -1); err != nil {
			return nil, fmt.Errorf("read transform: %w", err)
		}
		return out.Contiguous(), nil
	default:
		return raw, nil
	}
}

// Decompose converts a domain array into raw bands of the declared raw type.
// It fails with core.ErrTypeMismatch before anything is written.
func (c *Composer) Decompose(a *core.Array) (*core.Array, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	switch c.cfg.Mode {
	case AdjacentPair:
		if !a.Kind().IsComplex() {
			return nil, fmt.Errorf("%w: adjacent-pair writer expects complex64 or complex128 data, got %s",
				core.ErrTypeMismatch, a.Kind())
		}
		if a.Bands != c.bands {
			return nil, fmt.Errorf("%w: array has %d bands, raster declares %d", core.ErrTypeMismatch, a.Bands, c.bands)
		}
		return splitBands(a.Contiguous(), c.raw.Kind)
	case Transform:
		out, err := c.cfg.Write(a.Contiguous())
		if err != nil {
			return nil, fmt.Errorf("write transform: %w", err)
		}
		if err := checkOutput(out, c.raw.Kind, a.Rows, a.Cols, c.RawBands()); err != nil {
			return nil, fmt.Errorf("write transform: %w", err)
		}
		return out.Contiguous(), nil
	default:
		if err := checkOutput(a, c.raw.Kind, a.Rows, a.Cols, c.RawBands()); err != nil {
			return nil, err
		}
		return a.Contiguous(), nil
	}
}

// checkOutput verifies kind and shape. bands < 0 skips the band check.
func checkOutput(a *core.Array, kind core.Kind, rows, cols, bands int) error {
	if a == nil {
		return fmt.Errorf("%w: nil array", core.ErrTypeMismatch)
	}
	if a.Kind() != kind {
		return fmt.Errorf("%w: expected %s data, got %s", core.ErrTypeMismatch, kind, a.Kind())
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Rows != rows || a.Cols != cols {
		return fmt.Errorf("%w: expected %dx%d array, got %dx%d", core.ErrTypeMismatch, rows, cols, a.Rows, a.Cols)
	}
	if bands >= 0 && a.Bands != bands {
		return fmt.Errorf("%w: expected %d bands, got %d", core.ErrTypeMismatch, bands, a.Bands)
	}
	return nil
}
