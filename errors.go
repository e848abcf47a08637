package bip

import (
	"errors"
	"fmt"

	"github.com/scigolib/bip/internal/core"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrConstruction: bad path, permissions, invalid shape or incompatible
	// configuration. No object is produced.
	ErrConstruction = core.ErrConstruction
	// ErrConfig: incompatible complex mode and raw type. Always reported
	// together with ErrConstruction.
	ErrConfig = core.ErrConfig
	// ErrRange: a window falls outside the raster. Fatal for that call only.
	ErrRange = core.ErrRange
	// ErrTypeMismatch: array or transform output type disagrees with the
	// declared type. No bytes are written for a rejected write.
	ErrTypeMismatch = core.ErrTypeMismatch
	// ErrClosed: the chipper or writer was already closed.
	ErrClosed = core.ErrClosed
	// ErrPartialOutput: a writer scope failed; the output file may be
	// incomplete or corrupt.
	ErrPartialOutput = errors.New("output may be partially written")
)

func constructionError(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConstruction, name, err)
}
