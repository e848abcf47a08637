package bip

import (
	"fmt"

	"github.com/scigolib/bip/internal/compose"
	"github.com/scigolib/bip/internal/writer"
)

// CreateMode specifies how to create a new raster file.
type CreateMode int

const (
	// CreateTruncate creates a new file, overwriting if it exists.
	// This is the default mode, equivalent to os.Create() behavior.
	CreateTruncate CreateMode = iota

	// CreateExclusive creates a new file, failing if it already exists.
	// Useful when you want to ensure a file doesn't get accidentally overwritten.
	CreateExclusive
)

// CreateOption customizes Create.
type CreateOption func(*createOptions)

type createOptions struct {
	header []byte
}

// WithHeader writes h at offset 0. It must fit within the descriptor's
// data offset.
func WithHeader(h []byte) CreateOption {
	return func(o *createOptions) { o.header = h }
}

// Create makes a zero-filled raster file sized for desc: Offset header
// bytes followed by the full raster payload. The result can be opened
// with OpenWriter and Open.
//
// Example:
//
//	desc := bip.Descriptor{Rows: 512, Cols: 512, Type: bip.DataType{Kind: bip.Float32}}
//	if err := bip.Create("out.bip", desc, bip.CreateTruncate); err != nil {
//	    return err
//	}
func Create(name string, desc Descriptor, mode CreateMode, opts ...CreateOption) error {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	var writerMode writer.CreateMode
	switch mode {
	case CreateTruncate:
		writerMode = writer.ModeTruncate
	case CreateExclusive:
		writerMode = writer.ModeExclusive
	default:
		return constructionError(name, fmt.Errorf("invalid create mode: %d", mode))
	}

	// Only the layout matters here; transforms are checked by OpenWriter.
	layoutOnly := desc.withDefaults()
	if layoutOnly.Complex == ComplexTransform {
		layoutOnly.Complex = ComplexNone
		layoutOnly.Bands *= 2
	}
	_, l, err := layoutOnly.prepare(compose.Writing)
	if err != nil {
		return constructionError(name, err)
	}
	if int64(len(o.header)) > l.Offset {
		return constructionError(name, fmt.Errorf("header of %d bytes overlaps data at offset %d", len(o.header), l.Offset))
	}
	end, _ := l.End()

	fw, err := writer.NewFileWriter(name, writerMode)
	if err != nil {
		return constructionError(name, err)
	}

	// Ensure cleanup on error
	var cleanupOnError = true
	defer func() {
		if cleanupOnError {
			_ = fw.Close()
		}
	}()

	if _, err := fw.WriteAt(o.header, 0); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := fw.Reserve(end); err != nil {
		return fmt.Errorf("failed to size raster: %w", err)
	}
	if err := fw.Flush(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}

	cleanupOnError = false
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}
