package utils

import "fmt"

// RasterError attaches the failing operation to an underlying cause.
type RasterError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *RasterError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error. It returns nil for a nil cause.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &RasterError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *RasterError) Unwrap() error {
	return e.Cause
}
