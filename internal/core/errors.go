package core

import "errors"

// Error kinds shared by the internal packages. The root package re-exports
// them; callers match with errors.Is.
var (
	ErrConstruction = errors.New("construction failed")
	ErrConfig       = errors.New("invalid configuration")
	ErrRange        = errors.New("window out of range")
	ErrTypeMismatch = errors.New("element type mismatch")
	ErrClosed       = errors.New("already closed")
)
