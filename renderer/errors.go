package renderer

import (
	"errors"
	"fmt"

	"render-kernel/gpu"
)

var (
	// ErrContextMismatch is returned when a resource created by one Context
	// is used with another.
	ErrContextMismatch = errors.New("resource belongs to a different context")
	ErrDestroyed       = errors.New("resource destroyed")
	ErrInvalidTarget   = errors.New("invalid attachment target")
	ErrDriverStopped   = errors.New("frame driver stopped")
)

// MissingUniformError reports a uniform the program declares but the
// supplied UniformValueMap does not contain.
type MissingUniformError struct {
	Program string
	Name    string
}

func (e *MissingUniformError) Error() string {
	return fmt.Sprintf("program %q: missing value for uniform %q", e.Program, e.Name)
}

// UniformTypeError reports a value whose Go type cannot be uploaded to the
// uniform's declared type.
type UniformTypeError struct {
	Program string
	Name    string
	Want    gpu.UniformType
	Value   any
}

func (e *UniformTypeError) Error() string {
	return fmt.Sprintf("program %q: uniform %q is %v, cannot set %T", e.Program, e.Name, e.Want, e.Value)
}

// MissingAttributeError reports a vertex input the program declares but the
// geometry does not provide.
type MissingAttributeError struct {
	Program string
	Name    string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("program %q: geometry has no attribute %q", e.Program, e.Name)
}
