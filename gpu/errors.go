package gpu

import "errors"

var (
	// ErrUnavailable means no GPU connection could be made for the surface.
	ErrUnavailable = errors.New("gpu: connection unavailable")

	// ErrInvalidProgram is returned when binding a program that failed to
	// link or validate.
	ErrInvalidProgram = errors.New("gpu: invalid program")

	ErrIncompleteFramebuffer = errors.New("gpu: framebuffer incomplete")
)
