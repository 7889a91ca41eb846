package kernel

import "errors"

var (
	// ErrNegativeInput is returned when a kernel receives a negative size or index.
	ErrNegativeInput = errors.New("kernel: negative input")

	// ErrDimensionMismatch indicates operands that are not square matrices
	// of the same dimension.
	ErrDimensionMismatch = errors.New("kernel: dimension mismatch")
)
