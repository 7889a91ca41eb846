package pool

import "context"

// ProcessFunc computes one slice of a kernel, such as a band of matrix rows
// or a chunk of the prime range. A non-nil error stops the remaining slices.
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// Result carries one slice's value back to the collector. Index is the
// slice's position in the input, so partial sums land in order.
type Result[R any] struct {
	Value R
	Error error
	Index int
}

type indexedTask[T any] struct {
	task  T
	index int
}
