package pool

import "errors"

var (
	// ErrWorkerPanic wraps a panic recovered inside a task.
	ErrWorkerPanic = errors.New("pool: worker panic")
)
