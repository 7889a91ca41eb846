// Package pool provides a small generic worker pool used to spread the
// inner loops of a compute kernel across goroutines.
//
// The primary type is WorkerPool[T, R], a configurable pool of workers
// which process tasks of type T and return results of type R. The pool
// supports context-aware processing, panic recovery, optional CPU pinning
// and configurable worker and buffer sizes via functional options.
//
// # Basic Usage
//
//	ctx := context.Background()
//	spans := []int{0, 1, 2, 3}
//	p := NewWorkerPool[int, int](WithWorkerCount(4))
//	results, err := p.Process(ctx, spans, func(ctx context.Context, s int) (int, error) {
//	    return s * 2, nil
//	})
//
// # Configuration Options
//
//   - WithWorkerCount(n): Set number of concurrent workers (default: GOMAXPROCS)
//   - WithTaskBuffer(n): Set task channel buffer size (default: worker count)
//   - WithCPUPinning(): Lock each worker to an OS thread pinned to one core
//
// # Error Handling
//
// The pool uses fail-fast semantics: when any worker encounters an error,
// processing stops and the error is returned. Panic recovery is built-in,
// converting panics to errors with stack traces to prevent worker crashes.
package pool
