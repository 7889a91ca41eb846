package pool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// WorkerPool fans the independent slices of one kernel call out to a fixed
// set of goroutines. T is the slice descriptor and R its partial result.
type WorkerPool[T any, R any] struct {
	conf *workerPoolConfig
}

// NewWorkerPool creates a pool. Without options it runs GOMAXPROCS workers
// and buffers one slice per worker.
func NewWorkerPool[T any, R any](opts ...WorkerPoolOption) *WorkerPool[T, R] {
	return &WorkerPool[T, R]{
		conf: createConfig(opts...),
	}
}

// WorkerCount reports how many workers Process starts at most.
func (wp *WorkerPool[T, R]) WorkerCount() int {
	return wp.conf.workerCount
}

// Process runs processFn over every slice and returns the partial results in
// input order. The first error, panic or cancellation stops the other
// workers and is returned alongside whatever results were already in.
func (wp *WorkerPool[T, R]) Process(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if len(tasks) == 0 {
		return []R{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)

	taskChan := make(chan indexedTask[T], wp.conf.taskBuffer)
	resultChan := make(chan Result[R], len(tasks))

	numWorkers := min(wp.conf.workerCount, len(tasks))
	for i := range numWorkers {
		g.Go(func() error {
			return wp.worker(ctx, i, taskChan, resultChan, processFn)
		})
	}

	g.Go(func() error {
		defer close(taskChan)
		for idx, task := range tasks {
			select {
			case taskChan <- indexedTask[T]{index: idx, task: task}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	results := make([]R, len(tasks))
	var collectionErr error
	var collectionWg sync.WaitGroup
	collectionWg.Add(1)

	go func() {
		defer collectionWg.Done()
		for result := range resultChan {
			if result.Error != nil {
				collectionErr = result.Error
				continue
			}
			if result.Index >= 0 && result.Index < len(results) {
				results[result.Index] = result.Value
			}
		}
	}()

	err := g.Wait()
	close(resultChan)
	collectionWg.Wait()

	if err != nil {
		return results, err
	}
	return results, collectionErr
}
