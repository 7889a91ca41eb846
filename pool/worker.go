package pool

import (
	"context"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/stressloop/internal/cpu"
)

// worker drains taskChan until it closes or ctx ends. A failing slice is
// reported and then ends this worker.
func (wp *WorkerPool[T, R]) worker(
	ctx context.Context,
	workerID int,
	taskChan <-chan indexedTask[T],
	resultChan chan<- Result[R],
	processFn ProcessFunc[T, R],
) error {
	if wp.conf.pinCPU {
		defer cpu.SetupWorkerAffinity(workerID)()
	}

	for {
		select {
		case task, ok := <-taskChan:
			if !ok {
				return nil
			}
			result, err := processWithRecovery(ctx, task.task, processFn)
			select {
			case resultChan <- Result[R]{Value: result, Error: err, Index: task.index}:
			case <-ctx.Done():
				return ctx.Err()
			}
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// processWithRecovery turns a panic in processFn into an ErrWorkerPanic error
// carrying the stack.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrWorkerPanic, r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
