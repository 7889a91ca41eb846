// Package cpu binds the calling goroutine to a single processor core.
package cpu

import (
	"errors"
	"runtime"
)

// ErrPinningUnsupported is returned by PinCurrentThread on platforms without
// a thread affinity API.
var ErrPinningUnsupported = errors.New("cpu: thread pinning not supported on " + runtime.GOOS)

// coreFor maps any worker id onto [0, NumCPU).
func coreFor(workerID int) int {
	n := runtime.NumCPU()
	core := workerID % n
	if core < 0 {
		core += n
	}
	return core
}

// SetupWorkerAffinity is a convenience function that locks the goroutine
// to an OS thread and pins it to the core derived from workerID.
// Pinning failures are ignored; the goroutine stays locked to its thread.
// Returns a cleanup function that should be deferred.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	_, _ = PinCurrentThread(workerID)

	return func() {
		runtime.UnlockOSThread()
	}
}
