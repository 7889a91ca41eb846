//go:build linux

package cpu

import (
	"golang.org/x/sys/unix"
)

// PinCurrentThread pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread(). Returns the core used.
func PinCurrentThread(workerID int) (int, error) {
	core := coreFor(workerID)

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}
	return core, nil
}
