//go:build darwin

package cpu

// PinCurrentThread is unavailable on macOS; the thread stays locked but unpinned.
func PinCurrentThread(workerID int) (int, error) {
	return 0, ErrPinningUnsupported
}
