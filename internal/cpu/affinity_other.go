//go:build !linux && !darwin && !windows

package cpu

// PinCurrentThread is not implemented for this platform.
func PinCurrentThread(workerID int) (int, error) {
	return 0, ErrPinningUnsupported
}
