package stress

import (
	"errors"
	"time"

	"github.com/utkarsh5026/stressloop/internal/sysinfo"
)

// ErrNotIdle is returned by Run on a driver that was already started.
var ErrNotIdle = errors.New("stress: driver is not idle")

// State is the lifecycle state of a Driver.
type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Kernel identifies one of the workloads run every iteration.
type Kernel int

const (
	KernelFibonacci Kernel = iota
	KernelPrimes
	KernelMatrix
)

// AllKernels lists the kernels in execution order.
var AllKernels = []Kernel{KernelFibonacci, KernelPrimes, KernelMatrix}

func (k Kernel) String() string {
	switch k {
	case KernelFibonacci:
		return "fibonacci"
	case KernelPrimes:
		return "primes"
	case KernelMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// KernelResult is the outcome of one kernel run.
type KernelResult struct {
	Iteration uint64
	Kernel    Kernel
	// Param is the kernel input: Fibonacci depth, prime limit or matrix size.
	Param int
	// Value is the Fibonacci number or the prime count. Unused for matrix.
	Value   uint64
	Elapsed time.Duration
}

// IterationReport summarises one full pass over all kernels.
type IterationReport struct {
	Iteration uint64
	Kernels   []KernelResult
	Elapsed   time.Duration
	Memory    sysinfo.MemorySample
}

// Reporter receives progress from the driver. Calls are serialized and
// never happen after Stopped.
type Reporter interface {
	IterationStarted(iteration uint64)
	KernelStarted(iteration uint64, k Kernel, param int)
	KernelFinished(r KernelResult)
	IterationFinished(r IterationReport)
	Stopped(iterations uint64)
}
