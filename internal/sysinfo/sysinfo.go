// Package sysinfo reads the host facts shown in the startup banner and
// samples process memory after every iteration.
package sysinfo

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/process"
)

const bytesPerMB = 1024 * 1024

// ErrUnavailable is returned when a required host fact cannot be read.
var ErrUnavailable = errors.New("sysinfo: host information unavailable")

// Host describes the machine the load runs on.
type Host struct {
	LogicalCPUs     int
	Platform        string // operating system name, e.g. "linux"
	PlatformVersion string // distribution and version when known
	KernelArch      string
}

// Detect reads the logical CPU count and platform name. Both are required.
func Detect() (Host, error) {
	cores, err := cpu.Counts(true)
	if err != nil {
		return Host{}, fmt.Errorf("%w: cpu count: %v", ErrUnavailable, err)
	}
	if cores <= 0 {
		return Host{}, fmt.Errorf("%w: cpu count reported %d", ErrUnavailable, cores)
	}

	info, err := host.Info()
	if err != nil {
		return Host{}, fmt.Errorf("%w: platform: %v", ErrUnavailable, err)
	}
	if info.OS == "" {
		return Host{}, fmt.Errorf("%w: empty platform name", ErrUnavailable)
	}

	h := Host{
		LogicalCPUs: cores,
		Platform:    info.OS,
		KernelArch:  info.KernelArch,
	}
	if info.Platform != "" {
		h.PlatformVersion = info.Platform + " " + info.PlatformVersion
	}
	if h.KernelArch == "" {
		h.KernelArch = runtime.GOARCH
	}
	return h, nil
}

// MemorySample is a point-in-time view of process memory.
type MemorySample struct {
	HeapAlloc uint64 // bytes of live heap objects
	RSS       uint64 // resident set size in bytes, 0 when unknown
}

// HeapMB returns heap usage rounded to whole megabytes.
func (m MemorySample) HeapMB() int {
	return int(math.Round(float64(m.HeapAlloc) / bytesPerMB))
}

// RSSMB returns the resident set size rounded to whole megabytes.
func (m MemorySample) RSSMB() int {
	return int(math.Round(float64(m.RSS) / bytesPerMB))
}

// Sampler reads memory usage of the current process.
type Sampler struct {
	proc *process.Process
}

// NewSampler binds a sampler to the running process.
func NewSampler() (*Sampler, error) {
	p, err := process.NewProcess(int32(os.Getpid())) // #nosec G115 -- pids fit in int32
	if err != nil {
		return nil, fmt.Errorf("%w: process handle: %v", ErrUnavailable, err)
	}
	return &Sampler{proc: p}, nil
}

// Sample returns current heap usage and, when readable, resident set size.
// A nil Sampler still reports the heap.
func (s *Sampler) Sample() MemorySample {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	sample := MemorySample{HeapAlloc: ms.HeapAlloc}
	if s == nil || s.proc == nil {
		return sample
	}
	if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
		sample.RSS = mi.RSS
	}
	return sample
}
