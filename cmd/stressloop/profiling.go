package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/tebeka/atexit"

	"github.com/utkarsh5026/stressloop/internal/report"
)

// setupProfiling starts CPU profiling and schedules the heap profile. Both
// are finished by atexit handlers, so they run when the process exits.
func setupProfiling(w io.Writer, cpuProfile, memProfile string) error {
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile) // #nosec G304 -- path comes from the user
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("starting CPU profile: %w", err)
		}

		_, _ = fmt.Fprintf(w, "CPU profiling enabled, writing to: %s\n", cpuProfile)

		atexit.Register(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}

	if memProfile != "" {
		atexit.Register(func() {
			writeHeapProfile(w, memProfile)
		})
	}

	return nil
}

func writeHeapProfile(w io.Writer, path string) {
	f, err := os.Create(path) // #nosec G304 -- path comes from the user
	if err != nil {
		_, _ = report.Red.Fprintf(w, "Error creating memory profile: %v\n", err)
		return
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			_, _ = report.Red.Fprintf(w, "Error closing memory profile file: %v\n", err)
		}
	}(f)

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_, _ = report.Red.Fprintf(w, "Error writing memory profile: %v\n", err)
	}
}
