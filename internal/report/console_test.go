package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/stressloop/internal/config"
	"github.com/utkarsh5026/stressloop/internal/sysinfo"
	"github.com/utkarsh5026/stressloop/stress"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestConsole_Banner(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	c := NewConsole(&buf)

	host := sysinfo.Host{LogicalCPUs: 8, Platform: "linux", KernelArch: "x86_64"}
	c.Banner(host, config.Default(), "run-123")

	out := buf.String()
	assert.Contains(t, out, "CPU Stress Test Starting...\n")
	assert.Contains(t, out, "CPU Cores: 8\n")
	assert.Contains(t, out, "Platform: linux\n")
	assert.Contains(t, out, "run-123")
	assert.Contains(t, out, "300x300")
	assert.Contains(t, out, "Starting infinite CPU stress test...")
	assert.Contains(t, out, "Press Ctrl+C to stop")
}

func TestConsole_IterationLines(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.IterationStarted(3)
	c.KernelStarted(3, stress.KernelFibonacci, 40)
	c.KernelFinished(stress.KernelResult{Iteration: 3, Kernel: stress.KernelFibonacci, Param: 40, Value: 102334155, Elapsed: 812 * time.Millisecond})
	c.KernelStarted(3, stress.KernelPrimes, 100000)
	c.KernelFinished(stress.KernelResult{Iteration: 3, Kernel: stress.KernelPrimes, Param: 100000, Value: 9592, Elapsed: 15 * time.Millisecond})
	c.KernelStarted(3, stress.KernelMatrix, 300)
	c.KernelFinished(stress.KernelResult{Iteration: 3, Kernel: stress.KernelMatrix, Param: 300, Elapsed: 40 * time.Millisecond})
	c.IterationFinished(stress.IterationReport{
		Iteration: 3,
		Elapsed:   867 * time.Millisecond,
		Memory:    sysinfo.MemorySample{HeapAlloc: 5 << 20},
	})

	want := "\n--- Iteration 3 ---\n" +
		"Running Fibonacci(40)...\n" +
		"Fibonacci(40) = 102334155 (812ms)\n" +
		"Counting primes up to 100000...\n" +
		"Primes found: 9592 (15ms)\n" +
		"Matrix multiplication (300x300)...\n" +
		"Matrix done (40ms)\n" +
		"Total iteration time: 867ms\n" +
		"Memory usage: 5MB\n"
	assert.Equal(t, want, buf.String())
}

func TestConsole_MemoryWithRSS(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.IterationFinished(stress.IterationReport{
		Memory: sysinfo.MemorySample{HeapAlloc: 2 << 20, RSS: 30 << 20},
	})
	assert.Contains(t, buf.String(), "Memory usage: 2MB (rss 30MB)\n")
}

func TestConsole_StoppedAndError(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Stopped(4)
	c.Error(errors.New("boom"))
	assert.Equal(t, "\nStress test stopped.\nError: boom\n", buf.String())
}

func TestWithProgress_ForwardsEvents(t *testing.T) {
	withoutColor(t)
	var out, bar bytes.Buffer
	r := WithProgress(NewConsole(&out), &bar)

	r.IterationStarted(1)
	for _, k := range stress.AllKernels {
		r.KernelStarted(1, k, 10)
		r.KernelFinished(stress.KernelResult{Iteration: 1, Kernel: k, Param: 10})
	}
	r.IterationFinished(stress.IterationReport{Iteration: 1})
	r.Stopped(1)

	text := out.String()
	require.Contains(t, text, "--- Iteration 1 ---")
	assert.Contains(t, text, "Fibonacci(10) = 0 (0ms)")
	assert.Contains(t, text, "Matrix done (0ms)")
	assert.Contains(t, text, "Stress test stopped.")
	assert.NotContains(t, text, "Iteration 1: fibonacci", "bar output must stay off the report writer")
}

func TestWithProgress_StopMidIteration(t *testing.T) {
	withoutColor(t)
	var out, bar bytes.Buffer
	r := WithProgress(NewConsole(&out), &bar)

	r.IterationStarted(1)
	r.KernelStarted(1, stress.KernelFibonacci, 10)
	r.Stopped(1)

	assert.Contains(t, out.String(), "Stress test stopped.")
}
