// Package report renders driver events as human readable console output.
package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/stressloop/internal/config"
	"github.com/utkarsh5026/stressloop/internal/sysinfo"
	"github.com/utkarsh5026/stressloop/stress"
)

// Color helpers shared by the console renderer.
var (
	Bold   = color.New(color.Bold)
	Green  = color.New(color.FgGreen)
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
)

// Console writes plain text lines for every driver event.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

var _ stress.Reporter = (*Console)(nil)

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Banner prints the startup header: detected host, run settings and the
// start notice.
func (c *Console) Banner(host sysinfo.Host, cfg config.Config, runID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.println(Bold, "CPU Stress Test Starting...")
	c.printf(nil, "CPU Cores: %d\n", host.LogicalCPUs)
	c.printf(nil, "Platform: %s\n", host.Platform)
	fmt.Fprintln(c.w)

	table := tablewriter.NewWriter(c.w)
	table.Header("Setting", "Value")
	_ = table.Append("Run ID", runID)
	_ = table.Append("Period", cfg.Period.String())
	_ = table.Append("Workers", fmt.Sprintf("%d", cfg.Workers))
	_ = table.Append("Pinned", fmt.Sprintf("%t", cfg.Pin))
	_ = table.Append("Fibonacci", fmt.Sprintf("%d", cfg.FibonacciN))
	_ = table.Append("Prime limit", fmt.Sprintf("%d", cfg.PrimeLimit))
	_ = table.Append("Matrix", fmt.Sprintf("%dx%d", cfg.MatrixSize, cfg.MatrixSize))
	if host.PlatformVersion != "" || host.KernelArch != "" {
		_ = table.Append("OS", fmt.Sprintf("%s %s", host.PlatformVersion, host.KernelArch))
	}
	if err := table.Render(); err != nil {
		c.printf(Red, "Error rendering settings table: %v\n", err)
	}

	c.println(Bold, "\nStarting infinite CPU stress test...")
	c.printf(Yellow, "Press Ctrl+C to stop\n\n")
}

// IterationStarted prints the iteration header.
func (c *Console) IterationStarted(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.printf(Bold, "\n--- Iteration %d ---\n", n)
}

// KernelStarted prints the notice shown before a kernel runs.
func (c *Console) KernelStarted(_ uint64, k stress.Kernel, param int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch k {
	case stress.KernelFibonacci:
		c.printf(Blue, "Running Fibonacci(%d)...\n", param)
	case stress.KernelPrimes:
		c.printf(Blue, "Counting primes up to %d...\n", param)
	case stress.KernelMatrix:
		c.printf(Blue, "Matrix multiplication (%dx%d)...\n", param, param)
	}
}

// KernelFinished prints the kernel result and its elapsed milliseconds.
func (c *Console) KernelFinished(res stress.KernelResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := millis(res.Elapsed)
	switch res.Kernel {
	case stress.KernelFibonacci:
		c.printf(nil, "Fibonacci(%d) = %d (%dms)\n", res.Param, res.Value, ms)
	case stress.KernelPrimes:
		c.printf(nil, "Primes found: %d (%dms)\n", res.Value, ms)
	case stress.KernelMatrix:
		c.printf(nil, "Matrix done (%dms)\n", ms)
	}
}

// IterationFinished prints the iteration total and memory usage.
func (c *Console) IterationFinished(rep stress.IterationReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.printf(Green, "Total iteration time: %dms\n", millis(rep.Elapsed))
	if rep.Memory.RSS > 0 {
		c.printf(nil, "Memory usage: %dMB (rss %dMB)\n", rep.Memory.HeapMB(), rep.Memory.RSSMB())
		return
	}
	c.printf(nil, "Memory usage: %dMB\n", rep.Memory.HeapMB())
}

// Stopped prints the stop notice.
func (c *Console) Stopped(uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.println(Yellow, "\nStress test stopped.")
}

// Error prints err in red.
func (c *Console) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.printf(Red, "Error: %v\n", err)
}

func (c *Console) printf(col *color.Color, format string, a ...any) {
	if col == nil {
		_, _ = fmt.Fprintf(c.w, format, a...)
		return
	}
	_, _ = col.Fprintf(c.w, format, a...)
}

func (c *Console) println(col *color.Color, a ...any) {
	_, _ = col.Fprintln(c.w, a...)
}

func millis(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return d.Milliseconds()
}
