package report

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/utkarsh5026/stressloop/stress"
)

// progress forwards every event to the wrapped reporter and draws a
// per-iteration bar with one step per kernel.
type progress struct {
	inner stress.Reporter
	w     io.Writer
	bar   *progressbar.ProgressBar
}

// WithProgress decorates inner with a progress bar written to w.
func WithProgress(inner stress.Reporter, w io.Writer) stress.Reporter {
	return &progress{inner: inner, w: w}
}

func (p *progress) IterationStarted(n uint64) {
	p.inner.IterationStarted(n)
	p.bar = progressbar.NewOptions(len(stress.AllKernels),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(fmt.Sprintf("Iteration %d", n)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *progress) KernelStarted(n uint64, k stress.Kernel, param int) {
	p.inner.KernelStarted(n, k, param)
	if p.bar != nil {
		p.bar.Describe(fmt.Sprintf("Iteration %d: %s", n, k))
	}
}

func (p *progress) KernelFinished(res stress.KernelResult) {
	p.inner.KernelFinished(res)
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progress) IterationFinished(rep stress.IterationReport) {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
	p.inner.IterationFinished(rep)
}

func (p *progress) Stopped(n uint64) {
	if p.bar != nil {
		_ = p.bar.Exit()
		p.bar = nil
	}
	p.inner.Stopped(n)
}
