package stress

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/stressloop/internal/config"
	"github.com/utkarsh5026/stressloop/internal/cpu"
	"github.com/utkarsh5026/stressloop/internal/sysinfo"
	"github.com/utkarsh5026/stressloop/kernel"
	"github.com/utkarsh5026/stressloop/pool"
)

// Option customises a Driver.
type Option func(*Driver)

// WithSampler sets the memory sampler used for iteration reports.
// Without one, only heap usage is reported.
func WithSampler(s *sysinfo.Sampler) Option {
	return func(d *Driver) {
		d.sampler = s
	}
}

// Driver runs iterations on a single worker goroutine until its context ends.
type Driver struct {
	cfg      config.Config
	reporter Reporter
	sampler  *sysinfo.Sampler
	parallel *kernel.Parallel // nil runs the serial kernels
	rng      *rand.Rand       // used only by the worker

	iteration atomic.Uint64

	mu    sync.Mutex // guards state and serializes reporter calls
	state State

	done chan struct{}
}

// New validates cfg and builds an idle driver.
func New(cfg config.Config, reporter Reporter, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reporter == nil {
		return nil, fmt.Errorf("stress: nil reporter")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := &Driver{
		cfg:      cfg,
		reporter: reporter,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- matrix contents need no crypto rand
		done:     make(chan struct{}),
	}

	if cfg.Workers > 1 {
		var poolOpts []pool.WorkerPoolOption
		if cfg.Pin {
			poolOpts = append(poolOpts, pool.WithCPUPinning())
		}
		d.parallel = kernel.NewParallel(cfg.Workers, poolOpts...)
	}

	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Iterations returns how many iterations have been started.
func (d *Driver) Iterations() uint64 {
	return d.iteration.Load()
}

// Done is closed once the worker goroutine has exited.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Run arms the trigger and blocks until ctx is done, then moves the driver
// to Stopped and reports it. It returns nil on cancellation and an error only
// if an iteration fails. Run does not wait for a kernel that is still
// executing; use Done for that.
func (d *Driver) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.state != Idle {
		d.mu.Unlock()
		return ErrNotIdle
	}
	d.state = Running
	d.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := newTrigger(d.cfg.Period)
	errCh := make(chan error, 1)
	go func() {
		defer close(d.done)
		errCh <- d.loop(ctx, t)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	d.stop()
	return err
}

// loop is the single worker. It returns nil once ctx is done.
func (d *Driver) loop(ctx context.Context, t *trigger) error {
	if d.cfg.Pin {
		defer cpu.SetupWorkerAffinity(0)()
	}

	for {
		if err := t.wait(ctx); err != nil {
			return nil
		}
		if _, err := d.runIteration(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (d *Driver) stop() {
	d.mu.Lock()
	if d.state == Stopped {
		d.mu.Unlock()
		return
	}
	d.state = Stopped
	d.reporter.Stopped(d.iteration.Load())
	d.mu.Unlock()
	debugLog("driver stopped after %d iterations", d.iteration.Load())
}

// emit calls fn on the reporter unless the driver has stopped or ctx is done.
func (d *Driver) emit(ctx context.Context, fn func(Reporter)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Running || ctx.Err() != nil {
		return false
	}
	fn(d.reporter)
	return true
}

// runIteration executes all kernels once. Cancellation is checked between
// kernels; a kernel already running is allowed to finish.
func (d *Driver) runIteration(ctx context.Context) (IterationReport, error) {
	n := d.iteration.Add(1)
	start := time.Now()
	d.emit(ctx, func(r Reporter) { r.IterationStarted(n) })

	report := IterationReport{
		Iteration: n,
		Kernels:   make([]KernelResult, 0, len(AllKernels)),
	}

	for _, k := range AllKernels {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := d.runKernel(ctx, n, k)
		if err != nil {
			return report, fmt.Errorf("iteration %d: %s: %w", n, k, err)
		}
		report.Kernels = append(report.Kernels, res)
	}

	report.Elapsed = time.Since(start)
	report.Memory = d.sampler.Sample()
	d.emit(ctx, func(r Reporter) { r.IterationFinished(report) })

	debugLog("iteration %d finished in %v", n, report.Elapsed)
	return report, nil
}

func (d *Driver) runKernel(ctx context.Context, n uint64, k Kernel) (KernelResult, error) {
	param := d.paramFor(k)
	d.emit(ctx, func(r Reporter) { r.KernelStarted(n, k, param) })

	start := time.Now()
	value, err := d.execute(ctx, k, param)
	if err != nil {
		return KernelResult{}, err
	}

	res := KernelResult{
		Iteration: n,
		Kernel:    k,
		Param:     param,
		Value:     value,
		Elapsed:   time.Since(start),
	}
	d.emit(ctx, func(r Reporter) { r.KernelFinished(res) })
	return res, nil
}

func (d *Driver) paramFor(k Kernel) int {
	switch k {
	case KernelFibonacci:
		return d.cfg.FibonacciN
	case KernelPrimes:
		return d.cfg.PrimeLimit
	default:
		return d.cfg.MatrixSize
	}
}

func (d *Driver) execute(ctx context.Context, k Kernel, param int) (uint64, error) {
	switch k {
	case KernelFibonacci:
		return kernel.Fibonacci(param)

	case KernelPrimes:
		if d.parallel == nil {
			return uint64(kernel.CountPrimes(param)), nil // #nosec G115 -- count is non-negative
		}
		count, err := d.parallel.CountPrimes(ctx, param)
		return uint64(count), err // #nosec G115 -- count is non-negative

	case KernelMatrix:
		return 0, d.multiplyRandom(ctx, param)

	default:
		return 0, fmt.Errorf("stress: unknown kernel %d", k)
	}
}

// multiplyRandom builds two fresh random matrices and multiplies them.
// The product is discarded.
func (d *Driver) multiplyRandom(ctx context.Context, size int) error {
	a, err := kernel.NewRandomMatrix(size, d.rng)
	if err != nil {
		return err
	}
	b, err := kernel.NewRandomMatrix(size, d.rng)
	if err != nil {
		return err
	}

	if d.parallel == nil {
		_, err = kernel.Multiply(a, b)
	} else {
		_, err = d.parallel.Multiply(ctx, a, b)
	}
	return err
}
