package kernel

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/stressloop/pool"
)

// spansPerWorker oversubscribes each worker so uneven spans still balance.
const spansPerWorker = 4

// span is a half-open index range [lo, hi).
type span struct {
	lo, hi int
}

// Parallel runs the prime and matrix kernels with their outer loop split
// across a worker pool.
type Parallel struct {
	opts    []pool.WorkerPoolOption
	workers int
}

// NewParallel creates a Parallel runner with the given worker count.
// Extra pool options (for example pool.WithCPUPinning) are applied after it.
func NewParallel(workers int, opts ...pool.WorkerPoolOption) *Parallel {
	workers = max(workers, 1)
	return &Parallel{
		workers: workers,
		opts:    append([]pool.WorkerPoolOption{pool.WithWorkerCount(workers)}, opts...),
	}
}

// Workers returns the configured worker count.
func (p *Parallel) Workers() int {
	return p.workers
}

// CountPrimes returns the same value as CountPrimes(limit).
func (p *Parallel) CountPrimes(ctx context.Context, limit int) (int, error) {
	if limit < 2 {
		return 0, nil
	}
	// primes live in [2, limit], i.e. [2, limit+1)
	spans := splitRange(2, limit+1, p.workers*spansPerWorker)

	wp := pool.NewWorkerPool[span, int](p.opts...)
	counts, err := wp.Process(ctx, spans, func(_ context.Context, s span) (int, error) {
		return countPrimesIn(s.lo, s.hi-1), nil
	})
	if err != nil {
		return 0, fmt.Errorf("count primes: %w", err)
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}

// Multiply returns the same value as Multiply(a, b) with row bands computed
// concurrently. Bands write disjoint rows of the result.
func (p *Parallel) Multiply(ctx context.Context, a, b Matrix) (Matrix, error) {
	if err := validateSquarePair(a, b); err != nil {
		return nil, err
	}
	result, err := NewMatrix(a.Size())
	if err != nil {
		return nil, err
	}

	bands := splitRange(0, a.Size(), p.workers*spansPerWorker)
	wp := pool.NewWorkerPool[span, struct{}](p.opts...)
	_, err = wp.Process(ctx, bands, func(_ context.Context, s span) (struct{}, error) {
		multiplyRows(a, b, result, s.lo, s.hi)
		return struct{}{}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("multiply: %w", err)
	}
	return result, nil
}

// splitRange cuts [lo, hi) into at most n contiguous, non-empty spans.
func splitRange(lo, hi, n int) []span {
	total := hi - lo
	if total <= 0 {
		return nil
	}
	n = min(max(n, 1), total)

	spans := make([]span, 0, n)
	step, extra := total/n, total%n
	start := lo
	for i := range n {
		end := start + step
		if i < extra {
			end++
		}
		spans = append(spans, span{lo: start, hi: end})
		start = end
	}
	return spans
}
