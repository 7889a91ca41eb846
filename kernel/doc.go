// Package kernel holds the compute workloads driven by the stress loop.
//
// Every kernel is a pure function of its inputs and deliberately naive:
// Fibonacci recurses without memoization, prime counting uses trial division
// and matrix multiplication is the textbook triple loop. The point is to burn
// CPU, not to be fast.
//
// Parallel offers the same prime and matrix kernels split across a
// pool.WorkerPool. It produces identical results; only wall time changes.
package kernel
