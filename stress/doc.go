// Package stress runs the load generator loop.
//
// A Driver owns the iteration counter and a periodic trigger. Each firing
// runs the three kernels in order (Fibonacci, prime counting, matrix
// multiplication) and hands timings to a Reporter.
//
// # Scheduling
//
// Iterations are executed by exactly one worker goroutine, so two iteration
// bodies never overlap. The trigger is a token bucket holding at most one
// firing: when an iteration outlasts the period the missed firings collapse
// into a single pending one and the next iteration starts right away. The
// loop therefore runs back to back under load without building a backlog.
//
// # Lifecycle
//
//	Idle --Run--> Running --ctx done--> Stopped
//
// Stopped is terminal. Once it is entered no further reports are emitted,
// even if the worker is still finishing a kernel.
package stress
