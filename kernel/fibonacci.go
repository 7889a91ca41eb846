package kernel

import "fmt"

// Fibonacci returns the n-th Fibonacci number using naive double recursion.
// Running time is exponential in n. Values beyond n = 93 overflow uint64.
func Fibonacci(n int) (uint64, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: fibonacci(%d)", ErrNegativeInput, n)
	}
	return fib(n), nil
}

func fib(n int) uint64 {
	if n <= 1 {
		return uint64(n)
	}
	return fib(n-1) + fib(n-2)
}
