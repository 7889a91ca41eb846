// Command stressloop keeps the CPU busy with a fixed bundle of compute
// kernels until interrupted.
package main

import "github.com/tebeka/atexit"

func main() {
	if err := Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
