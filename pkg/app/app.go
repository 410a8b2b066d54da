// Package app is the seam between the cmd/ binaries and the processes they start.
// A binary loads its configuration, builds a Runner and hands it to Main, which
// owns the translation of the outcome into an exit code.
package app

import (
	"fmt"
	"io"
)

// Runner is a long-lived process. Run blocks until the process stops;
// a clean shutdown returns nil.
type Runner interface {
	Run() error
}

// Main runs r and returns the exit code for the binary called name.
// A failure is written to stderr.
func Main(name string, r Runner, stderr io.Writer) int {
	if r == nil {
		fmt.Fprintf(stderr, "%s: nothing to run\n", name)
		return 1
	}
	if err := r.Run(); err != nil {
		fmt.Fprintf(stderr, "%s exited with error: %v\n", name, err)
		return 1
	}
	return 0
}
