//go:build windows

package main

import "os"

// Only os.Interrupt is delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
