//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals also covers SIGHUP so a closed terminal stops a long batch.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
