//go:build !windows

package main

import (
	"os"
	"syscall"
)

// watchedSignals are the signals that end the session. SIGHUP covers a
// closed terminal.
func watchedSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
		syscall.SIGQUIT,
		syscall.SIGTSTP,
	}
}

func isSuspend(sig os.Signal) bool {
	return sig == syscall.SIGTSTP
}
