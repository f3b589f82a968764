//go:build windows

package main

import (
	"os"
	"syscall"
)

func watchedSignals() []os.Signal {
	return []os.Signal{
		os.Interrupt,
		syscall.SIGTERM,
	}
}

func isSuspend(os.Signal) bool {
	return false
}
