package proc

import (
	"errors"
	"io/fs"
	"os/exec"
	"syscall"
)

// Exit statuses reported for conditions that never reach a program.
const (
	StatusSuccess     = 0
	StatusFailure     = 1
	StatusUsage       = 2
	StatusNoExec      = 126
	StatusNotFound    = 127
	statusSignalShift = 128
)

// ExitStatus converts the error returned by waiting on a process into a shell
// exit status. Processes killed by a signal report 128 plus the signal.
func ExitStatus(err error) int {
	if err == nil {
		return StatusSuccess
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return StatusFailure
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return statusSignalShift + int(ws.Signal())
	}
	return exitErr.ExitCode()
}

// LookupStatus is the status for a program that could not be started
// because of err.
func LookupStatus(err error) int {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return StatusNoExec
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return StatusNotFound
	default:
		return StatusFailure
	}
}
