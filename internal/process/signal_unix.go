//go:build unix

package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// signalTerm delivers SIGTERM to the process group. Signalling the group
// instead of the single process reaches workers the server forked itself,
// which plain Process.Kill on the direct child would leave running.
func signalTerm(p *os.Process) error {
	return unix.Kill(-p.Pid, unix.SIGTERM)
}

// signalKill delivers SIGKILL to the process group.
func signalKill(p *os.Process) error {
	return unix.Kill(-p.Pid, unix.SIGKILL)
}

// expectSignalExit interprets an error from cmd.Wait after a termination
// signal was sent. Exit statuses caused by SIGTERM or SIGKILL are expected
// and treated as successful stops.
func expectSignalExit(err error, name string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			sig := status.Signal()
			if sig == unix.SIGTERM || sig == unix.SIGKILL {
				return nil
			}
		}
	}
	return fmt.Errorf("%s: %w", name, err)
}
