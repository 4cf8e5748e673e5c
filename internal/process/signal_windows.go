//go:build windows

package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// signalTerm force-kills the process. Windows has no SIGTERM delivery for
// unattached processes, so the terminate and kill steps collapse into one.
func signalTerm(p *os.Process) error {
	return p.Kill()
}

// signalKill force-kills the process.
func signalKill(p *os.Process) error {
	return p.Kill()
}

// expectSignalExit interprets an error from cmd.Wait after the process was
// killed. Any exit status is expected on Windows, since a killed process
// reports a generic non-zero exit code.
func expectSignalExit(err error, name string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
