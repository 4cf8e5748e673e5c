//go:build linux

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr sets Linux-specific process attributes on cmd.
// Setpgid places the server in its own process group so Terminate can signal
// the whole tree. Pdeathsig makes the kernel deliver SIGTERM to the server
// if the desktop client dies without running its shutdown hooks, preventing
// orphaned backend processes.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
