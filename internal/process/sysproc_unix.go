//go:build unix && !linux

package process

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr places the server in its own process group so
// Terminate can signal the whole tree. Pdeathsig (parent-death signal) is a
// Linux-only kernel feature and is not available here.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
