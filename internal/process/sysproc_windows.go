//go:build windows

package process

import "os/exec"

// configureSysProcAttr is a no-op on Windows. Process groups work
// differently there; termination falls back to killing the direct child.
func configureSysProcAttr(_ *exec.Cmd) {}
