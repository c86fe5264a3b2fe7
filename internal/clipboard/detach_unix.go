//go:build unix

package clipboard

import (
	"os/exec"
	"syscall"
)

// detach places the helper in its own session so it is not killed with the
// parent's process group and keeps running after the parent exits.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
