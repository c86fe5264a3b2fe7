//go:build windows

package clipboard

import "os/exec"

// detach is a no-op on Windows: started processes are not tied to the
// parent's lifetime there.
func detach(cmd *exec.Cmd) {}
