// Package typist emits simulated keyboard input into the focused window.
//
// This package does not talk to the display server itself — it shells out to
// the system's simulated-input tool (xdotool by default), the same way the
// session launcher shells out to the system ssh binary. That keeps the
// launcher portable across whatever input stack the operator already has
// working, and it means sshpad never needs display-server permissions of its
// own.
//
// Two primitives cover everything the automation engine does:
//
//   - Type: send a literal string as keystrokes. A small per-key delay is
//     applied because full-speed synthetic typing drops characters when the
//     receiving terminal echoes slowly (remote shells especially).
//
//   - Press: send one discrete key by name (e.g. "Return").
//
// Security note: the typed text (which may be a credential) is passed via
// exec.Command's argv, never through a shell, so it is not subject to shell
// interpolation. It will still be visible in the process table for the
// fraction of a second the tool runs; that exposure is inherent to driving an
// external input tool and is accepted.
//
// There is no feedback channel: the target window is whatever currently has
// focus, and the tool cannot tell whether the keystrokes landed where the
// operator intended. Callers treat this as fire-and-forget, best-effort input.
package typist

import (
	"fmt"
	"os/exec"
	"strconv"

	"sshpad/internal/util"
)

// EnterKey is the key name for the Enter keystroke that terminates every
// typed command.
const EnterKey = "Return"

// Typist abstracts the simulated-input tool so the automation engine can be
// tested with a recording fake.
type Typist interface {
	// Type sends text as literal keystrokes to the focused window.
	Type(text string) error
	// Press sends a single named key press to the focused window.
	Press(key string) error
}

// ExecTypist drives the external simulated-input binary.
type ExecTypist struct {
	Command string
}

// New creates a typist for the given command ("xdotool" by default via config).
func New(command string) *ExecTypist {
	return &ExecTypist{Command: command}
}

// EnsureBinary checks that the simulated-input binary is available on PATH.
// Called by doctor so a missing tool is reported ahead of time instead of
// mid-automation.
func (t *ExecTypist) EnsureBinary() error {
	if _, err := exec.LookPath(t.Command); err != nil {
		return fmt.Errorf("%s binary not found in PATH", t.Command)
	}
	return nil
}

// TypeArgs composes the argv for typing literal text. Split out so argument
// composition is unit-testable without a display server.
//
// Example output: ["type", "--delay", "25", "--", "secret123"]
func (t *ExecTypist) TypeArgs(text string) []string {
	return []string{"type", "--delay", strconv.Itoa(util.TypeKeyDelay), "--", text}
}

// PressArgs composes the argv for a discrete key press.
//
// Example output: ["key", "Return"]
func (t *ExecTypist) PressArgs(key string) []string {
	return []string{"key", key}
}

// Type implements Typist.
func (t *ExecTypist) Type(text string) error {
	return exec.Command(t.Command, t.TypeArgs(text)...).Run()
}

// Press implements Typist.
func (t *ExecTypist) Press(key string) error {
	return exec.Command(t.Command, t.PressArgs(key)...).Run()
}
