// Package picker presents interactive choices to the operator.
//
// The primary implementation shells out to an external fuzzy-filter command
// (fzf by default) so the operator keeps the matching behavior they already
// know. When that command is not installed, New falls back to a small built-in
// Bubble Tea picker so the launcher still works on a bare machine.
//
// Cancellation is a first-class outcome, not an error: every flow that asks
// for a pick must treat ok=false as "abort the rest of the pipeline silently".
package picker

import (
	"os"
	"os/exec"
	"strings"
)

// Picker asks the operator to choose one of the offered options.
// ok is false when the operator cancels or submits nothing.
type Picker interface {
	Pick(prompt string, options []string) (choice string, ok bool)
}

const (
	optionConfirm = "Confirm"
	optionCancel  = "Cancel"
)

// Confirm presents a binary Confirm/Cancel gate through the given picker.
// Cancel and empty response both read as declined.
func Confirm(p Picker, prompt string) bool {
	choice, ok := p.Pick(prompt, []string{optionConfirm, optionCancel})
	return ok && choice == optionConfirm
}

// ExecPicker drives an external fuzzy-filter process. Options are written to
// its stdin one per line; the chosen line comes back on stdout. A non-zero
// exit (how fzf and rofi report Esc) is a cancellation.
type ExecPicker struct {
	Command string
	Args    []string
}

// defaultExecArgs are used when the config carries no explicit picker args.
// The {prompt} placeholder is substituted per call.
var defaultExecArgs = []string{"--prompt={prompt} ", "--height=40%", "--reverse"}

// NewExec builds an ExecPicker for the given command and args.
func NewExec(command string, args []string) *ExecPicker {
	if len(args) == 0 && command == "fzf" {
		args = defaultExecArgs
	}
	return &ExecPicker{Command: command, Args: args}
}

// New returns the external picker when its binary is on PATH, otherwise the
// built-in fallback.
func New(command string, args []string) Picker {
	if _, err := exec.LookPath(command); err == nil {
		return NewExec(command, args)
	}
	return NewBuiltin()
}

// BuildArgs resolves the argv for one invocation, substituting the {prompt}
// placeholder. Split out from Pick so argument composition is testable
// without a terminal.
func (p *ExecPicker) BuildArgs(prompt string) []string {
	out := make([]string, 0, len(p.Args))
	for _, a := range p.Args {
		out = append(out, strings.ReplaceAll(a, "{prompt}", prompt))
	}
	return out
}

// Pick runs the external picker over the options. An empty option set is an
// immediate "none" — there is nothing to choose, so the interactive process
// is never started.
func (p *ExecPicker) Pick(prompt string, options []string) (string, bool) {
	if len(options) == 0 {
		return "", false
	}
	cmd := exec.Command(p.Command, p.BuildArgs(prompt)...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n") + "\n")
	// The picker draws on the controlling tty itself; only the chosen line
	// arrives on stdout.
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	choice := strings.TrimSpace(string(out))
	if choice == "" {
		return "", false
	}
	return choice, true
}
