// Package automation executes simulated-keystroke actions against the
// currently focused terminal.
//
// Every action that types something sensitive or disruptive is guarded by its
// own Confirm gate; the operator can decline any single step without aborting
// the rest of a sequence. There is no synchronization with the receiving
// shell beyond fixed delays — the engine is advisory, best-effort automation
// by design, and it never assumes exclusive ownership of the focused window.
package automation

import (
	"fmt"
	"time"

	"sshpad/internal/typist"
)

// ConfirmFunc is the injected confirm gate: it presents a binary
// Confirm/Cancel prompt and reports the operator's answer.
type ConfirmFunc func(prompt string) bool

// PickFunc is the injected option picker used for the color palette.
type PickFunc func(prompt string, options []string) (string, bool)

// Color is one palette entry mapping a display name to its ANSI code.
type Color struct {
	Name string
	Code string
}

// Palette is the fixed prompt-color palette offered by RecolorPrompt.
var Palette = []Color{
	{"Red", "31"},
	{"Green", "32"},
	{"Yellow", "33"},
	{"Blue", "34"},
	{"Magenta", "35"},
	{"Cyan", "36"},
	{"White", "37"},
}

// ColorWhite is the palette key used by the post-connect sequence.
const ColorWhite = "White"

const superuserCommand = "su -"

// Engine runs the four automation actions through an injected typist,
// confirm gate, and picker. The zero value is not useful; use New.
type Engine struct {
	typist        typist.Typist
	confirm       ConfirmFunc
	pick          PickFunc
	stepDelay     time.Duration
	escalateDelay time.Duration
}

// New creates an automation engine. stepDelay separates consecutive typed
// sequences; escalateDelay separates the superuser-switch command from the
// credential that answers its prompt.
func New(ty typist.Typist, confirm ConfirmFunc, pick PickFunc, stepDelay, escalateDelay time.Duration) *Engine {
	return &Engine{
		typist:        ty,
		confirm:       confirm,
		pick:          pick,
		stepDelay:     stepDelay,
		escalateDelay: escalateDelay,
	}
}

// typeLine types text followed by an Enter keystroke.
func (e *Engine) typeLine(text string) error {
	if err := e.typist.Type(text); err != nil {
		return err
	}
	return e.typist.Press(typist.EnterKey)
}

// TypeCredential types the secret and presses Enter.
// Returns ran=false when the operator declines; that is not an error.
func (e *Engine) TypeCredential(secret string) (bool, error) {
	if !e.confirm("Type password into the focused window?") {
		return false, nil
	}
	if err := e.typeLine(secret); err != nil {
		return false, err
	}
	return true, nil
}

// EscalatePrivilege types the superuser-switch command, waits for its
// password prompt, then types the secret. The two lines are never reordered
// or interleaved; the pause between them is the only concession to the
// receiving shell's readiness.
func (e *Engine) EscalatePrivilege(secret string) (bool, error) {
	if !e.confirm("Escalate privilege (su -) in the focused window?") {
		return false, nil
	}
	if err := e.typeLine(superuserCommand); err != nil {
		return false, err
	}
	time.Sleep(e.escalateDelay)
	if err := e.typeLine(secret); err != nil {
		return false, err
	}
	return true, nil
}

// RecolorPrompt types a PS1 assignment embedding the chosen palette color.
// When color is empty the operator picks one from the palette; cancelling
// that picker declines the action.
//
// Precondition: a non-empty color must be one of the Palette names. Flows in
// this program only pass palette-sourced keys, so an unknown name is a caller
// bug and is reported as an error rather than handled.
func (e *Engine) RecolorPrompt(color string) (bool, error) {
	if !e.confirm("Recolor the prompt in the focused window?") {
		return false, nil
	}
	if color == "" {
		names := make([]string, len(Palette))
		for i, c := range Palette {
			names[i] = c.Name
		}
		chosen, ok := e.pick("Prompt color: ", names)
		if !ok {
			return false, nil
		}
		color = chosen
	}
	code, ok := colorCode(color)
	if !ok {
		return false, fmt.Errorf("unknown prompt color %q", color)
	}
	if err := e.typeLine(promptCommand(code)); err != nil {
		return false, err
	}
	return true, nil
}

// ClearScreen types the clear command. Clearing is harmless, so it is the one
// action without a confirm gate.
func (e *Engine) ClearScreen() (bool, error) {
	if err := e.typeLine("clear"); err != nil {
		return false, err
	}
	return true, nil
}

// PostConnect runs the full post-connect sequence: credential entry,
// privilege escalation, a white prompt, and a clear screen. Each step keeps
// its own confirm gate, so declining one does not skip the rest. Steps are
// separated by the fixed step delay.
func (e *Engine) PostConnect(secret string) error {
	if _, err := e.TypeCredential(secret); err != nil {
		return err
	}
	time.Sleep(e.stepDelay)
	if _, err := e.EscalatePrivilege(secret); err != nil {
		return err
	}
	time.Sleep(e.stepDelay)
	if _, err := e.RecolorPrompt(ColorWhite); err != nil {
		return err
	}
	time.Sleep(e.stepDelay)
	if _, err := e.ClearScreen(); err != nil {
		return err
	}
	return nil
}

func colorCode(name string) (string, bool) {
	for _, c := range Palette {
		if c.Name == name {
			return c.Code, true
		}
	}
	return "", false
}

func promptCommand(code string) string {
	return fmt.Sprintf(`export PS1="\[\e[1;%sm\][\u@\h \W]\$ \[\e[0m\]"`, code)
}
