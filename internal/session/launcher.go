// Package session launches interactive remote-shell sessions for selected
// inventory records.
//
// This package is responsible for launching SSH processes — it does NOT
// implement the SSH protocol itself. It shells out to the system's "ssh"
// binary with the record's resolved user, address, and port, so the session
// inherits the operator's full SSH configuration (keys, agents, known hosts)
// without reimplementing any of it. When proxy routing is requested, the same
// argv is wrapped with the configured proxy command as a prefix.
//
// Alongside the foreground session, Connect fires the automation engine's
// post-connect sequence as a background task. The two race by design: nothing
// synchronizes the simulated keystrokes with the shell becoming ready beyond
// the engine's fixed delays, so the automation is advisory rather than
// guaranteed. Each automation step still has its own confirm gate.
//
// Security note: all SSH arguments are passed via exec.Command's argv (not
// via shell interpolation), which prevents injection from record fields that
// contain shell metacharacters.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"sshpad/internal/automation"
	"sshpad/internal/model"
)

// Launcher combines the shell client invocation with the background
// automation sequence.
type Launcher struct {
	engine *automation.Engine
	proxy  string
}

// NewLauncher creates a launcher. proxyCommand is the binary prepended to the
// ssh argv when proxy routing is requested (proxychains by default).
func NewLauncher(engine *automation.Engine, proxyCommand string) *Launcher {
	return &Launcher{engine: engine, proxy: proxyCommand}
}

// EnsureSSHBinary checks that the "ssh" binary is available on the system
// PATH, so a missing client is reported clearly instead of failing later with
// a confusing exec error.
func EnsureSSHBinary() error {
	if _, err := exec.LookPath("ssh"); err != nil {
		return fmt.Errorf("ssh binary not found in PATH")
	}
	return nil
}

// BuildSSHArgs composes the ssh argv for a record. The port is resolved
// through the field accessor, which applies the 22 default for blank ports at
// this point of use.
//
// Example output: ["-p", "5432", "admin@10.0.0.5"]
func BuildSSHArgs(rec model.Record) []string {
	return []string{"-p", rec.Field(model.FieldPort), rec.Target()}
}

// BuildCommand resolves the binary and argv for the session, wrapping the ssh
// invocation with the proxy command when proxied is true. Split out from
// Connect so argument composition is testable without spawning anything.
func (l *Launcher) BuildCommand(rec model.Record, proxied bool) (string, []string) {
	args := BuildSSHArgs(rec)
	if proxied {
		return l.proxy, append([]string{"ssh"}, args...)
	}
	return "ssh", args
}

// Connect starts the post-connect automation in the background and blocks the
// foreground on an interactive SSH session in a pseudo-terminal.
//
// The automation goroutine is fire-and-forget: its failures are logged, never
// propagated, because by the time they happen the operator already owns the
// foreground session. The ctx parameter can be used to kill the session; the
// method otherwise blocks until the SSH process exits.
func (l *Launcher) Connect(ctx context.Context, rec model.Record, proxied bool) error {
	bin, args := l.BuildCommand(rec, proxied)
	cmd := exec.CommandContext(ctx, bin, args...)

	// Post-configure the new session from the background while ssh takes
	// the foreground. Advisory only: it races the session on purpose.
	go func() {
		if err := l.engine.PostConnect(rec.Credential); err != nil {
			slog.Warn("post-connect automation failed", "record", rec.Name, "error", err)
		}
	}()

	// Start the SSH process inside a PTY so it behaves like a real
	// interactive login (password prompts, line editing, resizes).
	f, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer f.Close()

	// Forward operator input into the PTY master. Runs in a goroutine
	// because io.Copy blocks until the PTY closes after process exit.
	go func() {
		_, _ = io.Copy(f, os.Stdin)
	}()

	// Forward session output to the operator's terminal; blocks until the
	// SSH process exits and the PTY master returns EOF.
	_, _ = io.Copy(os.Stdout, f)

	return cmd.Wait()
}
