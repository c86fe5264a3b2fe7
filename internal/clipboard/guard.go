// Package clipboard bounds the lifetime of sensitive text on the system
// clipboard.
//
// CopySensitive places a credential on the clipboard and immediately spawns a
// detached helper process — a re-exec of this binary's hidden
// clipboard-expire command — that sleeps for the configured window and then
// overwrites the clipboard with empty content. Running the clear in its own
// session means it fires even when the copying process has long exited, which
// is the normal case for the copy-password flow.
//
// The clipboard is a process-wide resource shared with everything else on the
// machine; no locking is attempted. If the operator copies something else
// inside the window, the expiry helper will blank that instead — a known race
// accepted in exchange for never leaving a credential behind.
package clipboard

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// ExpireCommand is the hidden CLI command name the spawned helper invokes.
const ExpireCommand = "clipboard-expire"

// Writer abstracts the system clipboard so tests can observe writes.
type Writer interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Guard copies values to the clipboard and schedules the auto-clear for
// sensitive ones.
type Guard struct {
	clip  Writer
	spawn func(ttl time.Duration) error
	ttl   time.Duration
}

// NewGuard creates a guard backed by the real system clipboard and the
// detached re-exec helper.
func NewGuard(ttl time.Duration) *Guard {
	return &Guard{clip: systemClipboard{}, spawn: spawnExpiry, ttl: ttl}
}

// CopySensitive writes value (trimmed of trailing newlines) to the clipboard
// and schedules the detached clear.
func (g *Guard) CopySensitive(value string) error {
	if err := g.clip.WriteAll(strings.TrimRight(value, "\n")); err != nil {
		return err
	}
	if err := g.spawn(g.ttl); err != nil {
		return fmt.Errorf("schedule clipboard clear: %w", err)
	}
	return nil
}

// CopyPlain writes a non-sensitive value with no expiry. Used by the
// describe flow for addresses.
func (g *Guard) CopyPlain(value string) error {
	return g.clip.WriteAll(strings.TrimRight(value, "\n"))
}

// spawnExpiry starts the detached helper process. The helper gets its own
// session (no controlling terminal, not in our process group) so it survives
// the parent's exit, and Release drops our handle so it is never waited on.
func spawnExpiry(ttl time.Duration) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, ExpireCommand, "--after", ttl.String())
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// ExpireAfter sleeps for the given duration and blanks the system clipboard.
// It is the body of the hidden clipboard-expire command and runs inside the
// detached helper process.
func ExpireAfter(after time.Duration) error {
	return expireAfter(systemClipboard{}, after)
}

func expireAfter(w Writer, after time.Duration) error {
	time.Sleep(after)
	return w.WriteAll("")
}
