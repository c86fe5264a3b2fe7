// Package util provides common utility functions and constants used across the
// sshpad application. This package is intentionally kept dependency-free
// (no imports from other internal/* packages) to serve as a shared foundation
// without introducing circular dependencies.
package util

import "time"

const (
	// StepDelay is the pause inserted between consecutive simulated-input
	// sequences (for example between typing a credential and starting the
	// next automation action). The receiving shell offers no readiness
	// handshake — this delay is the only accommodation for it, which is why
	// the automation engine is best-effort by contract.
	// Used by: internal/automation/engine.go and internal/session/launcher.go.
	StepDelay = 100 * time.Millisecond

	// EscalateDelay is the longer pause between typing the superuser-switch
	// command and typing the credential that answers its password prompt.
	// su takes noticeably longer to present its prompt than a plain shell
	// does between commands, hence the separate constant.
	// Used by: internal/automation/engine.go (EscalatePrivilege).
	EscalateDelay = 500 * time.Millisecond

	// ClipboardTTL is how long a sensitive value may live on the system
	// clipboard before the detached expiry helper overwrites it with empty
	// content. The clear fires even if the copying process already exited.
	// Used by: internal/clipboard/guard.go and the hidden clipboard-expire
	// command in internal/cli/root.go.
	ClipboardTTL = 10 * time.Second

	// TypeKeyDelay is the per-keystroke delay (in milliseconds) passed to the
	// simulated-input tool. Typing at full speed drops characters when the
	// focused terminal echoes slowly, so a small constant delay is applied
	// to every typed string.
	// Used by: internal/typist/typist.go.
	TypeKeyDelay = 25
)
