// Package main is the entry point for the sshpad binary.
//
// sshpad is a terminal launcher for SSH sessions: it reads a small CSV host
// inventory, lets the operator pick a host through a fuzzy finder, and either
// opens an interactive session, types post-connect automation into it, or
// copies the host credential to the clipboard with a timed auto-clear.
//
// Usage:
//
//	sshpad -c    # pick a host and connect
//	sshpad -x    # pick a host and connect through the configured proxy
//	sshpad -P    # pick a host and copy its password to the clipboard
//	sshpad -r    # pick a host, then pick one automation action to run
//
// The flag-driven command surface is constructed in internal/cli. This file
// simply wires it up and handles top-level error reporting.
package main

import (
	"fmt"
	"os"

	"sshpad/internal/cli"
)

func main() {
	// Build the root Cobra command, which routes each mode flag to its
	// handler and prints usage when no mode is requested.
	cmd := cli.NewRootCommand()

	// Execute the resolved command. Cobra handles argument parsing,
	// flag validation, and help/usage output automatically. Any error
	// returned by a RunE handler is printed to stderr and the process
	// exits with a non-zero status code.
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
