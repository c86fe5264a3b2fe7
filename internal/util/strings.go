package util

import "strings"

// DefaultString returns the fallback value if v is empty or consists entirely
// of whitespace; otherwise it returns v unchanged.
func DefaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// EmptyDash returns "-" if s is empty or consists entirely of whitespace;
// otherwise it returns s unchanged. Used by the --list and --describe output
// so optional fields (user, description) read as a visible placeholder
// instead of a blank cell.
func EmptyDash(s string) string {
	return DefaultString(s, "-")
}
