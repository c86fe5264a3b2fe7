package util

import (
	"fmt"
	"strconv"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// ValidatePortString checks that s parses as a port in the valid range
// (1-65535). Blank values are the caller's concern; pass the effective port.
func ValidatePortString(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port %q is not numeric", s)
	}
	if p < MinPort || p > MaxPort {
		return fmt.Errorf("port %d out of range (must be %d-%d)", p, MinPort, MaxPort)
	}
	return nil
}
