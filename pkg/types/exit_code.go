// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"strconv"
)

// Exit codes of the plugmux process. Script handlers add their own status.
const (
	ExitSuccess ExitCode = 0
	// ExitFailure covers configuration, manifest and handler errors.
	ExitFailure ExitCode = 1
	// ExitUsage is used for unknown flags and commands starting with "-".
	ExitUsage ExitCode = 2
)

// ErrInvalidExitCode is wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status. Scripts report one, and Go
	// handlers or routers may return one as their value.
	ExitCode int

	// InvalidExitCodeError reports a status a process cannot exit with.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

func (e *InvalidExitCodeError) Error() string {
	return "exit code " + e.Value.String() + " is outside 0-255"
}

func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects codes outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// ExitCodeOf extracts the exit code carried by a handler or router value.
// Only ExitCode and int values carry one. A code the process cannot exit
// with becomes ExitFailure.
func ExitCodeOf(v any) (ExitCode, bool) {
	var c ExitCode
	switch v := v.(type) {
	case ExitCode:
		c = v
	case int:
		c = ExitCode(v)
	default:
		return ExitSuccess, false
	}
	if c.Validate() != nil {
		return ExitFailure, true
	}
	return c, true
}
