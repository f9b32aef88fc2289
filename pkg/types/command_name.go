// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/plugmux/plugmux/pkg/platform"
)

const (
	// HelpCommand is the reserved command token that always displays help.
	HelpCommand CommandName = "help"

	flagPrefix = "-"
)

var (
	// ErrInvalidCommandName is the sentinel error wrapped by InvalidCommandNameError.
	ErrInvalidCommandName = errors.New("invalid command name")
	// ErrInvalidPluginName is the sentinel error wrapped by InvalidPluginNameError.
	ErrInvalidPluginName = errors.New("invalid plugin name")
)

type (
	// CommandName is a command token as typed by the user or as resolved
	// through an alias table. The zero value means "no command" and is valid:
	// it asks for help output.
	CommandName string

	// InvalidCommandNameError is returned when a CommandName looks like a flag.
	InvalidCommandNameError struct {
		Value CommandName
	}

	// PluginName identifies a plugin. It is the last segment of the
	// identifier the plugin was declared with ("@scope/tool" -> "tool").
	PluginName string

	// InvalidPluginNameError is returned when a PluginName contains a path
	// separator, surrounding whitespace or a Windows reserved name.
	InvalidPluginNameError struct {
		Value PluginName
	}
)

// String returns the string representation of the CommandName.
func (c CommandName) String() string { return string(c) }

// IsEmpty reports whether no command was given.
func (c CommandName) IsEmpty() bool { return c == "" }

// IsFlag reports whether the token starts with the flag prefix.
func (c CommandName) IsFlag() bool { return strings.HasPrefix(string(c), flagPrefix) }

// IsHelp reports whether the token is the reserved help command.
func (c CommandName) IsHelp() bool { return c == HelpCommand }

// Validate returns an error if the command token starts with "-".
func (c CommandName) Validate() error {
	if c.IsFlag() {
		return &InvalidCommandNameError{Value: c}
	}
	return nil
}

// Error implements the error interface for InvalidCommandNameError.
func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("invalid command name %q: commands cannot start with %q", e.Value, flagPrefix)
}

// Unwrap returns ErrInvalidCommandName for errors.Is() compatibility.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }

// PluginNameFromIdentifier derives the plugin name from a declared
// identifier, keeping only the last "/"-separated segment.
func PluginNameFromIdentifier(id string) PluginName {
	if id == "" {
		return ""
	}
	return PluginName(path.Base(strings.TrimRight(id, "/")))
}

// String returns the string representation of the PluginName.
func (p PluginName) String() string { return string(p) }

// Validate returns an error if the name contains a path separator,
// leading/trailing whitespace, or cannot name a directory on Windows.
// The zero value is valid (anonymous plugin).
func (p PluginName) Validate() error {
	s := string(p)
	if strings.ContainsAny(s, `/\`) || strings.TrimSpace(s) != s || platform.IsReservedName(s) {
		return &InvalidPluginNameError{Value: p}
	}
	return nil
}

// Error implements the error interface for InvalidPluginNameError.
func (e *InvalidPluginNameError) Error() string {
	return fmt.Sprintf("invalid plugin name %q: must be a single portable path segment without surrounding spaces", e.Value)
}

// Unwrap returns ErrInvalidPluginName for errors.Is() compatibility.
func (e *InvalidPluginNameError) Unwrap() error { return ErrInvalidPluginName }
