// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"errors"
	"fmt"

	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/pkg/types"
)

const (
	// IntentRun dispatches the command to a router or handler.
	IntentRun Intent = iota
	// IntentHelp shows the plugin's help listing.
	IntentHelp
	// IntentNotHandled tells the caller to try the next plugin.
	IntentNotHandled
)

// ErrUsage is the sentinel error wrapped by UsageError.
var ErrUsage = errors.New("usage error")

type (
	// Intent is what the resolver decided to do with a token.
	Intent int

	// Invocation is a resolved command.
	Invocation struct {
		// Token is the command as typed (after dropping a leading plugin name).
		Token string
		// Command is the canonical command after alias substitution.
		Command string
		// Args are the remaining arguments.
		Args []string
		// Intent is the resolver's decision.
		Intent Intent
	}

	// UsageError reports a command token that looks like a flag. It is
	// fatal: the host exits instead of showing help.
	UsageError struct {
		Token string
	}
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentRun:
		return "run"
	case IntentHelp:
		return "help"
	case IntentNotHandled:
		return "not-handled"
	default:
		return fmt.Sprintf("Intent(%d)", int(i))
	}
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("command cannot start with '-': %s", e.Token)
}

// Unwrap returns ErrUsage for errors.Is() compatibility.
func (e *UsageError) Unwrap() error { return ErrUsage }

// Resolve canonicalizes the typed command:
//
//  1. a token equal to the plugin name is dropped and the args shift left
//  2. a token starting with "-" is a *UsageError
//  3. no token asks for help
//  4. aliases are replaced by their canonical command
//  5. nothing left on a pass-through plugin is not handled
//  6. "help" asks for help
func (p *Plugin) Resolve(command string, args []string) (Invocation, error) {
	if p.desc.Name != "" && command == p.desc.Name.String() {
		p.logger.Debug("shifting arguments, first equals plugin name", "command", command, "args", args)
		command = ""
		if len(args) > 0 {
			command, args = args[0], args[1:]
		}
	}

	inv := Invocation{Token: command, Args: args}
	token := types.CommandName(command)

	if err := token.Validate(); err != nil {
		p.logger.Debug("rejecting flag-like command", "command", command)
		return inv, issue.NewErrorContext().
			WithOperation("resolve command").
			WithResource(command).
			WithIssue(issue.InvalidCommandId).
			WithSuggestion("Put the command name before any flags").
			Wrap(&UsageError{Token: command}).
			BuildError()
	}

	if token.IsEmpty() {
		p.logger.Debug("no command, displaying help")
		inv.Intent = IntentHelp
		return inv, nil
	}

	inv.Command = p.aliasTable().Resolve(command)
	if inv.Command != command {
		p.logger.Debug("alias resolved", "alias", command, "command", inv.Command)
	}

	if inv.Command == "" && p.desc.PassThrough {
		inv.Intent = IntentNotHandled
		return inv, nil
	}

	if types.CommandName(inv.Command).IsHelp() {
		inv.Intent = IntentHelp
		return inv, nil
	}

	inv.Intent = IntentRun
	return inv, nil
}
