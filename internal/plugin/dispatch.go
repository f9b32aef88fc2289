// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"context"
	"fmt"
	"os"

	"github.com/plugmux/plugmux/internal/helpdoc"
	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/internal/registry"
	"github.com/plugmux/plugmux/internal/render"
	"github.com/plugmux/plugmux/pkg/types"
)

const (
	// OutcomeHelp means the help listing was shown.
	OutcomeHelp Outcome = iota
	// OutcomeNotHandled means the plugin declined; try the next one.
	OutcomeNotHandled
	// OutcomeRouted means a router handled the invocation.
	OutcomeRouted
	// OutcomeHandled means a command handler ran.
	OutcomeHandled
	// OutcomeCommandHelp means a command's own markdown help was shown.
	OutcomeCommandHelp
	// OutcomeNotFound means no handler matched and help was shown instead.
	OutcomeNotFound
)

type (
	// Outcome says which dispatch branch ran.
	Outcome int

	// Result is the outcome of a dispatch plus the router or handler value,
	// passed through uninterpreted.
	Result struct {
		Outcome Outcome
		Value   any
	}

	// RunOption adjusts the local options of one RunCommand call.
	RunOption func(*registry.LocalOptions)
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeHelp:
		return "help"
	case OutcomeNotHandled:
		return "not-handled"
	case OutcomeRouted:
		return "routed"
	case OutcomeHandled:
		return "handled"
	case OutcomeCommandHelp:
		return "command-help"
	case OutcomeNotFound:
		return "not-found"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Handled reports whether the plugin consumed the invocation. Only
// OutcomeNotHandled lets a caller move on to the next plugin.
func (r Result) Handled() bool { return r.Outcome != OutcomeNotHandled }

// WithDynamic sets the free-form segment between plugin and command.
func WithDynamic(dynamic string) RunOption {
	return func(o *registry.LocalOptions) { o.Dynamic = dynamic }
}

// WithLocalOptions replaces the local options passed to routers.
func WithLocalOptions(lo registry.LocalOptions) RunOption {
	return func(o *registry.LocalOptions) { *o = lo }
}

// RunCommand resolves command and dispatches it. Local options default to
// the plugin's pass-through setting.
func (p *Plugin) RunCommand(ctx context.Context, command string, args []string, opts ...RunOption) (Result, error) {
	local := registry.LocalOptions{Through: p.desc.PassThrough}
	for _, opt := range opts {
		opt(&local)
	}

	p.logger.Debug("running command", "command", command, "args", args, "dynamic", local.Dynamic, "through", local.Through)

	inv, err := p.Resolve(command, args)
	if err != nil {
		return Result{}, err
	}
	return p.Dispatch(ctx, inv, local)
}

// Dispatch executes a resolved invocation. The first matching branch wins:
// help, not handled, router, handler (or its markdown help when the first
// argument is "help"), and finally the help listing for unknown commands.
// An unknown command is not an error. A pass-through plugin declines it
// silently instead.
func (p *Plugin) Dispatch(ctx context.Context, inv Invocation, local registry.LocalOptions) (Result, error) {
	switch inv.Intent {
	case IntentHelp:
		return Result{Outcome: OutcomeHelp}, p.DisplayCommandHelp()
	case IntentNotHandled:
		return Result{Outcome: OutcomeNotHandled}, nil
	}

	if router := p.Router(); router != nil {
		value, err := router.Route(ctx, registry.RouteRequest{
			Token:   inv.Token,
			Args:    inv.Args,
			Command: inv.Command,
			Options: local,
		})
		p.logger.Debug("router returned", "value", value, "err", err)
		return Result{Outcome: OutcomeRouted, Value: value}, err
	}

	h, ok := p.Handlers().Lookup(inv.Command)
	if !ok {
		if p.desc.PassThrough || local.Through {
			p.logger.Debug("command not found, passing through", "command", inv.Command, "dir", p.desc.CommandsDir())
			return Result{Outcome: OutcomeNotHandled}, nil
		}
		fmt.Fprintln(p.out, render.ErrorStyle.Render(fmt.Sprintf("'%s' not found.", inv.Command)))
		fmt.Fprintln(p.out, render.BoldStyle.Render("Available Commands:"))
		p.logger.Debug("command not found, showing help", "command", inv.Command, "dir", p.desc.CommandsDir())
		return Result{Outcome: OutcomeNotFound}, p.DisplayCommandHelp()
	}

	if len(inv.Args) > 0 && types.CommandName(inv.Args[0]).IsHelp() {
		return Result{Outcome: OutcomeCommandHelp}, p.displayDoc(inv.Command)
	}

	p.logger.Debug("invoking handler", "command", inv.Command)
	value, err := h.Invoke(ctx, inv.Command, inv.Args)
	return Result{Outcome: OutcomeHandled, Value: value}, err
}

// DisplayCommandHelp prints the help listing.
func (p *Plugin) DisplayCommandHelp() error {
	entries, err := p.HelpContent()
	if err != nil {
		return err
	}
	helpdoc.Display(p.out, entries, p.display)
	return nil
}

func (p *Plugin) displayDoc(command string) error {
	path, ok := helpdoc.FindDoc(p.desc.CommandsDir(), command)
	if !ok {
		return issue.NewErrorContext().
			WithOperation("show command help").
			WithResource(command).
			WithIssue(issue.CommandHelpNotFoundId).
			WithSuggestion(fmt.Sprintf("Add %s%s to %s", command, helpdoc.DocExt, p.desc.CommandsDir())).
			Wrap(os.ErrNotExist).
			BuildError()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read command help: %w", err)
	}
	p.logger.Debug("showing command help", "path", path)
	return p.renderer.Display(p.out, string(content))
}
