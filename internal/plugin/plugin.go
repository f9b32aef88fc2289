// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/plugmux/plugmux/internal/alias"
	"github.com/plugmux/plugmux/internal/helpdoc"
	"github.com/plugmux/plugmux/internal/logging"
	"github.com/plugmux/plugmux/internal/manifest"
	"github.com/plugmux/plugmux/internal/registry"
	"github.com/plugmux/plugmux/internal/render"
	"github.com/plugmux/plugmux/internal/trigger"
)

type (
	// Helper is what New returns: every plugin can list its help, active
	// or not. Type-assert to *Plugin to run commands.
	Helper interface {
		Descriptor() *Descriptor
		Aliases() alias.Table
		HelpFiles() ([]string, error)
		HelpContent() ([]helpdoc.Entry, error)
	}

	// Plugin is an active plugin.
	Plugin struct {
		*helpSource

		trigger  trigger.Trigger
		handlers *registry.Registry
		scanned  bool
		router   registry.Router
		routed   bool

		out      io.Writer
		stdio    registry.IO
		renderer render.Markdown
		display  *helpdoc.DisplayState
		args     []string

		manifest *manifest.Manifest
		started  bool
	}

	// Inactive is returned by New when the trigger did not match. It can
	// only list help.
	Inactive struct {
		*helpSource
	}

	// helpSource lists and reads a plugin's documentation. Aliases are
	// loaded on first use.
	helpSource struct {
		desc          *Descriptor
		logger        *log.Logger
		aliases       alias.Table
		aliasesLoaded bool
	}
)

// New builds a plugin from opts. It returns *Inactive when a trigger is
// configured and the trigger value does not match, *Plugin otherwise.
// Invalid options return an error wrapping ErrInvalidConfig.
func New(opts Options) (Helper, error) {
	desc, err := describe(opts)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logging.For(logger, desc.Name.String())

	args := opts.Args
	if args == nil {
		args = os.Args
	}

	hs := &helpSource{desc: desc, logger: logger}

	trig := opts.Trigger
	if len(opts.Aliases) > 0 {
		trig = trigger.FromAliases(desc.Name.String(), opts.Aliases)
	}
	if trig != nil {
		value := opts.TriggerValue
		if value == "" {
			value = trigger.DefaultValue(args)
			logger.Debug("no trigger value, using first argument", "value", value)
		}
		if !trig.Matches(value) {
			logger.Debug("trigger did not match", "trigger", trig, "value", value)
			return &Inactive{helpSource: hs}, nil
		}
		logger.Debug("trigger matched", "trigger", trig, "value", value)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	stdio := opts.IO
	if stdio == (registry.IO{}) {
		stdio = registry.IO{Stdin: os.Stdin, Stdout: out, Stderr: os.Stderr}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewMarkdown(render.MarkdownOptions{})
	}
	display := opts.Display
	if display == nil {
		display = &helpdoc.DisplayState{}
	}

	handlers := registry.New()
	for name, h := range opts.Handlers {
		if err := handlers.Register(name, h); err != nil {
			return nil, err
		}
	}

	return &Plugin{
		helpSource: hs,
		trigger:    trig,
		handlers:   handlers,
		router:     opts.Router,
		routed:     opts.Router != nil,
		out:        out,
		stdio:      stdio,
		renderer:   renderer,
		display:    display,
		args:       args,
	}, nil
}

// Sub builds a nested plugin. Relative paths resolve against p's root and
// the output, streams, renderer, banner state, argv and logger are shared.
func (p *Plugin) Sub(opts Options) (Helper, error) {
	opts.Parent = p.desc
	if opts.Out == nil {
		opts.Out = p.out
	}
	if opts.IO == (registry.IO{}) {
		opts.IO = p.stdio
	}
	if opts.Renderer == nil {
		opts.Renderer = p.renderer
	}
	if opts.Display == nil {
		opts.Display = p.display
	}
	if opts.Args == nil {
		opts.Args = p.args
	}
	if opts.Logger == nil {
		opts.Logger = p.logger
	}
	return New(opts)
}

// Trigger returns the effective trigger (nil when ungated).
func (p *Plugin) Trigger() trigger.Trigger { return p.trigger }

// Started reports whether Start completed.
func (p *Plugin) Started() bool { return p.started }

// Handlers returns the command handler registry, with script handlers
// from the commands directory registered.
func (p *Plugin) Handlers() *registry.Registry {
	if !p.scanned {
		p.scanned = true
		added, err := p.handlers.Scan(p.desc.CommandsDir(), p.stdio)
		if err != nil {
			p.logger.Warn("some command scripts were skipped", "dir", p.desc.CommandsDir(), "err", err)
		}
		p.logger.Debug("registered script handlers", "commands", added)
	}
	return p.handlers
}

// Router returns the explicit router or the router script, nil if neither
// exists.
func (p *Plugin) Router() registry.Router {
	if !p.routed {
		p.routed = true
		r, err := registry.FindRouter(p.desc.RouterDir(), p.stdio)
		if err != nil {
			p.logger.Warn("router lookup failed", "dir", p.desc.RouterDir(), "err", err)
		}
		if r != nil {
			p.logger.Debug("router found", "path", r.Path())
			p.router = r
		} else {
			p.logger.Debug("router not found", "dir", p.desc.RouterDir())
		}
	}
	return p.router
}

// Descriptor returns the plugin's resolved identity.
func (h *helpSource) Descriptor() *Descriptor { return h.desc }

// Aliases returns the plugin's alias table, loading it on first use. A
// malformed alias file is logged and treated as empty.
func (h *helpSource) Aliases() alias.Table { return h.aliasTable() }

func (h *helpSource) aliasTable() alias.Table {
	if !h.aliasesLoaded {
		h.aliasesLoaded = true
		t, err := alias.Load(h.desc.RootPath)
		if err != nil {
			h.logger.Warn("ignoring alias file", "err", err)
		}
		h.aliases = t
	}
	return h.aliases
}

func (h *helpSource) builder() *helpdoc.Builder {
	return &helpdoc.Builder{
		Plugin:      h.desc.Name,
		Root:        h.desc.RootPath,
		CommandsDir: h.desc.CommandsDir(),
		Ignore:      h.desc.Ignore,
		Aliases:     h.aliasTable(),
	}
}

// HelpFiles returns the documentation files shown in help, in discovery order.
func (h *helpSource) HelpFiles() ([]string, error) {
	files, err := h.builder().Files()
	if err != nil {
		return nil, err
	}
	h.logger.Debug("help files", "dir", h.desc.CommandsDir(), "count", len(files))
	return files, nil
}

// HelpContent builds the help entries. The result is rebuilt on every call.
func (h *helpSource) HelpContent() ([]helpdoc.Entry, error) {
	return h.builder().Build()
}
