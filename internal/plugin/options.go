// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/plugmux/plugmux/internal/helpdoc"
	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/internal/registry"
	"github.com/plugmux/plugmux/internal/render"
	"github.com/plugmux/plugmux/internal/trigger"
	"github.com/plugmux/plugmux/pkg/types"
)

// DefaultCommandsPath is the commands folder below a plugin root.
const DefaultCommandsPath = "src/cli/commands"

var (
	// ErrInvalidConfig is the sentinel error wrapped by ConfigError.
	ErrInvalidConfig = errors.New("invalid plugin configuration")
	// ErrPluginNotFound is returned when a plugin name matches no search dir.
	ErrPluginNotFound = errors.New("plugin not found")
)

type (
	// Options configure New. Exactly one of Plugin and Path is required.
	Options struct {
		// Plugin is an identifier looked up in SearchDirs ("deploy",
		// "@acme/deploy"). The plugin name is its last segment.
		Plugin string
		// Path is the plugin root, relative to Parent's root when Parent is set.
		Path string
		// Aliases replace Trigger with ^(name|alias...)$.
		Aliases []string
		// Trigger gates the plugin. Nil with no Aliases means always active.
		Trigger trigger.Trigger
		// TriggerValue is tested against the trigger; empty means Args[1].
		TriggerValue string
		// CommandsPath is the commands folder below the root
		// (DefaultCommandsPath when empty).
		CommandsPath string
		// Through makes unknown commands fall through silently.
		Through bool
		// Ommit lists extra ignore patterns for help discovery.
		Ommit []types.GlobPattern
		// Parent is the enclosing plugin for nested plugins.
		Parent *Descriptor
		// Router takes over dispatch. When nil, a router script one level
		// above the commands folder is used if present.
		Router registry.Router
		// Handlers are Go command handlers, registered before script handlers.
		Handlers map[string]registry.Handler
		// SearchDirs are the directories Plugin is looked up in, in order.
		SearchDirs []string

		// Out receives banners, help and notices (os.Stdout when nil).
		Out io.Writer
		// IO are the streams scripts run with. Zero means stdin, Out, stderr.
		IO registry.IO
		// Renderer shows per-command markdown help.
		Renderer render.Markdown
		// Display is the banner state shared across plugins of one process.
		Display *helpdoc.DisplayState
		// Args is the process argv (os.Args when nil).
		Args []string
		// Logger receives debug traces (discarded when nil).
		Logger *log.Logger
	}

	// Descriptor is the resolved identity of a plugin.
	Descriptor struct {
		// Name is the last segment of the declared identifier; empty for
		// plugins declared by path.
		Name types.PluginName
		// Identifier is the Plugin option as given.
		Identifier string
		// RootPath is the plugin root directory.
		RootPath string
		// CommandsSubpath is the commands folder relative to RootPath.
		CommandsSubpath string
		// Ignore are the caller's help ignore patterns.
		Ignore []types.GlobPattern
		// PassThrough mirrors Options.Through.
		PassThrough bool
		// Parent is the enclosing plugin, used only to resolve relative paths.
		Parent *Descriptor
	}

	// ConfigError reports Options that name no plugin, or two.
	ConfigError struct {
		Plugin string
		Path   string
	}

	// NotFoundError reports a plugin identifier that matched no search dir.
	NotFoundError struct {
		Plugin     string
		SearchDirs []string
	}
)

// CommandsDir returns the directory holding handlers and docs.
func (d *Descriptor) CommandsDir() string {
	return filepath.Join(d.RootPath, d.CommandsSubpath)
}

// RouterDir returns the directory a router script is looked up in: the
// parent of the commands directory.
func (d *Descriptor) RouterDir() string {
	return filepath.Dir(d.CommandsDir())
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Plugin == "" && e.Path == "" {
		return "'plugin' or 'path' is required"
	}
	return fmt.Sprintf("use only one of 'plugin' or 'path' (plugin: %s, path: %s)", e.Plugin, e.Path)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugin %q not found in %v", e.Plugin, e.SearchDirs)
}

// Unwrap returns ErrPluginNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrPluginNotFound }

// describe validates the plugin source and builds its Descriptor.
func describe(opts Options) (*Descriptor, error) {
	if (opts.Plugin == "") == (opts.Path == "") {
		return nil, issue.NewErrorContext().
			WithOperation("configure plugin").
			WithIssue(issue.PluginSourceConflictId).
			WithSuggestion("Set exactly one of 'plugin' or 'path'").
			Wrap(&ConfigError{Plugin: opts.Plugin, Path: opts.Path}).
			BuildError()
	}

	d := &Descriptor{
		Identifier:      opts.Plugin,
		CommandsSubpath: opts.CommandsPath,
		Ignore:          opts.Ommit,
		PassThrough:     opts.Through,
		Parent:          opts.Parent,
	}
	if d.CommandsSubpath == "" {
		d.CommandsSubpath = DefaultCommandsPath
	}

	if opts.Path != "" {
		root := opts.Path
		if opts.Parent != nil && !filepath.IsAbs(root) {
			root = filepath.Join(opts.Parent.RootPath, root)
		}
		d.RootPath = root
		return d, nil
	}

	d.Name = types.PluginNameFromIdentifier(opts.Plugin)
	if err := d.Name.Validate(); err != nil {
		return nil, err
	}
	root, err := locate(opts.Plugin, opts.SearchDirs)
	if err != nil {
		return nil, err
	}
	d.RootPath = root
	return d, nil
}

// locate returns the first "<dir>/<identifier>" directory, falling back to
// "<dir>/<name>" for scoped identifiers.
func locate(identifier string, searchDirs []string) (string, error) {
	name := types.PluginNameFromIdentifier(identifier).String()
	candidates := []string{filepath.FromSlash(identifier)}
	if name != identifier {
		candidates = append(candidates, name)
	}

	for _, dir := range searchDirs {
		for _, c := range candidates {
			root := filepath.Join(dir, c)
			if info, err := os.Stat(root); err == nil && info.IsDir() {
				return root, nil
			}
		}
	}

	return "", issue.NewErrorContext().
		WithOperation("locate plugin").
		WithResource(identifier).
		WithIssue(issue.PluginNotFoundId).
		WithSuggestion("Add the directory holding the plugin to 'plugin_dirs'").
		WithSuggestion("Use --path to point at the plugin root directly").
		Wrap(&NotFoundError{Plugin: identifier, SearchDirs: searchDirs}).
		BuildError()
}
