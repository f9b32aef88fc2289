// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/internal/manifest"
	"github.com/plugmux/plugmux/internal/render"
	"github.com/plugmux/plugmux/pkg/types"
)

// VersionFlag makes Start print the manifest version and stop.
const VersionFlag = "--version"

var (
	// ErrVersionPrinted is returned by Start after printing the version.
	// The host should exit successfully.
	ErrVersionPrinted = errors.New("version printed")
	// ErrManifestMismatch is the sentinel error wrapped by ManifestMismatchError.
	ErrManifestMismatch = errors.New("plugin name does not match manifest")
)

// ManifestMismatchError reports a plugin declared under a name its
// manifest does not carry.
type ManifestMismatchError struct {
	Declared types.PluginName
	Manifest types.PluginName
	Path     string
}

// Error implements the error interface.
func (e *ManifestMismatchError) Error() string {
	return fmt.Sprintf("name of the plugin specified '%s' has not been matched with the '%s'", e.Declared, e.Manifest)
}

// Unwrap returns ErrManifestMismatch for errors.Is() compatibility.
func (e *ManifestMismatchError) Unwrap() error { return ErrManifestMismatch }

// Manifest returns the manifest read by Start, nil if none.
func (p *Plugin) Manifest() *manifest.Manifest { return p.manifest }

// Start reads the plugin manifest and prints "<name> - v<version>" unless
// the plugin is pass-through. A plugin declared by path takes its name
// from the manifest, so a leading plugin name is skipped by Resolve. With --version in argv it prints only the
// version and returns ErrVersionPrinted. A missing manifest is fine.
func (p *Plugin) Start() error {
	p.logger.Debug("starting", "root", p.desc.RootPath, "commands", p.desc.CommandsSubpath)

	m, path, err := manifest.Load(p.desc.RootPath)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("read plugin manifest").
			WithResource(path).
			WithIssue(issue.ManifestParseErrorId).
			Wrap(err).
			BuildError()
	}

	info := p.desc.Name
	version := ""
	if m != nil {
		if slices.Contains(p.args, VersionFlag) {
			fmt.Fprintln(p.out, m.Version)
			return ErrVersionPrinted
		}
		// A manifest without a name adopts the declared one; a plugin
		// declared by path adopts the manifest's.
		if m.Name != "" {
			if p.desc.Name == "" {
				p.desc.Name = m.Name
			}
			if p.desc.Name != m.Name {
				return issue.NewErrorContext().
					WithOperation("start plugin").
					WithResource(path).
					WithIssue(issue.ManifestMismatchId).
					Wrap(&ManifestMismatchError{Declared: p.desc.Name, Manifest: m.Name, Path: path}).
					BuildError()
			}
			info = m.Name
		}
		version = m.Version
		p.manifest = m
	}

	if !p.desc.PassThrough && info != "" {
		fmt.Fprintf(p.out, "%s - v%s\n", info, render.VersionStyle.Render(version))
	} else {
		p.logger.Debug("start line suppressed", "through", p.desc.PassThrough, "name", info)
	}

	p.started = true
	return nil
}
