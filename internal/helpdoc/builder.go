// SPDX-License-Identifier: MPL-2.0

package helpdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/plugmux/plugmux/internal/alias"
	"github.com/plugmux/plugmux/pkg/types"
)

const (
	// DocExt is the extension of command documentation files.
	DocExt = ".md"
	// ScriptExt is the extension of script command handlers. A doc named
	// "<name>.sh.md" documents the "<name>" command.
	ScriptExt = ".sh"
	// DefaultIgnore excludes documentation test fixtures.
	DefaultIgnore types.GlobPattern = "**/*.plugmux-test.md"
)

// placeholderNames are doc base names that stand for the plugin itself
// rather than a subcommand.
var placeholderNames = map[string]bool{
	".":        true,
	".gitkeep": true,
}

type (
	// Entry is one line of a help listing.
	Entry struct {
		// Command is the display label: "plugin", "plugin cmd", or with
		// aliases "plugin|p cmd|c".
		Command string
		// Description is the summary line taken from the doc file.
		Description types.DescriptionText
	}

	// Builder discovers and reads the documentation files of one plugin.
	Builder struct {
		// Plugin is the plugin name used as the label prefix.
		Plugin types.PluginName
		// Root is the plugin root; ignore patterns match paths relative to it.
		Root string
		// CommandsDir is the directory holding handlers and docs.
		CommandsDir string
		// Ignore lists caller-supplied ignore patterns, applied after DefaultIgnore.
		Ignore []types.GlobPattern
		// Aliases is the plugin's alias table (may be empty).
		Aliases alias.Table
	}
)

// Files returns the documentation files in discovery order, minus the ones
// matched by DefaultIgnore or b.Ignore.
func (b *Builder) Files() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(b.CommandsDir, "*"+DocExt))
	if err != nil {
		return nil, fmt.Errorf("failed to list help files in %s: %w", b.CommandsDir, err)
	}

	patterns := make([]string, 0, len(b.Ignore)+1)
	patterns = append(patterns, DefaultIgnore.Normalized())
	for _, p := range b.Ignore {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		patterns = append(patterns, p.Normalized())
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid help ignore patterns: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, file := range matches {
		rel, err := filepath.Rel(b.Root, file)
		if err != nil {
			rel = file
		}
		ignored, err := pm.MatchesOrParentMatches(rel)
		if err != nil {
			return nil, fmt.Errorf("failed to match %s against ignore patterns: %w", rel, err)
		}
		if !ignored {
			files = append(files, file)
		}
	}
	return files, nil
}

// Build returns one Entry per documentation file, in discovery order.
func (b *Builder) Build() ([]Entry, error) {
	files, err := b.Files()
	if err != nil {
		return nil, err
	}
	return b.Entries(files)
}

// Entries turns the given documentation files into help entries without
// reordering them.
func (b *Builder) Entries(files []string) ([]Entry, error) {
	pluginDisplay := b.Aliases.Display(string(b.Plugin))

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read help file: %w", err)
		}

		cmd := b.CommandName(file)
		label := pluginDisplay
		if !placeholderNames[cmd] && cmd != string(b.Plugin) {
			label = strings.TrimSpace(pluginDisplay + " " + b.Aliases.Display(cmd))
		}

		entries = append(entries, Entry{
			Command:     label,
			Description: Description(string(data)),
		})
	}
	return entries, nil
}

// CommandName extracts the command a documentation file describes.
func (b *Builder) CommandName(file string) string {
	rel, err := filepath.Rel(b.CommandsDir, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	name := strings.TrimSuffix(filepath.ToSlash(rel), DocExt)
	return strings.TrimSuffix(name, ScriptExt)
}

// Description picks the summary line of a documentation file: the third
// line when present and non-blank, otherwise the first.
func Description(content string) types.DescriptionText {
	lines := strings.Split(content, "\n")
	if len(lines) > 2 {
		if line := strings.TrimRight(lines[2], "\r"); line != "" {
			return types.DescriptionText(line)
		}
	}
	return types.DescriptionText(strings.TrimRight(lines[0], "\r"))
}

// FindDoc returns the documentation file for command in commandsDir,
// trying "<command>.md" before "<command>.sh.md".
func FindDoc(commandsDir, command string) (string, bool) {
	for _, name := range []string{command + DocExt, command + ScriptExt + DocExt} {
		path := filepath.Join(commandsDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
