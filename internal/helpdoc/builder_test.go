// SPDX-License-Identifier: MPL-2.0

package helpdoc

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/plugmux/plugmux/internal/alias"
	"github.com/plugmux/plugmux/pkg/types"
)

// newTestBuilder creates a plugin root with a src/cli/commands directory
// holding the given files.
func newTestBuilder(t *testing.T, plugin string, files map[string]string) *Builder {
	t.Helper()
	root := t.TempDir()
	cmdsDir := filepath.Join(root, "src", "cli", "commands")
	if err := os.MkdirAll(cmdsDir, 0o755); err != nil {
		t.Fatalf("failed to create commands dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(cmdsDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return &Builder{
		Plugin:      types.PluginName(plugin),
		Root:        root,
		CommandsDir: cmdsDir,
	}
}

func TestDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    types.DescriptionText
	}{
		{name: "conventional file", content: "# Deploy\n\nDeploys the app to production", want: "Deploys the app to production"},
		{name: "single line", content: "Legacy command", want: "Legacy command"},
		{name: "two lines", content: "# Title\nSecond", want: "# Title"},
		{name: "blank third line", content: "# Title\n\n\nBody", want: "# Title"},
		{name: "crlf", content: "# Title\r\n\r\nSummary\r\n", want: "Summary"},
		{name: "empty", content: "", want: ""},
		{name: "unconventional second line", content: "# Title\nNot blank\nThird", want: "Third"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Description(tt.content); got != tt.want {
				t.Errorf("Description(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, "foo", map[string]string{
		"deploy.md":              "# Deploy\n\nDeploys the app to production\n",
		"legacy.md":              "Legacy command",
		"install.sh.md":          "# Install\n\nInstalls packages\n",
		"foo.md":                 "# foo\n\nThe foo plugin\n",
		".gitkeep.md":            "Placeholder\n",
		"deploy.plugmux-test.md": "fixture\n",
		"deploy.sh":              "echo deploy\n",
	})
	b.Aliases = alias.New(map[string][]string{"install": {"i"}, "foo": {"f"}})

	got, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// filepath.Glob sorts lexically: ".gitkeep", "deploy", "foo", "install.sh", "legacy".
	want := []Entry{
		{Command: "foo|f", Description: "Placeholder"},
		{Command: "foo|f deploy", Description: "Deploys the app to production"},
		{Command: "foo|f", Description: "The foo plugin"},
		{Command: "foo|f install|i", Description: "Installs packages"},
		{Command: "foo|f legacy", Description: "Legacy command"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() =\n%v\nwant\n%v", got, want)
	}
}

func TestFilesIgnore(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, "foo", map[string]string{
		"a.md":       "A",
		"b.draft.md": "B",
		"c.md":       "C",
	})
	b.Ignore = []types.GlobPattern{"!**/*.draft.md", "src/cli/commands/c.md"}

	files, err := b.Files()
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.md" {
		t.Errorf("Files() = %v, want only a.md", files)
	}
}

func TestFilesInvalidIgnore(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, "foo", map[string]string{"a.md": "A"})
	b.Ignore = []types.GlobPattern{"!"}

	if _, err := b.Files(); err == nil {
		t.Error("Files() error = nil, want invalid pattern error")
	}
}

func TestBuildNoDocs(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, "foo", nil)
	got, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Build() = %v, want no entries", got)
	}
}

func TestBuildMissingCommandsDir(t *testing.T) {
	t.Parallel()

	b := &Builder{Plugin: "foo", Root: t.TempDir(), CommandsDir: filepath.Join(t.TempDir(), "nope")}
	got, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Build() = %v, want no entries", got)
	}
}

func TestAnonymousPluginLabel(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, "", map[string]string{"deploy.md": "Deploy"})
	got, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(got) != 1 || got[0].Command != "deploy" {
		t.Errorf("Build() = %v, want single entry labelled deploy", got)
	}
}

func TestFindDoc(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, "foo", map[string]string{
		"deploy.md":     "Deploy",
		"install.sh.md": "Install",
	})

	if path, ok := FindDoc(b.CommandsDir, "deploy"); !ok || filepath.Base(path) != "deploy.md" {
		t.Errorf("FindDoc(deploy) = %q, %v", path, ok)
	}
	if path, ok := FindDoc(b.CommandsDir, "install"); !ok || filepath.Base(path) != "install.sh.md" {
		t.Errorf("FindDoc(install) = %q, %v", path, ok)
	}
	if _, ok := FindDoc(b.CommandsDir, "missing"); ok {
		t.Error("FindDoc(missing) found a file")
	}
}
