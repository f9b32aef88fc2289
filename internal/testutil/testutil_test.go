// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWritePlugin(t *testing.T) {
	t.Parallel()

	root := WritePlugin(t, t.TempDir(), map[string]string{
		"aliases.json":               `{"deploy": "d"}`,
		"src/cli/commands/deploy.md": "# deploy",
		"src/cli/commands/empty/":    "",
		"plugins/@acme/lint/":        "",
	})

	tests := []struct {
		rel     string
		content string
		dir     bool
	}{
		{rel: "aliases.json", content: `{"deploy": "d"}`},
		{rel: "src/cli/commands/deploy.md", content: "# deploy"},
		{rel: "src/cli/commands/empty", dir: true},
		{rel: "plugins/@acme/lint", dir: true},
	}
	for _, tt := range tests {
		p := filepath.Join(root, filepath.FromSlash(tt.rel))
		if tt.dir {
			if info, err := os.Stat(p); err != nil || !info.IsDir() {
				t.Errorf("%s: want a directory, got %v, %v", tt.rel, info, err)
			}
			continue
		}
		if got := MustReadFile(t, p); got != tt.content {
			t.Errorf("%s = %q, want %q", tt.rel, got, tt.content)
		}
	}
}
