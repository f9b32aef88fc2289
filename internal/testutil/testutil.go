// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
)

// MustWriteFile writes content to path, creating parent directories.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MustReadFile returns the content of path.
func MustReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// WritePlugin lays out a plugin tree under root and returns root. Keys are
// slash-separated paths relative to root; a key ending in "/" is an empty
// directory, which is how a plugin with no commands or a bare search dir
// entry is spelled.
//
//	root := testutil.WritePlugin(t, t.TempDir(), map[string]string{
//		"aliases.json":               `{"deploy": "d"}`,
//		"src/cli/commands/deploy.sh": `echo deploying`,
//		"src/cli/commands/deploy.md": "# deploy\n\nShip it",
//	})
func WritePlugin(t testing.TB, root string, files map[string]string) string {
	t.Helper()
	rels := make([]string, 0, len(files))
	for rel := range files {
		rels = append(rels, rel)
	}
	slices.Sort(rels)

	for _, rel := range rels {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if !strings.HasSuffix(rel, "/") {
			MustWriteFile(t, p, files[rel])
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
	}
	return root
}
