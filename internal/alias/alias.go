// SPDX-License-Identifier: MPL-2.0

// Package alias loads a plugin's alias table and answers lookups in both
// directions: alias to canonical command for dispatch, canonical command to
// aliases for help display.
package alias

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// FileName is the alias file expected at the plugin root.
const FileName = "aliases.json"

// Table maps a canonical command name to its aliases. The zero value is an
// empty, usable table.
type Table struct {
	forward map[string][]string
	inverse map[string]string
}

// New builds a Table from a canonical -> aliases mapping. Empty aliases are
// dropped. When the same alias is claimed by several canonical names, the
// lexically first canonical name wins.
func New(m map[string][]string) Table {
	t := Table{
		forward: make(map[string][]string, len(m)),
		inverse: make(map[string]string),
	}
	for _, canonical := range sortedKeys(m) {
		var kept []string
		for _, a := range m[canonical] {
			if a == "" {
				continue
			}
			kept = append(kept, a)
			if _, taken := t.inverse[a]; !taken {
				t.inverse[a] = canonical
			}
		}
		t.forward[canonical] = kept
	}
	return t
}

// Parse decodes alias file content. Each value may be a single string or an
// array of strings.
func Parse(data []byte) (Table, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Table{}, fmt.Errorf("failed to decode alias table: %w", err)
	}

	m := make(map[string][]string, len(raw))
	for canonical, v := range raw {
		var one string
		if err := json.Unmarshal(v, &one); err == nil {
			m[canonical] = []string{one}
			continue
		}
		var many []string
		if err := json.Unmarshal(v, &many); err != nil {
			return Table{}, fmt.Errorf("alias %q: value must be a string or an array of strings", canonical)
		}
		m[canonical] = many
	}
	return New(m), nil
}

// Load reads FileName from root. A missing file yields an empty table and
// no error. A malformed file yields an empty table and the decode error, so
// callers can log it and carry on.
func Load(root string) (Table, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Len returns the number of canonical entries.
func (t Table) Len() int { return len(t.forward) }

// Names returns the canonical names in sorted order.
func (t Table) Names() []string {
	return sortedKeys(t.forward)
}

// Aliases returns the aliases declared for canonical, in file order.
func (t Table) Aliases(canonical string) []string {
	return slices.Clone(t.forward[canonical])
}

// Canonical resolves an alias to its canonical command name.
func (t Table) Canonical(alias string) (string, bool) {
	c, ok := t.inverse[alias]
	return c, ok
}

// Resolve returns the canonical name for token, or token itself when it is
// not a known alias.
func (t Table) Resolve(token string) string {
	if c, ok := t.Canonical(token); ok {
		return c
	}
	return token
}

// Display renders name with its aliases as "name|alias1|alias2". Names
// without aliases are returned unchanged.
func (t Table) Display(name string) string {
	aliases := t.forward[name]
	if len(aliases) == 0 {
		return name
	}
	return name + "|" + strings.Join(aliases, "|")
}

// Inverse returns the alias -> canonical table.
func (t Table) Inverse() Table {
	m := make(map[string][]string, len(t.inverse))
	for a, c := range t.inverse {
		m[a] = []string{c}
	}
	return New(m)
}

// Map returns a copy of the canonical -> aliases mapping.
func (t Table) Map() map[string][]string {
	m := make(map[string][]string, len(t.forward))
	for k, v := range t.forward {
		m[k] = slices.Clone(v)
	}
	return m
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
