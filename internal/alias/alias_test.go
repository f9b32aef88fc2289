// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    map[string][]string
		wantErr bool
	}{
		{
			name: "single string values",
			data: `{"install": "i", "remove": "rm"}`,
			want: map[string][]string{"install": {"i"}, "remove": {"rm"}},
		},
		{
			name: "array values",
			data: `{"install": ["i", "add"]}`,
			want: map[string][]string{"install": {"i", "add"}},
		},
		{
			name: "empty alias dropped",
			data: `{"install": ["", "i"]}`,
			want: map[string][]string{"install": {"i"}},
		},
		{name: "not an object", data: `["i"]`, wantErr: true},
		{name: "number value", data: `{"install": 1}`, wantErr: true},
		{name: "broken json", data: `{"install": `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got.Len() != 0 {
					t.Errorf("Parse() on error returned %d entries, want empty table", got.Len())
				}
				return
			}
			if !reflect.DeepEqual(got.Map(), tt.want) {
				t.Errorf("Parse() = %v, want %v", got.Map(), tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file is empty", func(t *testing.T) {
		t.Parallel()

		tbl, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if tbl.Len() != 0 {
			t.Errorf("Load() returned %d entries, want 0", tbl.Len())
		}
	})

	t.Run("malformed file is empty with error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{nope"), 0o644); err != nil {
			t.Fatal(err)
		}
		tbl, err := Load(dir)
		if err == nil {
			t.Fatal("Load() error = nil, want decode error")
		}
		if tbl.Len() != 0 {
			t.Errorf("Load() returned %d entries, want 0", tbl.Len())
		}
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`{"install": "i"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		tbl, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got := tbl.Resolve("i"); got != "install" {
			t.Errorf("Resolve(i) = %q, want install", got)
		}
	})
}

func TestTableDisplay(t *testing.T) {
	t.Parallel()

	tbl := New(map[string][]string{"install": {"i", "add"}, "foo": {"f"}})

	tests := []struct {
		name string
		want string
	}{
		{"install", "install|i|add"},
		{"foo", "foo|f"},
		{"remove", "remove"},
	}
	for _, tt := range tests {
		if got := tbl.Display(tt.name); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTableConflictingAliases(t *testing.T) {
	t.Parallel()

	tbl := New(map[string][]string{"zeta": {"x"}, "alpha": {"x"}})
	if got, _ := tbl.Canonical("x"); got != "alpha" {
		t.Errorf("Canonical(x) = %q, want alpha (lexically first)", got)
	}
}

func TestZeroTable(t *testing.T) {
	t.Parallel()

	var tbl Table
	if got := tbl.Resolve("install"); got != "install" {
		t.Errorf("Resolve() on zero table = %q, want install", got)
	}
	if got := tbl.Display("install"); got != "install" {
		t.Errorf("Display() on zero table = %q, want install", got)
	}
	if tbl.Inverse().Len() != 0 {
		t.Error("Inverse() of zero table should be empty")
	}
}

func TestResolveProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,6}`), 2, 24, rapid.ID[string]).Draw(t, "names")
		half := len(names) / 2
		m := make(map[string][]string, half)
		for i := 0; i < half; i++ {
			m[names[i]] = []string{names[half+i]}
		}
		tbl := New(m)

		for canonical, aliases := range m {
			if got := tbl.Resolve(aliases[0]); got != canonical {
				t.Fatalf("Resolve(%q) = %q, want %q", aliases[0], got, canonical)
			}
		}

		other := rapid.StringMatching(`[A-Z]{1,6}`).Draw(t, "unknown")
		if got := tbl.Resolve(other); got != other {
			t.Fatalf("Resolve(%q) = %q, want identity", other, got)
		}

		if got := tbl.Inverse().Inverse().Map(); !reflect.DeepEqual(got, tbl.Map()) {
			t.Fatalf("Inverse().Inverse() = %v, want %v", got, tbl.Map())
		}
	})
}
