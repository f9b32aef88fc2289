// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/internal/testutil"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	root := fixture(t)

	tests := []struct {
		name    string
		command string
		args    []string
		want    Invocation
		wantErr bool
	}{
		{
			name:    "plain command",
			command: "install",
			args:    []string{"pkg"},
			want:    Invocation{Token: "install", Command: "install", Args: []string{"pkg"}, Intent: IntentRun},
		},
		{
			name:    "alias resolves to canonical",
			command: "i",
			args:    []string{"pkg"},
			want:    Invocation{Token: "i", Command: "install", Args: []string{"pkg"}, Intent: IntentRun},
		},
		{
			name:    "plugin name is shifted off",
			command: "foo",
			args:    []string{"i", "pkg"},
			want:    Invocation{Token: "i", Command: "install", Args: []string{"pkg"}, Intent: IntentRun},
		},
		{
			name:    "plugin name alone asks for help",
			command: "foo",
			want:    Invocation{Intent: IntentHelp},
		},
		{
			name:    "empty command asks for help",
			command: "",
			want:    Invocation{Intent: IntentHelp},
		},
		{
			name:    "help command",
			command: "help",
			want:    Invocation{Token: "help", Command: "help", Intent: IntentHelp},
		},
		{
			name:    "unknown command stays as typed",
			command: "deploy",
			want:    Invocation{Token: "deploy", Command: "deploy", Intent: IntentRun},
		},
		{
			name:    "flag-like command is a usage error",
			command: "--force",
			wantErr: true,
		},
		{
			name:    "flag-like command after plugin name",
			command: "foo",
			args:    []string{"-v"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, _ := newPlugin(t, Options{Plugin: "foo", SearchDirs: []string{filepath.Dir(root)}})

			got, err := p.Resolve(tt.command, tt.args)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Fatalf("Resolve() error = %v, want ErrUsage", err)
				}
				var ae *issue.ActionableError
				if !errors.As(err, &ae) || ae.Issue != issue.InvalidCommandId {
					t.Errorf("Resolve() error should link the invalid command issue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Token != tt.want.Token || got.Command != tt.want.Command || got.Intent != tt.want.Intent {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
			if len(got.Args) != 0 || len(tt.want.Args) != 0 {
				if !reflect.DeepEqual(got.Args, tt.want.Args) {
					t.Errorf("Resolve() args = %v, want %v", got.Args, tt.want.Args)
				}
			}
		})
	}
}

func TestResolveThroughEmptyCanonical(t *testing.T) {
	t.Parallel()

	root := testutil.WritePlugin(t, t.TempDir(), map[string]string{
		"aliases.json": `{"": "blank"}`,
		cmds:           "",
	})

	through, _ := newPlugin(t, Options{Path: root, Through: true})
	inv, err := through.Resolve("blank", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Intent != IntentNotHandled {
		t.Errorf("Intent = %v, want not-handled", inv.Intent)
	}

	strict, _ := newPlugin(t, Options{Path: root})
	inv, err = strict.Resolve("blank", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if inv.Intent != IntentRun || inv.Command != "" {
		t.Errorf("Resolve() = %+v, want run with empty command", inv)
	}
}

func TestResolveProperties(t *testing.T) {
	// Declared by path, so no token is shifted off as the plugin name.
	p, _ := newPlugin(t, Options{Path: fixture(t)})
	table := p.Aliases()

	rapid.Check(t, func(t *rapid.T) {
		token := rapid.StringMatching(`[a-z][a-z0-9]{0,8}`).Draw(t, "token")

		inv, err := p.Resolve(token, nil)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", token, err)
		}
		if canonical, ok := table.Canonical(token); ok {
			if inv.Command != canonical {
				t.Fatalf("Resolve(%q).Command = %q, want %q", token, inv.Command, canonical)
			}
			return
		}
		if inv.Command != token {
			t.Fatalf("Resolve(%q).Command = %q, want identity", token, inv.Command)
		}
	})
}
