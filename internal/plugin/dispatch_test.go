// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/internal/registry"
	"github.com/plugmux/plugmux/internal/testutil"
	"github.com/plugmux/plugmux/pkg/types"
)

func TestRunCommandAliasRunsScript(t *testing.T) {
	t.Parallel()

	p, out := newPlugin(t, Options{Plugin: "foo", SearchDirs: []string{parentDir(fixture(t))}})

	res, err := p.RunCommand(t.Context(), "i", []string{"pkg"})
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}
	if res.Outcome != OutcomeHandled || !res.Handled() {
		t.Errorf("Outcome = %v, want handled", res.Outcome)
	}
	if res.Value != types.ExitSuccess {
		t.Errorf("Value = %v, want exit 0", res.Value)
	}
	if got := out.String(); !strings.Contains(got, "installing pkg via install") {
		t.Errorf("output = %q", got)
	}
}

func TestRunCommandScriptFailure(t *testing.T) {
	t.Parallel()

	p, _ := newPlugin(t, Options{Path: fixture(t)})

	res, err := p.RunCommand(t.Context(), "fail", nil)
	if !errors.Is(err, registry.ErrScriptExit) {
		t.Fatalf("RunCommand() error = %v, want ErrScriptExit", err)
	}
	var exitErr *registry.ScriptExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 3 {
		t.Errorf("error = %#v, want exit code 3", err)
	}
	if res.Value != types.ExitCode(3) {
		t.Errorf("Value = %v, want 3", res.Value)
	}
}

func TestRunCommandGoHandlerWins(t *testing.T) {
	t.Parallel()

	var gotCommand string
	var gotArgs []string
	p, out := newPlugin(t, Options{
		Path: fixture(t),
		Handlers: map[string]registry.Handler{
			"install": registry.HandlerFunc(func(_ context.Context, command string, args []string) (any, error) {
				gotCommand, gotArgs = command, args
				return "done", nil
			}),
		},
	})

	res, err := p.RunCommand(t.Context(), "i", []string{"a", "b"})
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}
	if res.Value != "done" {
		t.Errorf("Value = %v, want handler value", res.Value)
	}
	if gotCommand != "install" || strings.Join(gotArgs, " ") != "a b" {
		t.Errorf("handler got %q %v", gotCommand, gotArgs)
	}
	if strings.Contains(out.String(), "installing") {
		t.Error("script handler should not run when a Go handler is registered")
	}
}

func TestRunCommandHelpIntent(t *testing.T) {
	t.Parallel()

	for _, command := range []string{"", "help"} {
		p, out := newPlugin(t, Options{Path: fixture(t)})

		res, err := p.RunCommand(t.Context(), command, nil)
		if err != nil {
			t.Fatalf("RunCommand(%q) error = %v", command, err)
		}
		if res.Outcome != OutcomeHelp {
			t.Errorf("RunCommand(%q) outcome = %v, want help", command, res.Outcome)
		}
		for _, want := range []string{"Install a package", "Remove a package", "The foo plugin"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("RunCommand(%q) listing missing %q:\n%s", command, want, out.String())
			}
		}
	}
}

func TestRunCommandCommandHelp(t *testing.T) {
	t.Parallel()

	p, out := newPlugin(t, Options{Path: fixture(t)})

	res, err := p.RunCommand(t.Context(), "install", []string{"help"})
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}
	if res.Outcome != OutcomeCommandHelp {
		t.Errorf("Outcome = %v, want command-help", res.Outcome)
	}
	if got := out.String(); got != "# install\n\nInstall a package" {
		t.Errorf("output = %q, want the raw doc", got)
	}

	_, err = p.RunCommand(t.Context(), "fail", []string{"help"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("RunCommand(fail help) error = %v, want ErrNotExist", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.CommandHelpNotFoundId {
		t.Errorf("error should link the command help issue, got %v", err)
	}
}

func TestRunCommandNotFound(t *testing.T) {
	t.Parallel()

	p, out := newPlugin(t, Options{Path: fixture(t)})

	res, err := p.RunCommand(t.Context(), "deploy", nil)
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}
	if res.Outcome != OutcomeNotFound || !res.Handled() {
		t.Errorf("Outcome = %v, want not-found", res.Outcome)
	}
	got := out.String()
	if !strings.Contains(got, "'deploy' not found.") {
		t.Errorf("missing not-found notice:\n%s", got)
	}
	if !strings.Contains(got, "Install a package") {
		t.Errorf("help listing should follow:\n%s", got)
	}
}

func TestRunCommandUnknownPassesThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  Options
		local []RunOption
	}{
		{name: "plugin option", opts: Options{Through: true}},
		{name: "local option", local: []RunOption{WithLocalOptions(registry.LocalOptions{Through: true})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.Path = fixture(t)
			p, out := newPlugin(t, opts)

			res, err := p.RunCommand(t.Context(), "deploy", nil, tt.local...)
			if err != nil {
				t.Fatalf("RunCommand() error = %v", err)
			}
			if res.Outcome != OutcomeNotHandled || res.Handled() {
				t.Errorf("Outcome = %v, want not-handled", res.Outcome)
			}
			if out.Len() != 0 {
				t.Errorf("a declined command should print nothing, got %q", out.String())
			}
		})
	}
}

func TestRunCommandNotHandled(t *testing.T) {
	t.Parallel()

	root := testutil.WritePlugin(t, t.TempDir(), map[string]string{
		"aliases.json": `{"": "skip"}`,
		cmds:           "",
	})
	p, out := newPlugin(t, Options{Path: root, Through: true})

	res, err := p.RunCommand(t.Context(), "skip", nil)
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}
	if res.Handled() {
		t.Errorf("Outcome = %v, want not-handled", res.Outcome)
	}
	if out.Len() != 0 {
		t.Errorf("a declined command should print nothing, got %q", out.String())
	}
}

func TestRunCommandGoRouter(t *testing.T) {
	t.Parallel()

	var got registry.RouteRequest
	p, out := newPlugin(t, Options{
		Path: fixture(t),
		Router: registry.RouterFunc(func(_ context.Context, req registry.RouteRequest) (any, error) {
			got = req
			return 42, nil
		}),
	})

	res, err := p.RunCommand(t.Context(), "i", []string{"pkg"}, WithDynamic("beta"))
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}
	if res.Outcome != OutcomeRouted || res.Value != 42 {
		t.Errorf("Result = %+v, want routed 42", res)
	}
	if got.Token != "i" || got.Command != "install" || strings.Join(got.Args, " ") != "pkg" {
		t.Errorf("router request = %+v", got)
	}
	if got.Options.Dynamic != "beta" || got.Options.Through {
		t.Errorf("router options = %+v", got.Options)
	}
	if out.Len() != 0 {
		t.Errorf("handlers should not run behind a router, got %q", out.String())
	}
}

func TestRunCommandScriptRouter(t *testing.T) {
	t.Parallel()

	root := fixture(t)
	testutil.MustWriteFile(t, root+"/src/cli/"+registry.RouterFileName,
		`echo "route $1 $2 -> $PLUGMUX_RESOLVED through=$PLUGMUX_THROUGH dynamic=$PLUGMUX_DYNAMIC"`)

	p, out := newPlugin(t, Options{Path: root})

	res, err := p.RunCommand(t.Context(), "i", []string{"pkg"},
		WithLocalOptions(registry.LocalOptions{Through: true, Dynamic: "x"}))
	if err != nil {
		t.Fatalf("RunCommand() error = %v", err)
	}
	if res.Outcome != OutcomeRouted {
		t.Errorf("Outcome = %v, want routed", res.Outcome)
	}
	if want := "route i pkg -> install through=true dynamic=x"; !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunCommandUsageError(t *testing.T) {
	t.Parallel()

	p, out := newPlugin(t, Options{Path: fixture(t)})

	_, err := p.RunCommand(t.Context(), "-x", nil)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("RunCommand() error = %v, want ErrUsage", err)
	}
	if out.Len() != 0 {
		t.Errorf("a usage error should not print help, got %q", out.String())
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	if OutcomeCommandHelp.String() != "command-help" || Outcome(99).String() != "Outcome(99)" {
		t.Error("unexpected Outcome strings")
	}
	if IntentNotHandled.String() != "not-handled" || Intent(7).String() != "Intent(7)" {
		t.Error("unexpected Intent strings")
	}
}
