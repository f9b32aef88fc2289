// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/plugmux/plugmux/internal/config"
	"github.com/plugmux/plugmux/internal/helpdoc"
	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/internal/logging"
	"github.com/plugmux/plugmux/internal/plugin"
	"github.com/plugmux/plugmux/internal/registry"
	"github.com/plugmux/plugmux/internal/render"
	"github.com/plugmux/plugmux/internal/trigger"
	"github.com/plugmux/plugmux/pkg/types"
)

// errNotHandled is wrapped when every configured plugin declined a command.
var errNotHandled = errors.New("no plugin handled the command")

type (
	// App wires CLI dependencies. Every Cobra command handler receives an App
	// reference; flag values land on it before RunE runs.
	App struct {
		Config config.Provider

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		verbose    bool
		configPath string
		display    *helpdoc.DisplayState
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates the CLI composition root.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:  deps.Config,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		display: &helpdoc.DisplayState{ProgramName: config.AppName},
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads the configuration and applies its UI settings. The
// --verbose flag wins over ui.verbose.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.configPath)})
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose {
		a.verbose = true
	}
	if cfg.UI.Banner {
		a.display.ProgramVersion = Version
	}
	return cfg, nil
}

// configOrDefault is loadConfig for commands that can run without a
// configuration file. Load failures are reported as a warning.
func (a *App) configOrDefault(ctx context.Context) *config.Config {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		return config.DefaultConfig()
	}
	return cfg
}

func (a *App) logger() *log.Logger {
	return logging.New(a.stderr, a.verbose)
}

// searchDirs resolves where plugins declared by name are looked up.
func (a *App) searchDirs(cfg *config.Config) []string {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		cfgDir = ""
	}
	return config.SearchDirs(cfg, cfgDir)
}

// renderer picks the markdown renderer for command help. Output that is
// not a terminal gets the raw markdown.
func (a *App) renderer(cfg *config.Config) render.Markdown {
	if !isTerminal(a.stdout) {
		return render.PlainMarkdown{}
	}
	return render.NewMarkdown(render.MarkdownOptions{Style: cfg.UI.ColorScheme.String()})
}

// issueStyle is the glamour style used for catalog entries on stderr.
func (a *App) issueStyle(cfg *config.Config) string {
	if !isTerminal(a.stderr) {
		return "notty"
	}
	if cfg == nil {
		return render.StyleDark
	}
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeLight:
		return render.StyleLight
	case config.ColorSchemeASCII:
		return render.StyleASCII
	default:
		return render.StyleDark
	}
}

// pluginOptions turns a plugins entry from the configuration into plugin
// options. argv is what the trigger value defaults from.
func (a *App) pluginOptions(cfg *config.Config, entry config.PluginEntry, argv []string, logger *log.Logger) (plugin.Options, error) {
	trig, err := trigger.Parse(entry.Trigger)
	if err != nil {
		return plugin.Options{}, issue.NewErrorContext().
			WithOperation("configure plugin").
			WithResource(entry.Name()).
			WithSuggestion("Write regular expression triggers as /expr/").
			Wrap(err).
			BuildError()
	}

	return plugin.Options{
		Plugin:       entry.Plugin,
		Path:         entry.Path.String(),
		Aliases:      entry.Aliases,
		Trigger:      trig,
		CommandsPath: cfg.CommandsPathFor(entry).String(),
		Through:      entry.Through,
		Ommit:        entry.Ommit,
		SearchDirs:   a.searchDirs(cfg),
		Out:          a.stdout,
		IO:           registry.IO{Stdin: a.stdin, Stdout: a.stdout, Stderr: a.stderr},
		Renderer:     a.renderer(cfg),
		Display:      a.display,
		Args:         argv,
		Logger:       logger,
	}, nil
}

// runPlugin starts p and hands it the command. It reports false when p
// declined and the next plugin should be tried.
func (a *App) runPlugin(ctx context.Context, p *plugin.Plugin, command string, args []string) (bool, error) {
	if err := p.Start(); err != nil {
		return true, err
	}

	res, err := p.RunCommand(ctx, command, args)
	if err != nil {
		return true, err
	}
	if !res.Handled() {
		return false, nil
	}
	if code := exitCodeForValue(res.Value); code != types.ExitSuccess {
		return true, &ExitError{Code: code}
	}
	return true, nil
}

// fail prints err and converts it into an ExitError. A printed version
// is a success; script failures already wrote their own output.
func (a *App) fail(cmd *cobra.Command, cfg *config.Config, err error) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	code := exitCodeFor(err)
	if code == types.ExitSuccess {
		return nil
	}

	var (
		exitErr   *ExitError
		scriptErr *registry.ScriptExitError
	)
	silent := (errors.As(err, &exitErr) && exitErr.Err == nil) || errors.As(err, &scriptErr)
	if !silent {
		fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))
		a.renderIssue(cfg, err)
	}
	return &ExitError{Code: code, Err: err}
}

// renderIssue prints the catalog entry linked to err, if any.
func (a *App) renderIssue(cfg *config.Config, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	entry := ae.CatalogIssue()
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(a.issueStyle(cfg))
	if renderErr != nil {
		a.logger().Warn("failed to render issue catalog entry", "issue", entry.Id(), "err", renderErr)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

func notHandledError(command string) error {
	return issue.NewErrorContext().
		WithOperation("dispatch command").
		WithResource(command).
		WithIssue(issue.CommandNotFoundId).
		WithSuggestion("Run 'plugmux config show' to list the configured plugins").
		Wrap(errNotHandled).
		BuildError()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}
