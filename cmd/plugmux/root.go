// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/plugmux/plugmux/internal/config"
	"github.com/plugmux/plugmux/internal/plugin"
	"github.com/plugmux/plugmux/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree. The root command itself walks
// the configured plugins.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plugmux [command] [args...]",
		Short: "Dispatch commands to folder-based plugins",
		Long: TitleStyle.Render("plugmux") + SubtitleStyle.Render(" - Dispatch commands to folder-based plugins") + `

plugmux hands a command line to plugins: directories holding a commands
folder of shell scripts and markdown docs, an optional aliases.json and an
optional plugin.cue or plugin.toml manifest.

Without a subcommand, the plugins listed in the configuration are tried
in order. Plugins whose trigger does not match are skipped, and
pass-through plugins decline commands they cannot resolve.

Unknown flags and commands starting with '-' are usage errors (exit code
2). Put '--' before arguments that must reach a plugin unparsed.

` + SubtitleStyle.Render("Examples:") + `
  plugmux deploy                  Let the configured plugins handle 'deploy'
  plugmux run --path ./tools i    Run the 'i' command of the plugin in ./tools
  plugmux help-files --path ./x   List the help files of a plugin
  plugmux config init             Create the default configuration`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigured(cmd, app, args)
		},
	}
	// Everything after the first positional argument belongs to the plugin.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: types.ExitUsage, Err: err}
	})

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/plugmux/config.cue)")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newHelpFilesCommand(app))
	rootCmd.AddCommand(newAliasesCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// runConfigured walks the configured plugins until one handles the command.
func runConfigured(cmd *cobra.Command, app *App, args []string) error {
	ctx := cmd.Context()

	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(cmd, nil, err)
	}
	if len(cfg.Plugins) == 0 {
		fmt.Fprintln(app.stderr, WarningStyle.Render("No plugins configured.")+" Add a 'plugins' list to "+configLocation(cfg))
		return cmd.Help()
	}

	logger := app.logger()
	command, rest := splitCommand(args)
	argv := append([]string{config.AppName}, args...)

	for _, entry := range cfg.Plugins {
		opts, err := app.pluginOptions(cfg, entry, argv, logger)
		if err != nil {
			return app.fail(cmd, cfg, err)
		}
		h, err := plugin.New(opts)
		if err != nil {
			return app.fail(cmd, cfg, err)
		}
		p, ok := h.(*plugin.Plugin)
		if !ok {
			logger.Debug("plugin not triggered", "plugin", entry.Name())
			continue
		}

		handled, err := app.runPlugin(ctx, p, command, rest)
		if err != nil {
			return app.fail(cmd, cfg, err)
		}
		if handled {
			return nil
		}
		logger.Debug("plugin declined", "plugin", entry.Name(), "command", command)
	}

	return app.fail(cmd, cfg, notHandledError(command))
}

// versionString renders the -ldflags build info for --version. Unknown
// parts are left out.
func versionString(version, commit, date string) string {
	if version == "dev" {
		return "dev (built from source)"
	}
	var extra []string
	if commit != "unknown" && commit != "" {
		extra = append(extra, "commit "+commit)
	}
	if date != "unknown" && date != "" {
		extra = append(extra, "built "+date)
	}
	if len(extra) == 0 {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, strings.Join(extra, ", "))
}

// Execute builds the command tree and runs it. This is called by
// main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(versionString(Version, Commit, BuildDate)),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
