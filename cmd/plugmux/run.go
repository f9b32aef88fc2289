// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plugmux/plugmux/internal/config"
	"github.com/plugmux/plugmux/internal/plugin"
	"github.com/plugmux/plugmux/pkg/types"
)

// pluginFlags select and configure one plugin from the command line. They
// mirror the fields of a plugins entry in the configuration.
type pluginFlags struct {
	path         string
	plugin       string
	aliases      []string
	trigger      string
	triggerValue string
	commandsPath string
	through      bool
	ommit        []string
}

func (f *pluginFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", "", "plugin root directory")
	cmd.Flags().StringVar(&f.plugin, "plugin", "", "plugin name looked up in the plugin directories")
	cmd.Flags().StringSliceVar(&f.aliases, "aliases", nil, "names that activate the plugin besides its own")
	cmd.Flags().StringVar(&f.trigger, "trigger", "", "activation trigger; /expr/ is a regular expression")
	cmd.Flags().StringVar(&f.triggerValue, "trigger-value", "", "value tested against the trigger (default: the first argument)")
	cmd.Flags().StringVar(&f.commandsPath, "commands-path", "", "commands folder below the plugin root")
	cmd.Flags().BoolVar(&f.through, "through", false, "decline unknown commands silently")
	cmd.Flags().StringSliceVar(&f.ommit, "ommit", nil, "glob patterns of help files to hide")
	cmd.MarkFlagsMutuallyExclusive("path", "plugin")
	cmd.MarkFlagsOneRequired("path", "plugin")
}

// entry converts the flags to a plugins entry so they go through the same
// option building as the configuration.
func (f *pluginFlags) entry() config.PluginEntry {
	ommit := make([]types.GlobPattern, len(f.ommit))
	for i, o := range f.ommit {
		ommit[i] = types.GlobPattern(o)
	}
	return config.PluginEntry{
		Path:         types.FilesystemPath(f.path),
		Plugin:       f.plugin,
		Aliases:      f.aliases,
		Trigger:      f.trigger,
		Through:      f.through,
		Ommit:        ommit,
		CommandsPath: types.FilesystemPath(f.commandsPath),
	}
}

// build creates the plugin selected by the flags.
func (f *pluginFlags) build(app *App, cfg *config.Config, argv []string) (plugin.Helper, error) {
	opts, err := app.pluginOptions(cfg, f.entry(), argv, app.logger())
	if err != nil {
		return nil, err
	}
	opts.TriggerValue = f.triggerValue
	return plugin.New(opts)
}

func newRunCommand(app *App) *cobra.Command {
	var flags pluginFlags

	runCmd := &cobra.Command{
		Use:   "run (--path dir | --plugin name) [flags] [command] [args...]",
		Short: "Run a command of a single plugin",
		Long: `Run a command of a single plugin.

The first argument is the command. A first argument equal to the plugin
name is skipped, aliases from aliases.json are resolved, and "help" or no
command lists the plugin's commands.`,
		Example: `  plugmux run --path ./tools install left-pad
  plugmux run --plugin deploy --through staging
  plugmux run --plugin @acme/lint --trigger /^li/ lint help`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := app.configOrDefault(ctx)
			argv := append([]string{config.AppName}, args...)

			h, err := flags.build(app, cfg, argv)
			if err != nil {
				return app.fail(cmd, cfg, err)
			}
			p, ok := h.(*plugin.Plugin)
			if !ok {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Plugin not triggered:")+" "+flags.entry().Name())
				return nil
			}

			command, rest := splitCommand(args)
			handled, err := app.runPlugin(ctx, p, command, rest)
			if err != nil {
				return app.fail(cmd, cfg, err)
			}
			if !handled {
				return app.fail(cmd, cfg, notHandledError(command))
			}
			return nil
		},
	}
	runCmd.Flags().SetInterspersed(false)
	flags.register(runCmd)

	return runCmd
}
