// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugmux/plugmux/internal/config"
	"github.com/plugmux/plugmux/internal/helpdoc"
)

func newHelpFilesCommand(app *App) *cobra.Command {
	var (
		flags   pluginFlags
		content bool
	)

	cmd := &cobra.Command{
		Use:   "help-files (--path dir | --plugin name)",
		Short: "List the help files of a plugin",
		Long: `List the markdown help files of a plugin in discovery order.

Files matching **/*.plugmux-test.md and the --ommit patterns are left out.
With --content, the help listing built from the files is printed instead.
Plugins whose trigger does not match are listed too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.configOrDefault(cmd.Context())

			h, err := flags.build(app, cfg, []string{config.AppName})
			if err != nil {
				return app.fail(cmd, cfg, err)
			}

			if content {
				entries, err := h.HelpContent()
				if err != nil {
					return app.fail(cmd, cfg, err)
				}
				helpdoc.Display(app.stdout, entries, app.display)
				return nil
			}

			files, err := h.HelpFiles()
			if err != nil {
				return app.fail(cmd, cfg, err)
			}
			for _, f := range files {
				fmt.Fprintln(app.stdout, f)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&content, "content", false, "print the help listing instead of file paths")

	return cmd
}

func newAliasesCommand(app *App) *cobra.Command {
	var (
		flags   pluginFlags
		inverse bool
	)

	cmd := &cobra.Command{
		Use:   "aliases (--path dir | --plugin name)",
		Short: "Show the alias table of a plugin",
		Long: `Show the aliases.json table of a plugin, one command per line.

With --inverse, each alias is shown with the command it resolves to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.configOrDefault(cmd.Context())

			h, err := flags.build(app, cfg, []string{config.AppName})
			if err != nil {
				return app.fail(cmd, cfg, err)
			}

			table := h.Aliases()
			if inverse {
				table = table.Inverse()
			}
			if table.Len() == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no aliases)"))
				return nil
			}
			for _, name := range table.Names() {
				fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render(name), strings.Join(table.Aliases(name), ", "))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&inverse, "inverse", false, "map aliases to commands")

	return cmd
}
