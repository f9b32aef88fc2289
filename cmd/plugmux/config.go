// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plugmux/plugmux/internal/config"
)

// newConfigCommand creates the `plugmux config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage plugmux configuration",
		Long: `Manage plugmux configuration.

Configuration is stored in:
  - Linux: ~/.config/plugmux/config.cue
  - macOS: ~/Library/Application Support/plugmux/config.cue
  - Windows: %APPDATA%\plugmux\config.cue

A config.cue in the working directory is used when the file above does
not exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			showConfig(app, cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return app.fail(cmd, nil, fmt.Errorf("failed to create config: %w", err))
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			fmt.Fprintf(app.stdout, "Plugins directory: %s\n", filepath.Join(cfgDir, config.PluginsDirName))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config) {
	out := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), configLocation(cfg))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s:\n", keyStyle.Render("plugin search path"))
	for _, dir := range app.searchDirs(cfg) {
		fmt.Fprintf(out, "  - %s\n", valueStyle.Render(dir))
	}
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("default_commands_path"), valueStyle.Render(cfg.DefaultCommandsPath.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("plugins"))
	if len(cfg.Plugins) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, entry := range cfg.Plugins {
		var details []string
		if len(entry.Aliases) > 0 {
			details = append(details, "aliases: "+strings.Join(entry.Aliases, ", "))
		}
		if entry.Trigger != "" {
			details = append(details, "trigger: "+entry.Trigger)
		}
		if entry.Through {
			details = append(details, "through")
		}
		line := "  - " + valueStyle.Render(entry.Name())
		if len(details) > 0 {
			line += " " + SubtitleStyle.Render("("+strings.Join(details, "; ")+")")
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(out, "  banner: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Banner)))
}

// configLocation names where cfg came from.
func configLocation(cfg *config.Config) string {
	if cfg.Source != "" {
		return cfg.Source
	}
	return SubtitleStyle.Render("(using defaults)")
}
