// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for plugmux.
//
// The root command walks the configured plugins in order and hands the
// command line to the first one that takes it. Subcommands run a single
// plugin, inspect its help files and aliases, and manage configuration.
package cmd
