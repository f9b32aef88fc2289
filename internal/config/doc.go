// SPDX-License-Identifier: MPL-2.0

// Package config handles host configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the platform config directory
// (~/.config/plugmux on Linux, ~/Library/Application Support/plugmux on macOS,
// %APPDATA%\plugmux on Windows), then from ./config.cue, else defaults apply.
// Files are validated against the embedded #Config schema. PLUGMUX_* environment
// variables override file values.
package config
