// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger shared by the plugin core
// and the host CLI.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "plugmux"

// New returns a logger writing to w. Verbose lowers the level to debug so
// each resolution stage is traced; otherwise only warnings and errors show.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// For returns a sub-logger tagged with the plugin name.
func For(l *log.Logger, plugin string) *log.Logger {
	if plugin == "" {
		return l
	}
	return l.With("plugin", plugin)
}
