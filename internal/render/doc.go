// SPDX-License-Identifier: MPL-2.0

// Package render holds the terminal presentation collaborators used by the
// plugin engine: a glamour-backed markdown renderer for command docs and
// the lipgloss palette shared by help listings and error output.
package render
