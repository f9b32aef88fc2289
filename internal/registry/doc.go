// SPDX-License-Identifier: MPL-2.0

// Package registry maps command names to handlers for one plugin.
//
// Handlers come from two places: Go code registers them explicitly with
// Register, and Scan registers one ScriptHandler per "<name>.sh" file found
// in the plugin's commands directory. Scripts run in-process on the
// mvdan/sh interpreter. A ScriptRouter wraps a "_router.sh" file that
// takes over dispatch for a whole plugin.
package registry
