// SPDX-License-Identifier: MPL-2.0

// Package plugin wraps a plugin directory and dispatches commands to it.
//
// New locates the plugin, applies its trigger and returns either a *Plugin
// or, when the trigger does not match, an *Inactive that can only list
// help. A *Plugin resolves the typed command through the alias table
// (Resolve), then hands it to a router, a registered handler or the help
// listing (Dispatch). RunCommand does both.
package plugin
