// SPDX-License-Identifier: MPL-2.0

// Package testutil writes and reads the plugin trees, aliases.json files
// and config.cue files tests run plugmux against. Every helper fails the
// test on error instead of returning it.
package testutil
