// SPDX-License-Identifier: MPL-2.0

// Package platform holds the OS-specific bits of plugmux: where per-user
// configuration lives, which variable holds the home directory, and which
// names Windows refuses for plugin directories and command files.
package platform
