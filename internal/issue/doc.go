// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown guidance
// shown to users when plugin location, dispatch or configuration goes wrong.
package issue
