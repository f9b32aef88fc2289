// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the optional plugin manifest at a plugin root.
//
// plugin.cue is checked first and validated against an embedded CUE schema;
// plugin.toml is the fallback. A plugin without a manifest is valid.
package manifest
