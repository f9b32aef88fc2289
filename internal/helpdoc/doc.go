// SPDX-License-Identifier: MPL-2.0

// Package helpdoc builds a plugin's help listing from the markdown files
// that sit next to its command handlers, and prints that listing.
//
// Each "<commands>/<name>.md" file contributes one Entry. Its description is
// the third line of the file (line one is the title, line two a blank
// separator) or the first line when the third is missing or blank.
package helpdoc
