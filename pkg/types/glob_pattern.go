// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGlobPattern is the sentinel error wrapped by InvalidGlobPatternError.
var ErrInvalidGlobPattern = errors.New("invalid glob pattern")

type (
	// GlobPattern is an ignore pattern applied to help documentation files.
	// A leading "!" is accepted for compatibility with glob-ignore lists and
	// carries no extra meaning.
	GlobPattern string

	// InvalidGlobPatternError is returned when a GlobPattern is empty once
	// the optional "!" prefix is removed.
	InvalidGlobPatternError struct {
		Value GlobPattern
	}
)

// String returns the string representation of the GlobPattern.
func (g GlobPattern) String() string { return string(g) }

// Normalized returns the pattern without the "!" prefix and surrounding spaces.
func (g GlobPattern) Normalized() string {
	return strings.TrimPrefix(strings.TrimSpace(string(g)), "!")
}

// Validate returns an error if the normalized pattern is empty.
func (g GlobPattern) Validate() error {
	if g.Normalized() == "" {
		return &InvalidGlobPatternError{Value: g}
	}
	return nil
}

// Error implements the error interface for InvalidGlobPatternError.
func (e *InvalidGlobPatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: must not be empty", e.Value)
}

// Unwrap returns ErrInvalidGlobPattern for errors.Is() compatibility.
func (e *InvalidGlobPatternError) Unwrap() error { return ErrInvalidGlobPattern }
