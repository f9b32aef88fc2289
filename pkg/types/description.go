// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDescriptionText is wrapped by InvalidDescriptionTextError.
var ErrInvalidDescriptionText = errors.New("invalid description text")

type (
	// DescriptionText is the summary printed next to a command or plugin
	// in help listings and by `plugmux aliases`. Empty is allowed; an empty
	// doc file has no summary.
	DescriptionText string

	// InvalidDescriptionTextError reports a blank or multi-line summary.
	InvalidDescriptionTextError struct {
		Value DescriptionText
	}
)

func (d DescriptionText) String() string { return string(d) }

// IsValid accepts the empty summary and any single non-blank line.
func (d DescriptionText) IsValid() (bool, []error) {
	s := string(d)
	if s != "" && (strings.TrimSpace(s) == "" || strings.ContainsAny(s, "\r\n")) {
		return false, []error{&InvalidDescriptionTextError{Value: d}}
	}
	return true, nil
}

func (e *InvalidDescriptionTextError) Error() string {
	return fmt.Sprintf("invalid description %q: must be a single non-blank line", e.Value)
}

func (e *InvalidDescriptionTextError) Unwrap() error { return ErrInvalidDescriptionText }
