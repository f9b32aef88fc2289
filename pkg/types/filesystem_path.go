// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidFilesystemPath is wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a plugin root, commands folder, plugin search
	// directory or config file as written by the user. Relative paths are
	// resolved by whoever consumes them.
	FilesystemPath string

	// InvalidFilesystemPathError reports a blank path.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

func (p FilesystemPath) String() string { return string(p) }

// IsValid rejects empty and whitespace-only paths.
func (p FilesystemPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) != "" {
		return true, nil
	}
	return false, []error{&InvalidFilesystemPathError{Value: p}}
}

// ExpandHome replaces a leading "~" or "~/" with home. "~user" is left as
// is, as is every path when home is empty.
func (p FilesystemPath) ExpandHome(home string) FilesystemPath {
	s := string(p)
	if home == "" || (s != "~" && !strings.HasPrefix(s, "~/")) {
		return p
	}
	return FilesystemPath(filepath.Join(home, s[1:]))
}

func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: must not be blank", e.Value)
}

func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
