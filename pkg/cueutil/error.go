// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

type (
	// Problem is one value CUE rejected, located by its field path.
	Problem struct {
		// Path is in JSON-path notation, e.g. "plugins[0].through". It is
		// empty for file-level errors such as syntax errors.
		Path    string
		Message string
	}

	// FileError lists the problems CUE reported for one plugin.cue or
	// config.cue file. The CUE error stays reachable via Unwrap.
	FileError struct {
		File     string
		Problems []Problem
		cause    error
	}
)

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Error returns "<file>: <path>: <message>" for a single problem and a
// "validation failed" list otherwise.
func (e *FileError) Error() string {
	if len(e.Problems) == 1 {
		return e.File + ": " + e.Problems[0].String()
	}
	var b strings.Builder
	b.WriteString(e.File + ": validation failed:")
	for _, p := range e.Problems {
		b.WriteString("\n  " + p.String())
	}
	return b.String()
}

// Unwrap returns the CUE error.
func (e *FileError) Unwrap() error { return e.cause }

// FormatError turns a CUE error into a *FileError naming file. Errors that
// do not come from CUE are only prefixed with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	list := errors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	fe := &FileError{File: file, cause: err}
	for _, e := range list {
		sel := errors.Path(e)
		path := fieldPath(sel)
		msg := e.Error()
		// CUE often repeats the path, dotted, at the start of the message.
		for _, prefix := range []string{path, strings.Join(sel, ".")} {
			if prefix != "" && strings.HasPrefix(msg, prefix+":") {
				msg = strings.TrimSpace(msg[len(prefix)+1:])
				break
			}
		}
		fe.Problems = append(fe.Problems, Problem{Path: path, Message: msg})
	}
	return fe
}

// fieldPath renders ["plugins", "0", "path"] as "plugins[0].path".
func fieldPath(sel []string) string {
	var b strings.Builder
	for i, s := range sel {
		switch {
		case i == 0:
			b.WriteString(s)
		case isIndex(s):
			b.WriteString("[" + s + "]")
		default:
			b.WriteString("." + s)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

// CheckFileSize rejects data larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, size, maxSize)
	}
	return nil
}
