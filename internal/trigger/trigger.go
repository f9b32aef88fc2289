// SPDX-License-Identifier: MPL-2.0

// Package trigger decides whether a plugin instance handles the current
// invocation. A trigger is either a Literal (exact match) or a Pattern
// (regular expression with its own anchoring).
package trigger

import (
	"fmt"
	"regexp"
	"strings"
)

type (
	// Trigger gates a plugin. A nil Trigger means "always active"; use
	// Matches to get that behavior without nil checks.
	Trigger interface {
		Matches(value string) bool
		String() string
	}

	// Literal matches a value that is exactly equal to it.
	Literal string

	// Pattern matches values accepted by its regular expression.
	Pattern struct {
		re *regexp.Regexp
	}
)

// Matches reports whether value equals the literal.
func (l Literal) Matches(value string) bool { return string(l) == value }

// String returns the literal text.
func (l Literal) String() string { return string(l) }

// NewPattern compiles expr into a Pattern.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid trigger pattern %q: %w", expr, err)
	}
	return Pattern{re: re}, nil
}

// MustPattern is like NewPattern but panics on an invalid expression.
func MustPattern(expr string) Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Matches reports whether the pattern accepts value. The zero Pattern
// matches nothing.
func (p Pattern) Matches(value string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(value)
}

// String returns the pattern in /expr/ notation.
func (p Pattern) String() string {
	if p.re == nil {
		return "//"
	}
	return "/" + p.re.String() + "/"
}

// FromAliases builds the whole-token, case-sensitive pattern that accepts
// the plugin name or any of its aliases: ^(name|alias1|alias2)$.
func FromAliases(name string, aliases []string) Pattern {
	alts := make([]string, 0, len(aliases)+1)
	alts = append(alts, regexp.QuoteMeta(name))
	for _, a := range aliases {
		alts = append(alts, regexp.QuoteMeta(a))
	}
	return MustPattern("^(" + strings.Join(alts, "|") + ")$")
}

// Parse reads a trigger from text: "/expr/" is a Pattern, anything else a
// Literal. The empty string yields a nil Trigger.
func Parse(s string) (Trigger, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		return NewPattern(s[1 : len(s)-1])
	}
	return Literal(s), nil
}

// Matches applies t to value, treating a nil trigger as always active.
func Matches(t Trigger, value string) bool {
	if t == nil {
		return true
	}
	return t.Matches(value)
}

// DefaultValue returns the value a trigger is tested against when none is
// given: the first positional argument after the program name.
func DefaultValue(argv []string) string {
	if len(argv) < 2 {
		return ""
	}
	return argv[1]
}
