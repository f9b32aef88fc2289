// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"
)

type (
	// ActionableError says what plugmux was doing, on which plugin, file or
	// command, and how the user can get past the failure. Issue optionally
	// links a catalog entry that the CLI renders below the message.
	//
	//	return issue.NewErrorContext().
	//		WithOperation("locate plugin").
	//		WithResource("deploy").
	//		WithIssue(issue.PluginNotFoundId).
	//		WithSuggestion("Use --path to point at the plugin root directly").
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "resolve command".
		Operation   string
		Resource    string
		Suggestions []string
		Cause       error
		Issue       Id
	}

	// ErrorContext builds an ActionableError step by step.
	ErrorContext struct {
		e ActionableError
	}
)

// NewErrorContext starts an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the message followed by one bullet per suggestion. In
// verbose mode the causes are listed as an indented tree; joined errors
// (plugin.toml and plugin.cue problems, invalid config entries) get one
// branch each.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		writeCauses(&b, e.Cause, 1)
	}
	return b.String()
}

func writeCauses(b *strings.Builder, err error, depth int) {
	for err != nil {
		fmt.Fprintf(b, "\n%s- %s", strings.Repeat("  ", depth), err)
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, branch := range u.Unwrap() {
				writeCauses(b, branch, depth+1)
			}
			return
		case interface{ Unwrap() error }:
			err = u.Unwrap()
			depth++
		default:
			return
		}
	}
}

// CatalogIssue returns the linked catalog entry, or nil.
func (e *ActionableError) CatalogIssue() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

// WithOperation sets what was being attempted.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.e.Operation = op
	return c
}

// WithResource sets the plugin, path or command involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.e.Resource = res
	return c
}

// WithSuggestion appends a hint. Hints are printed in the order added.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.e.Suggestions = append(c.e.Suggestions, sug)
	return c
}

// WithIssue links a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.e.Issue = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.e.Cause = err
	return c
}

// Build returns a copy of the error built so far, or nil when no
// operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.e.Operation == "" {
		return nil
	}
	ae := c.e
	ae.Suggestions = append([]string(nil), c.e.Suggestions...)
	return &ae
}

// BuildError is Build for return statements: it never yields a typed nil.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
