// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// Style names accepted by MarkdownOptions.Style besides a glamour style file path.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleASCII = "ascii"
)

type (
	// Markdown displays a markdown document on a writer.
	Markdown interface {
		Display(w io.Writer, content string) error
	}

	// MarkdownOptions configures the glamour renderer.
	MarkdownOptions struct {
		// Style is one of the Style* names or a path to a glamour JSON style.
		// Empty means StyleAuto.
		Style string
		// Width is the word wrap width (0 for glamour's default).
		Width int
	}

	// GlamourMarkdown renders markdown with glamour.
	GlamourMarkdown struct {
		opts MarkdownOptions
	}

	// PlainMarkdown writes markdown unchanged. Used when output is not a
	// terminal and in tests.
	PlainMarkdown struct{}
)

// NewMarkdown creates a glamour-backed Markdown renderer.
func NewMarkdown(opts MarkdownOptions) *GlamourMarkdown {
	return &GlamourMarkdown{opts: opts}
}

// Render converts markdown to styled terminal text.
func (g *GlamourMarkdown) Render(content string) (string, error) {
	var rendererOpts []glamour.TermRendererOption
	switch g.opts.Style {
	case "", StyleAuto:
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	default:
		rendererOpts = append(rendererOpts, glamour.WithStylePath(g.opts.Style))
	}

	if g.opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(g.opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return renderer.Render(content)
}

// Display renders content and writes it to w.
func (g *GlamourMarkdown) Display(w io.Writer, content string) error {
	out, err := g.Render(content)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Display writes content to w as is.
func (PlainMarkdown) Display(w io.Writer, content string) error {
	_, err := io.WriteString(w, content)
	return err
}
