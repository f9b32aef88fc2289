// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/plugmux/plugmux/internal/render"
)

// ColorHighlight is blue - used for keys, paths and command names.
const ColorHighlight = lipgloss.Color("#3B82F6")

var (
	// TitleStyle is for section titles.
	TitleStyle = render.TitleStyle

	// SubtitleStyle is for secondary text and "(none)" placeholders.
	SubtitleStyle = render.MutedStyle

	// SuccessStyle is for check marks and configured values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(render.ColorSuccess)

	// ErrorStyle is for error headers.
	ErrorStyle = render.ErrorStyle

	// WarningStyle is for warnings.
	WarningStyle = render.WarningStyle

	// CmdStyle is for keys, paths and command names.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
