// SPDX-License-Identifier: MPL-2.0

package render

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all plugmux output.
const (
	// ColorPrimary is purple - used for titles and the banner.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for the program prefix in help listings.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for plugin versions.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for "not found" notices and errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")
)

var (
	// BoldStyle is for command labels and section headers.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// TitleStyle is for the banner.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// MutedStyle is for de-emphasized prefixes.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// VersionStyle is for version numbers in the start banner.
	VersionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and "not found" notices.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
