package output

import "github.com/charmbracelet/lipgloss"

// Color palette shared across all CLI output. Chosen for dark terminal
// backgrounds with good contrast.
const (
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorMuted   = lipgloss.Color("#6B7280")
)

var (
	// SuccessStyle is for success messages and the leading checkmark.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// WarningStyle is for warning messages and caution states.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	// MutedStyle is for secondary, de-emphasized text.
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
