package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	TableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	WonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	LostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	PushedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7"))

	BankruptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Styled reports whether w is a terminal that understands colour.
func Styled(w io.Writer) bool {
	return termenv.NewOutput(w).ColorProfile() != termenv.Ascii
}

func render(styled bool, style lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
