package report

import "github.com/charmbracelet/lipgloss"

// Terminal styles shared by the text reporter.
var (
	// StyleHeader marks artifact paths and section titles.
	StyleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleError marks failures.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// StyleWarn marks warnings.
	StyleWarn = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleOK marks written artifacts.
	StyleOK = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleDim is used for counts and hints.
	StyleDim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle applies style when colors are enabled
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
