package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorHeader   = lipgloss.Color("63")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("252")
	ColorSubtle   = lipgloss.Color("241")
	ColorInfo     = lipgloss.Color("39")
	ColorSuccess  = lipgloss.Color("42")
	ColorWarning  = lipgloss.Color("214")
	ColorError    = lipgloss.Color("196")
	ColorSelectFg = lipgloss.Color("229")
	ColorSelectBg = lipgloss.Color("57")
	ColorBorder   = lipgloss.Color("240")
)

// Shared styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader).MarginBottom(1)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorInfo)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	SelectedItemStyle = lipgloss.NewStyle().Foreground(ColorSelectFg).Background(ColorSelectBg)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true).
				Bold(true)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorSelectFg).Background(ColorSelectBg)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TabStyle       = lipgloss.NewStyle().Foreground(ColorSubtle).Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().Foreground(ColorSelectFg).Background(ColorSelectBg).Padding(0, 1)
)

// renderItem renders a list row with the selection marker.
func renderItem(text string, selected bool) string {
	if selected {
		return SelectedItemStyle.Render("> " + text)
	}
	return "  " + text
}
