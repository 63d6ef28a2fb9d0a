package timer

import "github.com/charmbracelet/lipgloss"

const (
	padding  = 2
	maxWidth = 80
)

// Style holds the lipgloss styles used by the focus view.
type Style struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Banner    lipgloss.Style
}

func newStyle(darkTheme bool) Style {
	main := lipgloss.Color("#1A1A1A")
	hint := lipgloss.Color("#6C6C6C")

	if darkTheme {
		main = lipgloss.Color("#F5F5F5")
		hint = lipgloss.Color("#8A8A8A")
	}

	return Style{
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B0DB43")),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(main),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#12EAEA")),
		Hint:      lipgloss.NewStyle().Foreground(hint),
		Banner:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C492B1")),
	}
}
