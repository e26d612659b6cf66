package connections

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	name   lipgloss.Style
	cell   lipgloss.Style
	faint  lipgloss.Style
	border lipgloss.Style
	empty  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")).Padding(0, 1),
		name:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
		cell:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		faint:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		empty:  lipgloss.NewStyle().Faint(true),
	}
}
