package console

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	list       lipgloss.Style
	complete   lipgloss.Style
	todo       lipgloss.Style
	done       lipgloss.Style
	id         lipgloss.Style
	remaining  lipgloss.Style
	success    lipgloss.Style
	failure    lipgloss.Style
	empty      lipgloss.Style
	section    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		list:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		complete:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true),
		todo:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		done:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true),
		id:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		remaining:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:      lipgloss.NewStyle().Faint(true),
		section:    lipgloss.NewStyle().MarginTop(1),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
