package statsui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorText   = lipgloss.Color("#E8E6E3")
	colorMuted  = lipgloss.Color("#7D8590")
	colorBorder = lipgloss.Color("#3B4252")
	colorAccent = lipgloss.Color("#5FAFD7")
	colorError  = lipgloss.Color("#E06C75")
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)
	currentTabStyle = tabStyle.
			Foreground(colorText).
			Bold(true).
			BorderForeground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)
	cardTitleStyle = mutedStyle
	cardValueStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		PaddingRight(1).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorBorder)
	s.Cell = lipgloss.NewStyle().Foreground(colorMuted).PaddingRight(1)
	s.Selected = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	return s
}
