package main

import (
	"github.com/charmbracelet/lipgloss"

	"termlab/shell"
)

var (
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dirStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

// styleFor maps a shell style tag onto its terminal presentation. Plain
// text passes through untouched.
func styleFor(tag shell.Style) lipgloss.Style {
	switch tag {
	case shell.StyleCommand:
		return commandStyle
	case shell.StyleError:
		return errorStyle
	case shell.StyleDir:
		return dirStyle
	case shell.StyleAlert:
		return alertStyle
	default:
		return lipgloss.NewStyle()
	}
}
