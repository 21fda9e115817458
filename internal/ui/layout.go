package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the cycle panel and observation feed horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, cyclePanel, feedPanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, cyclePanel, feedPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
