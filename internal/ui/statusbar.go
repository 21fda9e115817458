package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, state string, seq, inRange, closeRange int, command string) string {
	status := StyleStatusScanning.Render("[" + strings.ToUpper(state) + "]")
	if state == "idle" {
		status = StyleStatusIdle.Render("[IDLE]")
	}

	info := fmt.Sprintf(" Cycle: %d  In range: %d  Close: %d  Command: %s",
		seq, inRange, closeRange, command)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	padding := strings.Repeat(" ", gap)

	return StyleStatusBar.Width(width).Render(content + padding)
}
