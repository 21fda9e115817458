package ui

import (
	"fmt"
	"strings"
)

// CycleView is the latest completed cycle as the panel displays it.
type CycleView struct {
	Seq        int
	InRange    int
	CloseRange int
	Presence   bool
	Density    string
	Command    string
	Symbol     byte
}

// RenderCyclePanel renders the classification panel: current command,
// density, counts, and a bar-per-cycle history of in-range counts.
func RenderCyclePanel(width, height int, cur CycleView, history []int) string {
	var b strings.Builder

	b.WriteString(StylePanelTitle.Render("CLASSIFICATION"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Command:  %s %s\n",
		StyleCommand.Render(fmt.Sprintf("'%c'", cur.Symbol)),
		StyleMenuLabel.Render(cur.Command)))
	b.WriteString(fmt.Sprintf("  Density:  %s\n", StyleCount.Render(cur.Density)))
	presence := "no"
	if cur.Presence {
		presence = "yes"
	}
	b.WriteString(fmt.Sprintf("  Presence: %s\n\n", StyleCount.Render(presence)))

	b.WriteString(fmt.Sprintf("  In range:    %s\n",
		StyleCount.Render(fmt.Sprintf("%3d", cur.InRange))))
	b.WriteString(fmt.Sprintf("  Close range: %s\n\n",
		StyleCloseCount.Render(fmt.Sprintf("%3d", cur.CloseRange))))

	b.WriteString(StylePanelTitle.Render("HISTORY"))
	b.WriteString("\n")
	b.WriteString(renderHistory(history, width-6))

	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(b.String())
}

// renderHistory draws one bar per past cycle, scaled to the panel width.
func renderHistory(history []int, maxBar int) string {
	if maxBar < 4 {
		maxBar = 4
	}
	max := 1
	for _, v := range history {
		if v > max {
			max = v
		}
	}

	var b strings.Builder
	for _, v := range history {
		n := v * maxBar / max
		if v > 0 && n == 0 {
			n = 1
		}
		b.WriteString("  ")
		b.WriteString(StyleHistoryBar.Render(strings.Repeat("█", n)))
		b.WriteString(fmt.Sprintf(" %d\n", v))
	}
	return b.String()
}
