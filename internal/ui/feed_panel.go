package ui

import (
	"fmt"
	"strings"
)

// FeedRow is one observation as the feed panel displays it.
type FeedRow struct {
	Addr     string
	RSSI     int
	Distance float64 // meters, estimated
	Known    bool    // allow-listed, excluded from counting
	Close    bool    // inside the footstep bound
}

// RenderFeedPanel renders the live observation feed, newest first.
func RenderFeedPanel(rows []FeedRow, width, height int) string {
	var b strings.Builder

	b.WriteString(StylePanelTitle.Render("OBSERVATIONS"))
	b.WriteString("\n")

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	if len(rows) > visible {
		rows = rows[:visible]
	}

	for _, r := range rows {
		marker := " "
		style := StyleFeedRSSI
		switch {
		case r.Known:
			marker = "k"
			style = StyleFeedKnown
		case r.Close:
			marker = "!"
			style = StyleFeedClose
		}
		line := fmt.Sprintf(" %s %s %s %s",
			style.Render(marker),
			StyleFeedAddr.Render(r.Addr),
			style.Render(fmt.Sprintf("%4ddBm", r.RSSI)),
			StyleFeedRSSI.Render(fmt.Sprintf("%5.1fm", r.Distance)))
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		b.WriteString(StyleHelp.Render("  waiting for advertisements..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleHelp.Render(" k=allow-listed  !=close range"))

	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(b.String())
}
