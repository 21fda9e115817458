package app

import (
	"context"
	"log/slog"
	"time"

	"crowdsense.klederson.com/internal/bluetooth"
	"crowdsense.klederson.com/internal/config"
	"crowdsense.klederson.com/internal/indicator"
	"crowdsense.klederson.com/internal/node"
	"crowdsense.klederson.com/internal/presence"
	"crowdsense.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// shared holds state shared between the Bubble Tea model copies and the
// node goroutines. Because Bubble Tea uses value receivers, pointer fields
// ensure all copies see the same underlying data.
type shared struct {
	scanner bluetooth.WindowScanner
	acc     *presence.Accumulator
	cell    *presence.CommandCell
	allow   *presence.AllowList
	node    *node.Node
	cancel  context.CancelFunc
}

// Model is the root Bubble Tea model for the crowdsense monitor.
type Model struct {
	width  int
	height int

	source            string
	window            time.Duration
	footstepThreshold int

	latest  node.CycleResult
	history *CountRing
	feed    []ui.FeedRow
	stopped bool

	shared *shared
}

// New creates the monitor model around an already-wired pipeline. The
// source string labels where observations come from ("hci0", "demo", ...).
func New(scanner bluetooth.WindowScanner, acc *presence.Accumulator,
	cell *presence.CommandCell, allow *presence.AllowList,
	window time.Duration, footstepThreshold int, source string) Model {
	return Model{
		source:            source,
		window:            window,
		footstepThreshold: footstepThreshold,
		history:           NewCountRing(config.CycleHistory),
		latest: node.CycleResult{
			Class: presence.Classification{Command: presence.CommandStop},
		},
		shared: &shared{
			scanner: scanner,
			acc:     acc,
			cell:    cell,
			allow:   allow,
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			if m.shared.cancel != nil {
				m.shared.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case ObservationMsg:
		obs := bluetooth.Observation(msg)
		row := ui.FeedRow{
			Addr:     obs.Addr,
			RSSI:     int(obs.RSSI),
			Distance: bluetooth.RSSIToDistance(float64(obs.RSSI), config.MeasuredPower, config.PathLossExp),
			Known:    m.shared.allow.Known(obs.Addr),
			Close:    int(obs.RSSI) > m.footstepThreshold,
		}
		m.feed = append([]ui.FeedRow{row}, m.feed...)
		if len(m.feed) > config.FeedHistory {
			m.feed = m.feed[:config.FeedHistory]
		}
		return m, nil

	case CycleMsg:
		m.latest = node.CycleResult(msg)
		m.history.Push(m.latest.Counts.InRange)
		return m, nil

	case NodeStoppedMsg:
		m.stopped = true
		if msg.Err != nil && msg.Err != context.Canceled {
			slog.Error("monitor: node stopped", "error", msg.Err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing crowdsense monitor..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	cycleW := m.width * 2 / 5
	if cycleW < 30 {
		cycleW = 30
	}
	feedW := m.width - cycleW
	if feedW < 20 {
		feedW = 20
		cycleW = m.width - feedW
	}

	state := m.stateLabel()
	menuBar := ui.RenderMenuBar(m.width, m.source, state)

	cur := ui.CycleView{
		Seq:        m.latest.Seq,
		InRange:    m.latest.Counts.InRange,
		CloseRange: m.latest.Counts.CloseRange,
		Presence:   m.latest.Class.Presence,
		Density:    m.latest.Class.Density.String(),
		Command:    m.latest.Class.Command.String(),
		Symbol:     byte(m.latest.Class.Command),
	}
	cyclePanel := ui.RenderCyclePanel(cycleW, bodyH, cur, m.history.Values())
	feedPanel := ui.RenderFeedPanel(m.feed, feedW, bodyH)

	statusBar := ui.RenderStatusBar(m.width, state, m.latest.Seq,
		m.latest.Counts.InRange, m.latest.Counts.CloseRange,
		m.latest.Class.Command.String())

	return ui.ComposeLayout(menuBar, cyclePanel, feedPanel, statusBar)
}

// stateLabel returns the cycle driver phase for display.
func (m Model) stateLabel() string {
	if m.stopped {
		return "stopped"
	}
	if m.shared.node == nil {
		return "idle"
	}
	return m.shared.node.State().String()
}

// StartNode wires the cycle driver to the program and starts it. Must be
// called before p.Run().
func (m *Model) StartNode(p *tea.Program) {
	ctx, cancel := context.WithCancel(context.Background())
	m.shared.cancel = cancel

	tap := &tapScanner{inner: m.shared.scanner, program: p}
	n := node.New(tap, m.shared.acc, m.shared.cell, indicator.Nop{}, m.window, slog.Default())
	m.shared.node = n

	results := make(chan node.CycleResult, 4)
	n.SetResultSink(results)

	go func() {
		for r := range results {
			p.Send(CycleMsg(r))
		}
	}()
	go func() {
		err := n.Run(ctx)
		close(results)
		p.Send(NodeStoppedMsg{Err: err})
	}()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
