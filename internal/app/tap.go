package app

import (
	"context"
	"time"

	"crowdsense.klederson.com/internal/bluetooth"
	tea "github.com/charmbracelet/bubbletea"
)

// tapScanner wraps a WindowScanner and mirrors every observation to the
// Bubble Tea program for the live feed. The accumulator still sees each
// observation exactly once; Send is safe from the scanner's goroutine.
type tapScanner struct {
	inner   bluetooth.WindowScanner
	program *tea.Program
}

func (t *tapScanner) Scan(ctx context.Context, window time.Duration, fn bluetooth.ObservationFunc) error {
	return t.inner.Scan(ctx, window, func(obs bluetooth.Observation) {
		fn(obs)
		if t.program != nil {
			t.program.Send(ObservationMsg(obs))
		}
	})
}
