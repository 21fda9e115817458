package indicator

import (
	"fmt"
	"io"
	"os"
	"time"

	"crowdsense.klederson.com/internal/config"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleGreenPulse = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF41")).Bold(true)
	styleRedPulse   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3300")).Bold(true)
)

// Terminal blinks pulses as colored dots on a terminal, standing in for the
// green and red LEDs of the deployed unit. Pulses are emitted at the
// hardware blink cadence, so a large crowd takes visibly longer to report;
// the cycle loop calls Pulse before resetting, same as the firmware.
type Terminal struct {
	Out     io.Writer
	OnTime  time.Duration
	OffTime time.Duration
}

// NewTerminal creates a terminal indicator on stdout with the default
// blink cadence.
func NewTerminal() *Terminal {
	return &Terminal{
		Out:     os.Stdout,
		OnTime:  config.PulseOnTime,
		OffTime: config.PulseOffTime,
	}
}

// Pulse blinks inRange green dots followed by closeRange red dots.
func (t *Terminal) Pulse(inRange, closeRange int) {
	t.blink(styleGreenPulse.Render("●"), inRange)
	t.blink(styleRedPulse.Render("●"), closeRange)
	if inRange > 0 || closeRange > 0 {
		fmt.Fprintln(t.Out)
	}
}

func (t *Terminal) blink(dot string, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(t.Out, dot)
		time.Sleep(t.OnTime)
		time.Sleep(t.OffTime)
	}
}
