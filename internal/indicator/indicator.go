// Package indicator drives the human-visible pulse display at the end of
// each cycle: one green pulse per in-range device, then one red pulse per
// close-range device. Fire-and-forget, not safety-critical.
package indicator

import "log/slog"

// Indicator consumes the two per-cycle counts.
type Indicator interface {
	Pulse(inRange, closeRange int)
}

// Nop discards pulses. Used when the TUI monitor owns the display.
type Nop struct{}

func (Nop) Pulse(inRange, closeRange int) {}

// Log reports the counts as a single log line instead of blinking.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Pulse(inRange, closeRange int) {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("indicator: cycle pulses", "in_range", inRange, "close_range", closeRange)
}
