package presence

import (
	"sync"

	"crowdsense.klederson.com/internal/bluetooth"
)

// Counts is the per-cycle tally consumed by Classify. CloseRange is a
// strict sub-condition of InRange, so CloseRange <= InRange always holds.
type Counts struct {
	InRange    int
	CloseRange int

	InRangeDetected    bool
	CloseRangeDetected bool
}

// Accumulator collects observations for the current scan cycle. Observe
// runs on the scanner's notification goroutine while Snapshot and Reset run
// on the cycle loop; the mutex makes that handoff safe, and the cycle loop
// only calls Snapshot/Reset after the scan window has closed.
//
// Observations are not deduplicated: a device advertising several times in
// one window is counted once per advertisement.
type Accumulator struct {
	mu     sync.Mutex
	counts Counts

	allow             *AllowList
	rssiThreshold     int16
	footstepThreshold int16
}

// NewAccumulator creates an accumulator with the given allow-list and
// detection bounds. footstepThreshold must be greater than rssiThreshold
// for the close-range condition to ever differ from the in-range one;
// config validation enforces that.
func NewAccumulator(allow *AllowList, rssiThreshold, footstepThreshold int16) *Accumulator {
	return &Accumulator{
		allow:             allow,
		rssiThreshold:     rssiThreshold,
		footstepThreshold: footstepThreshold,
	}
}

// Observe folds one observation into the current cycle's counts.
// Allow-listed devices and devices at or below the in-range bound leave the
// counts untouched. Both comparisons are strict.
func (a *Accumulator) Observe(obs bluetooth.Observation) {
	if a.allow.Known(obs.Addr) {
		return
	}
	if obs.RSSI <= a.rssiThreshold {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.counts.InRange++
	a.counts.InRangeDetected = true
	if obs.RSSI > a.footstepThreshold {
		a.counts.CloseRange++
		a.counts.CloseRangeDetected = true
	}
}

// Snapshot returns a copy of the current counts.
func (a *Accumulator) Snapshot() Counts {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts
}

// Reset zeroes the counts for the next cycle.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts = Counts{}
}
