// Package node runs the free-running scan cycle: trigger a discovery
// window, classify the accumulated counts, publish the command, pulse the
// indicator, reset, repeat. Cycles never overlap; a new window starts only
// after the previous cycle's classification and reset are done.
package node

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"crowdsense.klederson.com/internal/bluetooth"
	"crowdsense.klederson.com/internal/indicator"
	"crowdsense.klederson.com/internal/presence"
)

// State is the cycle driver's current phase.
type State int32

const (
	StateIdle State = iota
	StateScanning
	StateClassifying
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateClassifying:
		return "classifying"
	default:
		return "idle"
	}
}

// CycleResult summarizes one completed cycle for logging and the monitor.
type CycleResult struct {
	Seq      int
	Counts   presence.Counts
	Class    presence.Classification
	Duration time.Duration
}

// Node orchestrates the sampling-and-classification pipeline.
type Node struct {
	scanner bluetooth.WindowScanner
	acc     *presence.Accumulator
	cell    *presence.CommandCell
	ind     indicator.Indicator
	window  time.Duration
	log     *slog.Logger

	state   atomic.Int32
	seq     int
	results chan<- CycleResult
}

// New creates a cycle driver. The command cell is expected to be seeded
// already, so the bus responder has a valid byte before the first cycle
// completes.
func New(scanner bluetooth.WindowScanner, acc *presence.Accumulator,
	cell *presence.CommandCell, ind indicator.Indicator,
	window time.Duration, log *slog.Logger) *Node {
	if log == nil {
		log = slog.Default()
	}
	if ind == nil {
		ind = indicator.Nop{}
	}
	return &Node{
		scanner: scanner,
		acc:     acc,
		cell:    cell,
		ind:     ind,
		window:  window,
		log:     log,
	}
}

// SetResultSink registers a channel receiving one CycleResult per completed
// cycle. Sends are non-blocking; a slow consumer drops results rather than
// stalling the loop. Must be called before Run.
func (n *Node) SetResultSink(ch chan<- CycleResult) {
	n.results = ch
}

// State returns the driver's current phase.
func (n *Node) State() State {
	return State(n.state.Load())
}

// Run loops cycles until the context is canceled or the scanner fails.
func (n *Node) Run(ctx context.Context) error {
	n.log.Info("node: starting scan cycles", "window", n.window)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := n.cycle(ctx); err != nil {
			n.state.Store(int32(StateIdle))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

// cycle runs exactly one Idle -> Scanning -> Classifying -> Idle pass.
func (n *Node) cycle(ctx context.Context) error {
	start := time.Now()

	n.state.Store(int32(StateScanning))
	// Scan blocks until the window has fully closed; after it returns no
	// observation callback is still in flight, so the counts below are
	// final for this cycle.
	if err := n.scanner.Scan(ctx, n.window, n.acc.Observe); err != nil {
		return err
	}

	n.state.Store(int32(StateClassifying))
	counts := n.acc.Snapshot()
	cls := presence.Classify(counts)
	n.cell.Publish(cls.Command)

	n.ind.Pulse(counts.InRange, counts.CloseRange)
	n.acc.Reset()

	n.seq++
	result := CycleResult{
		Seq:      n.seq,
		Counts:   counts,
		Class:    cls,
		Duration: time.Since(start),
	}
	n.log.Info("node: cycle complete",
		"seq", result.Seq,
		"in_range", counts.InRange,
		"close_range", counts.CloseRange,
		"presence", cls.Presence,
		"density", cls.Density.String(),
		"command", cls.Command.String(),
	)
	if n.results != nil {
		select {
		case n.results <- result:
		default:
		}
	}

	n.state.Store(int32(StateIdle))
	return nil
}
