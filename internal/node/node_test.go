package node

import (
	"context"
	"sync"
	"testing"
	"time"

	"crowdsense.klederson.com/internal/bluetooth"
	"crowdsense.klederson.com/internal/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScanner plays one canned window per Scan call and blocks once the
// script is exhausted, holding the loop in its scanning state until the
// test cancels. It also fails the test if two windows ever overlap.
type fakeScanner struct {
	mu      sync.Mutex
	windows [][]bluetooth.Observation
	next    int
	active  bool
	t       *testing.T
}

func (f *fakeScanner) Scan(ctx context.Context, window time.Duration, fn bluetooth.ObservationFunc) error {
	f.mu.Lock()
	if f.active {
		f.t.Error("overlapping scan windows")
	}
	f.active = true
	var obs []bluetooth.Observation
	exhausted := f.next >= len(f.windows)
	if !exhausted {
		obs = f.windows[f.next]
		f.next++
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active = false
		f.mu.Unlock()
	}()

	if exhausted {
		<-ctx.Done()
		return ctx.Err()
	}
	for _, o := range obs {
		fn(o)
	}
	return nil
}

// recordingIndicator captures the pulse counts driven after each cycle.
type recordingIndicator struct {
	mu     sync.Mutex
	pulses [][2]int
}

func (r *recordingIndicator) Pulse(inRange, closeRange int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses = append(r.pulses, [2]int{inRange, closeRange})
}

func repeat(addr string, rssi int16, n int) []bluetooth.Observation {
	out := make([]bluetooth.Observation, n)
	for i := range out {
		out[i] = bluetooth.Observation{Addr: addr, RSSI: rssi}
	}
	return out
}

func runCycles(t *testing.T, windows [][]bluetooth.Observation, allowed ...string) ([]CycleResult, *recordingIndicator, *presence.CommandCell) {
	t.Helper()

	scanner := &fakeScanner{windows: windows, t: t}
	acc := presence.NewAccumulator(presence.NewAllowList(allowed), -80, -50)
	cell := presence.NewCommandCell()
	ind := &recordingIndicator{}

	n := New(scanner, acc, cell, ind, time.Millisecond, nil)
	results := make(chan CycleResult, len(windows))
	n.SetResultSink(results)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	var got []CycleResult
	for len(got) < len(windows) {
		select {
		case r := <-results:
			got = append(got, r)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d cycles", len(got), len(windows))
		}
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	return got, ind, cell
}

func TestCycleScenarios(t *testing.T) {
	tests := []struct {
		name       string
		window     []bluetooth.Observation
		inRange    int
		closeRange int
		command    presence.Command
	}{
		{
			name:    "no observations",
			window:  nil,
			command: presence.CommandStop,
		},
		{
			name:    "six unknown at -70",
			window:  repeat("11:22:33:44:55:66", -70, 6),
			inRange: 6, command: presence.CommandFootstep,
		},
		{
			name:    "twenty unknown at -40",
			window:  repeat("11:22:33:44:55:66", -40, 20),
			inRange: 20, closeRange: 20, command: presence.CommandRandomVibration,
		},
		{
			name:    "three close unknown at -40",
			window:  repeat("11:22:33:44:55:66", -40, 3),
			inRange: 3, closeRange: 3, command: presence.CommandRandomVibration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ind, cell := runCycles(t, [][]bluetooth.Observation{tt.window})

			require.Len(t, got, 1)
			assert.Equal(t, 1, got[0].Seq)
			assert.Equal(t, tt.inRange, got[0].Counts.InRange)
			assert.Equal(t, tt.closeRange, got[0].Counts.CloseRange)
			assert.Equal(t, tt.command, got[0].Class.Command)
			assert.Equal(t, tt.command, cell.Load())

			// Indicator sees the pre-reset counts.
			require.Len(t, ind.pulses, 1)
			assert.Equal(t, [2]int{tt.inRange, tt.closeRange}, ind.pulses[0])
		})
	}
}

func TestCycleAllowListedOnly(t *testing.T) {
	window := repeat("aa:bc:cc:dd:ee:ee", -40, 10)
	got, _, cell := runCycles(t, [][]bluetooth.Observation{window}, "aa:bc:cc:dd:ee:ee")

	require.Len(t, got, 1)
	assert.Zero(t, got[0].Counts.InRange)
	assert.Equal(t, presence.CommandStop, cell.Load())
}

func TestCountersResetBetweenCycles(t *testing.T) {
	windows := [][]bluetooth.Observation{
		repeat("11:22:33:44:55:66", -60, 8),
		repeat("11:22:33:44:55:66", -60, 2),
		nil,
	}
	got, _, cell := runCycles(t, windows)

	require.Len(t, got, 3)
	assert.Equal(t, 8, got[0].Counts.InRange)
	assert.Equal(t, presence.CommandFootstep, got[0].Class.Command)
	// A residue from the first window would show up here as 10.
	assert.Equal(t, 2, got[1].Counts.InRange)
	assert.Equal(t, presence.CommandRandomVibration, got[1].Class.Command)
	assert.Equal(t, 0, got[2].Counts.InRange)
	assert.Equal(t, presence.CommandStop, got[2].Class.Command)
	assert.Equal(t, presence.CommandStop, cell.Load())
}

func TestSmallCrowdAtBandEdge(t *testing.T) {
	windows := [][]bluetooth.Observation{
		repeat("11:22:33:44:55:66", -45, 5),
	}
	got, _, cell := runCycles(t, windows)

	require.Len(t, got, 1)
	assert.Equal(t, presence.CommandFootstep, cell.Load())
	assert.True(t, got[0].Class.Presence)
	assert.Equal(t, presence.DensitySmall, got[0].Class.Density)
}

func TestStateReporting(t *testing.T) {
	scanner := &fakeScanner{t: t} // exhausted immediately: blocks in scan
	acc := presence.NewAccumulator(presence.NewAllowList(nil), -80, -50)
	n := New(scanner, acc, presence.NewCommandCell(), nil, time.Millisecond, nil)

	assert.Equal(t, StateIdle, n.State())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return n.State() == StateScanning
	}, 2*time.Second, time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, StateIdle, n.State())
}
