package bluetooth

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"crowdsense.klederson.com/internal/config"
)

// DemoScanner simulates a foot-traffic crowd so the node can run without
// Bluetooth hardware. The crowd size swells and shrinks sinusoidally across
// cycles so every density band (and therefore every command) shows up
// within a few windows.
type DemoScanner struct {
	cycle   int
	emitGap time.Duration
}

// NewDemoScanner creates a crowd simulator with the default pacing.
func NewDemoScanner() *DemoScanner {
	return &DemoScanner{emitGap: config.DemoEmitGap}
}

// Scan emits one simulated window of advertisements spread across the
// window duration.
func (s *DemoScanner) Scan(ctx context.Context, window time.Duration, fn ObservationFunc) error {
	phase := float64(s.cycle) / config.DemoDriftPeriod * 2 * math.Pi
	s.cycle++

	// Crowd size oscillates between 0 and DemoCrowdMax with a little noise.
	size := int((math.Sin(phase) + 1) / 2 * config.DemoCrowdMax)
	size += rand.Intn(3) - 1
	if size < 0 {
		size = 0
	}

	gap := s.emitGap
	if size > 0 {
		if max := window / time.Duration(size+1); gap > max {
			gap = max
		}
	}

	for i := 0; i < size; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(gap):
		}

		// Roughly a third of the crowd stands close to the node.
		rssi := int16(-55 - rand.Intn(35)) // -55..-89 dBm
		if rand.Intn(3) == 0 {
			rssi = int16(-30 - rand.Intn(19)) // -30..-48 dBm, inside footstep range
		}
		fn(Observation{Addr: randomAddr(), RSSI: rssi})
	}

	// Idle out the rest of the window like a real scan.
	if remaining := window - time.Duration(size)*gap; remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}
	return nil
}

func randomAddr() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}
