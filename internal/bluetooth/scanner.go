package bluetooth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tinygo.org/x/bluetooth"
)

// ObservationFunc receives one Observation per advertisement during a scan
// window. It must not block: it runs on the adapter's notification
// goroutine and a slow callback stalls discovery.
type ObservationFunc func(Observation)

// WindowScanner runs one bounded discovery window per call. Scan blocks
// until the window has fully closed: after it returns, no further fn
// invocations for that window can occur. That ordering is what lets the
// caller read and reset its accumulated state without racing the callback.
type WindowScanner interface {
	Scan(ctx context.Context, window time.Duration, fn ObservationFunc) error
}

// BLEScanner discovers nearby advertisers via the host Bluetooth adapter.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	enabled bool
}

// NewBLEScanner creates a scanner on the default host adapter.
func NewBLEScanner() *BLEScanner {
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
	}
}

// Scan runs one discovery window of the given duration, forwarding each
// advertisement to fn. The adapter's Scan blocks until StopScan, so the
// goroutine below is joined before returning; the adapter also releases its
// result buffers on stop, which bounds memory between cycles.
func (s *BLEScanner) Scan(ctx context.Context, window time.Duration, fn ObservationFunc) error {
	if !s.enabled {
		if err := s.adapter.Enable(); err != nil {
			return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
		}
		s.enabled = true
	}

	done := make(chan error, 1)
	go func() {
		done <- s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			// The adapter reports addresses in upper case; the allow-list
			// does no normalization, so canonicalize here at the boundary.
			fn(Observation{
				Addr: strings.ToLower(result.Address.String()),
				RSSI: result.RSSI,
			})
		})
	}()

	timer := time.NewTimer(window)
	defer timer.Stop()

	var cause error
	select {
	case <-ctx.Done():
		cause = ctx.Err()
	case <-timer.C:
	case err := <-done:
		// Scan ended on its own before the window elapsed.
		if err != nil {
			return fmt.Errorf("BLE scan aborted: %w", err)
		}
		return fmt.Errorf("BLE scan ended before the window closed")
	}

	if err := s.adapter.StopScan(); err != nil {
		return fmt.Errorf("failed to stop BLE scan: %w", err)
	}
	// Join the scan goroutine: once Scan has returned, no callback for this
	// window is still in flight.
	if err := <-done; err != nil {
		return fmt.Errorf("BLE scan failed: %w", err)
	}
	return cause
}
