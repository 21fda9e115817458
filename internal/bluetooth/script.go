package bluetooth

import (
	"context"
	"time"
)

// ScriptScanner plays back canned observation windows. Each Scan call emits
// the next scripted window and returns once all of its observations have
// been delivered and the window duration (scaled by EmitGap pacing) is
// over. After the script runs out, windows are empty. Used by tests and as
// the base for demo mode.
type ScriptScanner struct {
	windows [][]Observation
	next    int

	// EmitGap spaces consecutive observations inside a window. Zero means
	// emit immediately and return without waiting out the window, which
	// keeps tests fast.
	EmitGap time.Duration
}

// NewScriptScanner creates a scanner that plays the given windows in order.
func NewScriptScanner(windows ...[]Observation) *ScriptScanner {
	return &ScriptScanner{windows: windows}
}

// Scan emits the next scripted window. All fn invocations happen before
// Scan returns, matching the real scanner's window-closed guarantee.
func (s *ScriptScanner) Scan(ctx context.Context, window time.Duration, fn ObservationFunc) error {
	var obs []Observation
	if s.next < len(s.windows) {
		obs = s.windows[s.next]
		s.next++
	}

	for _, o := range obs {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(o)
		if s.EmitGap > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.EmitGap):
			}
		}
	}

	if s.EmitGap == 0 {
		return ctx.Err()
	}

	// Wait out the remainder of the window like a real scan would.
	elapsed := time.Duration(len(obs)) * s.EmitGap
	if remaining := window - elapsed; remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}
	return nil
}

// Remaining reports how many scripted windows have not been played yet.
func (s *ScriptScanner) Remaining() int {
	return len(s.windows) - s.next
}
