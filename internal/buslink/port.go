// Package buslink answers bus-peripheral read requests with the node's
// current command byte. The downstream motion controller polls at times of
// its own choosing, possibly many times per cycle, possibly never; each
// poll is answered with exactly one byte and no further framing.
package buslink

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Porter is the minimal interface the responder needs from a serial port.
// The abstraction enables unit testing without real serial hardware.
type Porter interface {
	io.ReadWriteCloser
}

// Mode defines serial link configuration parameters.
type Mode struct {
	BaudRate int
}

// Open opens the serial device the controller is wired to. The returned
// port blocks on Read until a poll byte arrives.
func Open(device string, mode Mode) (Porter, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: mode.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open bus link %s: %w", device, err)
	}
	return port, nil
}
