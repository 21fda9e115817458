package buslink

import (
	"context"
	"fmt"
	"log/slog"

	"crowdsense.klederson.com/internal/presence"
)

// Responder services read requests on the bus link. Every received poll
// byte is answered with the most recently published command. The responder
// never triggers a classification cycle and never blocks the cycle loop:
// it only loads from the command cell.
type Responder struct {
	port Porter
	cell *presence.CommandCell
	log  *slog.Logger
}

// NewResponder creates a responder answering polls on port from cell.
func NewResponder(port Porter, cell *presence.CommandCell, log *slog.Logger) *Responder {
	if log == nil {
		log = slog.Default()
	}
	return &Responder{port: port, cell: cell, log: log}
}

// Serve answers polls until the context is canceled or the port fails.
// Read blocks until the controller polls; cancellation is delivered by
// closing the port, which Serve does itself when the context ends.
func (r *Responder) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = r.port.Close()
	}()

	buf := make([]byte, 1)
	for {
		n, err := r.port.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("bus link read failed: %w", err)
		}
		if n == 0 {
			continue
		}

		cmd := r.cell.Load()
		if _, err := r.port.Write([]byte{byte(cmd)}); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("bus link write failed: %w", err)
		}
		r.log.Debug("buslink: answered poll", "command", cmd.String())
	}
}
