package app

import (
	"time"

	"crowdsense.klederson.com/internal/bluetooth"
	"crowdsense.klederson.com/internal/node"
)

// TickMsg triggers a frame update.
type TickMsg time.Time

// ObservationMsg carries one advertisement into the monitor feed.
type ObservationMsg bluetooth.Observation

// CycleMsg reports a completed scan cycle.
type CycleMsg node.CycleResult

// NodeStoppedMsg reports that the cycle loop exited.
type NodeStoppedMsg struct {
	Err error
}
