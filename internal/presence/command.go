package presence

import "sync/atomic"

// Command is the one-byte actuation symbol exposed to the bus peripheral.
type Command byte

const (
	CommandStop            Command = 's' // No audience: stop actuation
	CommandRandomVibration Command = 'r' // Uncategorized or large crowd
	CommandFootstep        Command = 'f' // Small crowd
)

func (c Command) String() string {
	switch c {
	case CommandRandomVibration:
		return "random-vibration"
	case CommandFootstep:
		return "footstep"
	default:
		return "stop"
	}
}

// CommandCell publishes the current command to the bus responder. Single
// writer (the cycle loop, once per completed cycle), any number of readers
// at arbitrary times. The value is held in a single atomic word so a poll
// can never see a torn symbol, and it is seeded to CommandStop so a poll
// arriving before the first completed cycle still gets a valid byte.
type CommandCell struct {
	v atomic.Uint32
}

// NewCommandCell creates a cell seeded with CommandStop.
func NewCommandCell() *CommandCell {
	c := &CommandCell{}
	c.v.Store(uint32(CommandStop))
	return c
}

// Publish replaces the current command.
func (c *CommandCell) Publish(cmd Command) {
	c.v.Store(uint32(cmd))
}

// Load returns the most recently published command.
func (c *CommandCell) Load() Command {
	return Command(c.v.Load())
}
