package presence

import "crowdsense.klederson.com/internal/config"

// Density is the crowd-size category derived from the in-range count.
type Density int

const (
	DensityNone  Density = iota // No category: zero devices, or 1-4 present
	DensitySmall                // 5-15 devices
	DensityLarge                // more than 15 devices
)

func (d Density) String() string {
	switch d {
	case DensitySmall:
		return "small"
	case DensityLarge:
		return "large"
	default:
		return "none"
	}
}

// Classification is the outcome of one completed cycle.
type Classification struct {
	Presence bool
	Density  Density
	Command  Command
}

// Classify derives the density category and actuation command from a
// cycle's final counts. It runs once per cycle, strictly after the scan
// window has closed.
//
// The 1-4 device band is presence-true but neither small nor large, and
// commands random vibration the same as a large crowd. That asymmetry is
// deployed behavior the downstream controller expects; keep the boundary
// at exactly 5 devices.
func Classify(c Counts) Classification {
	cls := Classification{
		Presence: c.InRange > 0,
		Density:  DensityNone,
		Command:  CommandStop,
	}
	if !cls.Presence {
		return cls
	}

	switch {
	case c.InRange >= config.SmallBandMin && c.InRange <= config.SmallBandMax:
		cls.Density = DensitySmall
		cls.Command = CommandFootstep
	case c.InRange > config.SmallBandMax:
		cls.Density = DensityLarge
		cls.Command = CommandRandomVibration
	default:
		cls.Command = CommandRandomVibration
	}
	return cls
}
