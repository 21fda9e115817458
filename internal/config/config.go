package config

import "time"

const (
	// Classification thresholds
	DefaultRSSIThreshold     = -80 // In-range detection bound (dBm), strict >
	DefaultFootstepThreshold = -50 // Close-range detection bound (dBm), strict >

	// Density bands (in-range advertisements per scan window)
	SmallBandMin = 5  // Below this: present but uncategorized
	SmallBandMax = 15 // Above this: large crowd

	// Scan cycle
	DefaultScanWindow = 5 * time.Second // Duration of one discovery window

	// Indicator
	PulseOnTime  = 15 * time.Millisecond // Indicator on-phase per pulse
	PulseOffTime = 15 * time.Millisecond // Indicator off-phase per pulse

	// Bus peripheral link
	DefaultBaudRate = 115200

	// RSSI to distance estimation (monitor display only)
	MeasuredPower = -59.0 // RSSI at 1 meter (dBm)
	PathLossExp   = 2.5   // Path loss exponent (N)

	// Demo mode
	DemoCrowdMax    = 25                     // Peak simulated crowd size
	DemoDriftPeriod = 8.0                    // Cycles per crowd swell/shrink
	DemoEmitGap     = 150 * time.Millisecond // Spacing between simulated advertisements

	// TUI monitor
	TargetFPS    = 30 // Frames per second for the monitor view
	FeedHistory  = 64 // Observations retained in the monitor feed
	CycleHistory = 32 // Cycle results retained in the monitor

	// App
	AppName    = "CROWDSENSE"
	AppVersion = "1.0"
)

// DefaultAllowList holds the addresses of the installation's own equipment,
// excluded from crowd counting. Matching is exact and case-sensitive.
var DefaultAllowList = []string{
	"aa:bc:cc:dd:ee:ee", "54:2c:7b:87:71:a2", "72:09:b9:28:37:6c",
	"6c:9a:00:3a:65:47", "66:f4:d1:6c:fc:b2", "5a:2b:f4:61:71:aa",
	"f2:dc:7e:bd:f1:ab", "49:36:ef:f5:9f:0c", "4f:08:07:83:c3:62",
	"5b:51:f2:1d:66:4d", "53:11:d2:bf:fd:04", "74:be:f6:a4:81:2f",
	"d7:42:99:28:27:63",
}
