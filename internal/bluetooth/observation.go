package bluetooth

import "math"

// Observation is one discovered-device reading delivered during a scan
// window. Observations are ephemeral: each advertisement received produces
// its own Observation, so the same physical device may appear many times
// within one window.
type Observation struct {
	Addr string // Device address, canonical lower-case hex with colons
	RSSI int16  // Received signal strength (dBm)
}

// RSSIToDistance estimates distance from RSSI using the log-distance path
// loss model: d = 10^((measuredPower - rssi) / (10 * n)). Display use only;
// classification works on raw RSSI.
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}
