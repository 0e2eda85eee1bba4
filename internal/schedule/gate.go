package schedule

import (
	"eventcompanion/internal/geo"
	"time"
)

// maxGateDistanceKm is how close to an active event's venue a person must be
// for their position to be considered publicly observable.
const maxGateDistanceKm = 3.0

// GateOpen is the proximity gate: it reports whether a position at the given
// instant may be revealed to others. The gate opens when the instant falls
// inside some event window and the position is within maxGateDistanceKm of
// that window's venue; the first matching window short-circuits. With no
// windows the gate stays closed, failing toward non-disclosure.
func GateOpen(now time.Time, latitude, longitude float64, windows []EventWindow) bool {
	for _, w := range windows {
		if !w.Contains(now) {
			continue
		}
		if geo.Distance(latitude, longitude, w.Latitude, w.Longitude) <= maxGateDistanceKm {
			return true
		}
	}
	return false
}
