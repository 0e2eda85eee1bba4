package schedule

import (
	"testing"
	"time"

	"eventcompanion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	venueLat = -23.5505
	venueLng = -46.6333
)

// eventAt returns a one-venue fixture: an event starting at startsAt with the
// given duration, and the venue map resolving its venue.
func eventAt(startsAt time.Time, durationMinutes int) ([]*domain.Event, map[string]*domain.Venue) {
	events := []*domain.Event{{
		ID:              "ev-1",
		Title:           "Show de abertura",
		VenueID:         "venue-1",
		StartsAt:        startsAt,
		DurationMinutes: durationMinutes,
	}}
	venues := map[string]*domain.Venue{
		"venue-1": {ID: "venue-1", Description: "Palco Principal", Latitude: venueLat, Longitude: venueLng},
	}
	return events, venues
}

func TestBuildWindows_PadsOneHourEachSide(t *testing.T) {
	start := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	events, venues := eventAt(start, ParseDuration("1 hora"))

	windows, unresolved := BuildWindows(events, venues)
	require.Len(t, windows, 1)
	require.Empty(t, unresolved)

	assert.Equal(t, time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC), windows[0].End)
	assert.Equal(t, venueLat, windows[0].Latitude)
	assert.Equal(t, venueLng, windows[0].Longitude)
}

func TestBuildWindows_UnresolvedVenueIsReported(t *testing.T) {
	start := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	events, _ := eventAt(start, 60)

	windows, unresolved := BuildWindows(events, map[string]*domain.Venue{})
	assert.Empty(t, windows)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "ev-1", unresolved[0].ID)

	// Venue row exists but carries no usable coordinates.
	windows, unresolved = BuildWindows(events, map[string]*domain.Venue{
		"venue-1": {ID: "venue-1", Description: "Palco Principal"},
	})
	assert.Empty(t, windows)
	assert.Len(t, unresolved, 1)
}

func TestGateOpen(t *testing.T) {
	start := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	events, venues := eventAt(start, ParseDuration("1 hora"))
	windows, _ := BuildWindows(events, venues)

	// Roughly 5 km north of the venue; one degree of latitude is ~111 km.
	farLat := venueLat + 5.0/111.0

	tests := []struct {
		name     string
		now      time.Time
		lat, lng float64
		want     bool
	}{
		{"at venue inside window", start.Add(-30 * time.Minute), venueLat, venueLng, true},
		{"at venue before window", start.Add(-90 * time.Minute), venueLat, venueLng, false},
		{"at venue after window", start.Add(3 * time.Hour), venueLat, venueLng, false},
		{"at window start bound", start.Add(-time.Hour), venueLat, venueLng, true},
		{"at window end bound", start.Add(2 * time.Hour), venueLat, venueLng, true},
		{"5 km away inside window", start.Add(-30 * time.Minute), farLat, venueLng, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GateOpen(tt.now, tt.lat, tt.lng, windows))
		})
	}
}

func TestGateOpen_NoWindowsFailsClosed(t *testing.T) {
	now := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	assert.False(t, GateOpen(now, venueLat, venueLng, nil))
	assert.False(t, GateOpen(now, venueLat, venueLng, []EventWindow{}))
}

func TestGateOpen_FirstMatchingWindowShortCircuits(t *testing.T) {
	now := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	windows := []EventWindow{
		// Active but far away: must not open the gate.
		{EventID: "ev-far", Latitude: venueLat + 1, Longitude: venueLng, Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		// Active and close.
		{EventID: "ev-near", Latitude: venueLat, Longitude: venueLng, Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
	}
	assert.True(t, GateOpen(now, venueLat, venueLng, windows))
}
