package schedule

import (
	"time"

	"eventcompanion/internal/domain"
)

// windowPadding is added on both sides of an event's scheduled span: people
// arrive early and linger after.
const windowPadding = time.Hour

// EventWindow is the derived interval during which an event's venue proximity
// check is active. It is computed on demand, never persisted.
type EventWindow struct {
	EventID   string
	Latitude  float64
	Longitude float64
	Start     time.Time
	End       time.Time
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w EventWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// BuildWindows derives visibility windows from events and their venues.
// Window = [start − 1h, start + duration + 1h]. Events whose venue is missing
// from the venues map, or whose venue has no usable coordinates, are returned
// in unresolved so callers can report the data error instead of silently
// dropping the event.
func BuildWindows(events []*domain.Event, venues map[string]*domain.Venue) (windows []EventWindow, unresolved []*domain.Event) {
	for _, e := range events {
		v, ok := venues[e.VenueID]
		if !ok || (v.Latitude == 0 && v.Longitude == 0) {
			unresolved = append(unresolved, e)
			continue
		}
		windows = append(windows, EventWindow{
			EventID:   e.ID,
			Latitude:  v.Latitude,
			Longitude: v.Longitude,
			Start:     e.StartsAt.Add(-windowPadding),
			End:       e.EndsAt().Add(windowPadding),
		})
	}
	return windows, unresolved
}
