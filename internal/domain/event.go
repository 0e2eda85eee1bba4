package domain

import (
	"context"
	"time"
)

// Event represents a scheduled line-up entry at a venue.
// swagger:model Event
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	VenueID         string    `json:"venue_id"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EndsAt returns the scheduled end instant (start plus duration).
func (e *Event) EndsAt() time.Time {
	return e.StartsAt.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// NewEvent returns a new Event. ID is typically set by the repository on create.
func NewEvent(title, venueID string, startsAt time.Time, durationMinutes int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:           title,
		VenueID:         venueID,
		StartsAt:        startsAt,
		DurationMinutes: durationMinutes,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListBetween returns events whose start instant falls in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*Event, error)
	Update(ctx context.Context, id string, title *string, venueID *string, startsAt *time.Time, durationMinutes *int) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventWithVenue bundles an event with its resolved venue.
type EventWithVenue struct {
	Event *Event `json:"event"`
	Venue *Venue `json:"venue"`
}

// EventService defines admin CRUD over events and the day's line-up listing.
type EventService interface {
	CreateEvent(ctx context.Context, title, venueID string, startsAt time.Time, durationMinutes int) (*Event, error)
	GetEventByID(ctx context.Context, eventID string) (*EventWithVenue, error)
	ListToday(ctx context.Context, now time.Time) ([]*EventWithVenue, error)
	UpdateEvent(ctx context.Context, eventID string, title *string, venueID *string, startsAt *time.Time, durationMinutes *int) (*Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
