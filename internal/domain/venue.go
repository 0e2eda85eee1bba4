package domain

import (
	"context"
	"time"
)

// Venue represents a named place where events take place.
// Events reference venues by ID.
// swagger:model Venue
type Venue struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewVenue returns a new Venue. ID is typically set by the repository on create.
func NewVenue(description string, latitude, longitude float64, createdAt, updatedAt time.Time) *Venue {
	return &Venue{
		Description: description,
		Latitude:    latitude,
		Longitude:   longitude,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, id string, description *string, latitude, longitude *float64) (*Venue, error)
	Delete(ctx context.Context, id string) error
}
