package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventcompanion/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repositories.
func NewEventService(eventRepo domain.EventRepository, venueRepo domain.VenueRepository, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, title, venueID string, startsAt time.Time, durationMinutes int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if title == "" || durationMinutes <= 0 {
		return nil, domain.ErrInvalidInput
	}
	// The venue reference is validated up front; a dangling venue_id would
	// silently drop the event from the day's window set later.
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	now := time.Now()
	event := domain.NewEvent(title, venueID, startsAt, durationMinutes, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.EventWithVenue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	venue, err := s.venueRepo.GetByID(ctx, event.VenueID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	if venue == nil {
		s.logger.Warn("event references missing venue", "event_id", event.ID, "venue_id", event.VenueID)
	}
	return &domain.EventWithVenue{Event: event, Venue: venue}, nil
}

// ListToday returns the events scheduled for the operational day containing now,
// each with its venue resolved. An event whose venue row is gone is still
// listed (venue nil) and logged as a data error.
func (s *eventService) ListToday(ctx context.Context, now time.Time) ([]*domain.EventWithVenue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	events, err := s.eventRepo.ListBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]*domain.EventWithVenue, 0, len(events))
	for _, e := range events {
		venue, err := s.venueRepo.GetByID(ctx, e.VenueID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("get venue: %w", err)
			}
			s.logger.Warn("event references missing venue", "event_id", e.ID, "venue_id", e.VenueID)
		}
		out = append(out, &domain.EventWithVenue{Event: e, Venue: venue})
	}
	return out, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, title *string, venueID *string, startsAt *time.Time, durationMinutes *int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if title != nil && *title == "" {
		return nil, domain.ErrInvalidInput
	}
	if durationMinutes != nil && *durationMinutes <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if venueID != nil {
		if _, err := s.venueRepo.GetByID(ctx, *venueID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidInput
			}
			return nil, fmt.Errorf("get venue: %w", err)
		}
	}
	updated, err := s.eventRepo.Update(ctx, eventID, title, venueID, startsAt, durationMinutes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
