package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventcompanion/internal/domain"
	"eventcompanion/internal/schedule"
)

type presenceService struct {
	store          domain.PresenceStore
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	friendships    domain.FriendshipService
	userRepo       domain.UserRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewPresenceService creates a PresenceService that gates friend visibility on
// proximity to the day's event windows.
func NewPresenceService(store domain.PresenceStore, eventRepo domain.EventRepository, venueRepo domain.VenueRepository,
	friendships domain.FriendshipService, userRepo domain.UserRepository, logger *slog.Logger, timeout time.Duration) domain.PresenceService {
	return &presenceService{
		store:          store,
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		friendships:    friendships,
		userRepo:       userRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// todayWindows builds the visibility windows for the operational day
// containing now. Events with unresolvable venues are logged, not dropped
// silently.
func (s *presenceService) todayWindows(ctx context.Context, now time.Time) ([]schedule.EventWindow, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	events, err := s.eventRepo.ListBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	venues := make(map[string]*domain.Venue, len(events))
	for _, e := range events {
		if _, ok := venues[e.VenueID]; ok {
			continue
		}
		v, err := s.venueRepo.GetByID(ctx, e.VenueID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get venue: %w", err)
		}
		venues[e.VenueID] = v
	}
	windows, unresolved := schedule.BuildWindows(events, venues)
	for _, e := range unresolved {
		s.logger.Warn("event excluded from visibility windows: venue unresolved",
			"event_id", e.ID, "venue_id", e.VenueID)
	}
	return windows, nil
}

func (s *presenceService) Report(ctx context.Context, userID string, latitude, longitude float64, reportedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return domain.ErrInvalidInput
	}
	current, err := s.store.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrPresenceNotFound) {
		return fmt.Errorf("get presence: %w", err)
	}
	if current == nil || !current.SharingEnabled {
		return domain.ErrInvalidInput
	}
	current.Latitude = latitude
	current.Longitude = longitude
	current.ReportedAt = reportedAt
	if err := s.store.Set(ctx, current); err != nil {
		return fmt.Errorf("store presence: %w", err)
	}
	return nil
}

func (s *presenceService) SetSharing(ctx context.Context, userID string, enabled bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !enabled {
		// Revocation must be immediate and observable: a failed delete is an
		// error the caller sees, not a fire-and-forget.
		if err := s.store.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete presence: %w", err)
		}
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	p := &domain.UserPresence{
		UserID:         userID,
		DisplayName:    user.DisplayName,
		SharingEnabled: true,
		ReportedAt:     time.Now(),
	}
	if err := s.store.Set(ctx, p); err != nil {
		return fmt.Errorf("store presence: %w", err)
	}
	return nil
}

func (s *presenceService) MyState(ctx context.Context, userID string, now time.Time) (domain.SharingState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPresenceNotFound) {
			return domain.StateNotSharing, nil
		}
		return domain.StateNotSharing, fmt.Errorf("get presence: %w", err)
	}
	if !p.SharingEnabled {
		return domain.StateNotSharing, nil
	}
	windows, err := s.todayWindows(ctx, now)
	if err != nil {
		return domain.StateNotSharing, err
	}
	if schedule.GateOpen(now, p.Latitude, p.Longitude, windows) {
		return domain.StateSharingAndVisible, nil
	}
	return domain.StateSharingNoEventActive, nil
}

func (s *presenceService) VisibleFriends(ctx context.Context, userID string, now time.Time) ([]*domain.FriendPin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	friendIDs, err := s.friendships.AcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list accepted friends: %w", err)
	}
	if len(friendIDs) == 0 {
		return []*domain.FriendPin{}, nil
	}
	windows, err := s.todayWindows(ctx, now)
	if err != nil {
		return nil, err
	}
	presences, err := s.store.GetMany(ctx, friendIDs)
	if err != nil {
		return nil, fmt.Errorf("load presences: %w", err)
	}
	pins := make([]*domain.FriendPin, 0, len(presences))
	for _, p := range presences {
		if !p.SharingEnabled {
			continue
		}
		if !schedule.GateOpen(now, p.Latitude, p.Longitude, windows) {
			continue
		}
		pins = append(pins, &domain.FriendPin{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			ReportedAt:  p.ReportedAt,
		})
	}
	return pins, nil
}
