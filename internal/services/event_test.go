package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"eventcompanion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeVenueRepo implements domain.VenueRepository for tests.
type fakeVenueRepo struct {
	byID map[string]*domain.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{byID: make(map[string]*domain.Venue)}
}

func (f *fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	if v.ID == "" {
		v.ID = fmt.Sprintf("venue-%d", len(f.byID)+1)
	}
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := f.byID[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) List(ctx context.Context) ([]*domain.Venue, error) {
	var out []*domain.Venue
	for _, v := range f.byID {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVenueRepo) Update(ctx context.Context, id string, description *string, latitude, longitude *float64) (*domain.Venue, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if description != nil {
		v.Description = *description
	}
	if latitude != nil {
		v.Latitude = *latitude
	}
	if longitude != nil {
		v.Longitude = *longitude
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenueRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEventRepo implements domain.EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.nextID++
	e.ID = fmt.Sprintf("event-%d", f.nextID)
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if !e.StartsAt.Before(from) && e.StartsAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, title *string, venueID *string, startsAt *time.Time, durationMinutes *int) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		e.Title = *title
	}
	if venueID != nil {
		e.VenueID = *venueID
	}
	if startsAt != nil {
		e.StartsAt = *startsAt
	}
	if durationMinutes != nil {
		e.DurationMinutes = *durationMinutes
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func eventFixture(t *testing.T) (*fakeEventRepo, *fakeVenueRepo, domain.EventService) {
	t.Helper()
	eventRepo := newFakeEventRepo()
	venueRepo := newFakeVenueRepo()
	venueRepo.byID["venue-1"] = &domain.Venue{ID: "venue-1", Description: "Main Stage", Latitude: -23.5505, Longitude: -46.6333}
	return eventRepo, venueRepo, NewEventService(eventRepo, venueRepo, testLogger(), time.Second)
}

func TestEventService_CreateEvent(t *testing.T) {
	starts := time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local)

	t.Run("creates event at known venue", func(t *testing.T) {
		_, _, svc := eventFixture(t)
		event, err := svc.CreateEvent(context.Background(), "Headline Show", "venue-1", starts, 90)
		require.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, starts.Add(90*time.Minute), event.EndsAt())
	})

	t.Run("unknown venue is rejected", func(t *testing.T) {
		_, _, svc := eventFixture(t)
		_, err := svc.CreateEvent(context.Background(), "Headline Show", "venue-ghost", starts, 90)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("non-positive duration is rejected", func(t *testing.T) {
		_, _, svc := eventFixture(t)
		_, err := svc.CreateEvent(context.Background(), "Headline Show", "venue-1", starts, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestEventService_ListToday(t *testing.T) {
	eventRepo, venueRepo, svc := eventFixture(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	eventRepo.byID["event-today"] = &domain.Event{
		ID: "event-today", Title: "Today", VenueID: "venue-1",
		StartsAt: time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local), DurationMinutes: 60,
	}
	eventRepo.byID["event-tomorrow"] = &domain.Event{
		ID: "event-tomorrow", Title: "Tomorrow", VenueID: "venue-1",
		StartsAt: time.Date(2026, 9, 2, 20, 0, 0, 0, time.Local), DurationMinutes: 60,
	}
	eventRepo.byID["event-orphan"] = &domain.Event{
		ID: "event-orphan", Title: "Orphan", VenueID: "venue-gone",
		StartsAt: time.Date(2026, 9, 1, 21, 0, 0, 0, time.Local), DurationMinutes: 60,
	}

	list, err := svc.ListToday(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, list, 2)
	byID := map[string]*domain.EventWithVenue{}
	for _, item := range list {
		byID[item.Event.ID] = item
	}
	require.Contains(t, byID, "event-today")
	assert.Equal(t, venueRepo.byID["venue-1"].Description, byID["event-today"].Venue.Description)
	// An event whose venue row is gone is still listed, with venue nil.
	require.Contains(t, byID, "event-orphan")
	assert.Nil(t, byID["event-orphan"].Venue)
}

func TestEventService_UpdateEvent(t *testing.T) {
	eventRepo, _, svc := eventFixture(t)
	eventRepo.byID["event-1"] = &domain.Event{ID: "event-1", Title: "Old", VenueID: "venue-1",
		StartsAt: time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local), DurationMinutes: 60}

	title := "New"
	minutes := 120
	updated, err := svc.UpdateEvent(context.Background(), "event-1", &title, nil, nil, &minutes)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, 120, updated.DurationMinutes)

	ghost := "venue-ghost"
	_, err = svc.UpdateEvent(context.Background(), "event-1", nil, &ghost, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateEvent(context.Background(), "event-ghost", &title, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
