package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventcompanion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePresenceStore implements domain.PresenceStore for tests.
type fakePresenceStore struct {
	byUserID  map[string]*domain.UserPresence
	deleteErr error
}

func newFakePresenceStore() *fakePresenceStore {
	return &fakePresenceStore{byUserID: make(map[string]*domain.UserPresence)}
}

func (f *fakePresenceStore) Set(ctx context.Context, p *domain.UserPresence) error {
	cp := *p
	f.byUserID[p.UserID] = &cp
	return nil
}

func (f *fakePresenceStore) Get(ctx context.Context, userID string) (*domain.UserPresence, error) {
	if p, ok := f.byUserID[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPresenceNotFound
}

func (f *fakePresenceStore) GetMany(ctx context.Context, userIDs []string) ([]*domain.UserPresence, error) {
	var out []*domain.UserPresence
	for _, id := range userIDs {
		if p, ok := f.byUserID[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePresenceStore) Delete(ctx context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byUserID, userID)
	return nil
}

func (f *fakePresenceStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	for id, p := range f.byUserID {
		if p.ReportedAt.Before(cutoff) {
			delete(f.byUserID, id)
			removed++
		}
	}
	return removed, nil
}

// Venue at São Paulo's center; the event runs 20:00-21:00, so the visibility
// window is 19:00-22:00.
const (
	venueLat = -23.5505
	venueLng = -46.6333
)

type presenceFixture struct {
	store       *fakePresenceStore
	eventRepo   *fakeEventRepo
	userRepo    *fakeUserRepo
	friendships domain.FriendshipService
	svc         domain.PresenceService
	inWindow    time.Time
}

func newPresenceFixture(t *testing.T) *presenceFixture {
	t.Helper()
	store := newFakePresenceStore()
	eventRepo := newFakeEventRepo()
	venueRepo := newFakeVenueRepo()
	venueRepo.byID["venue-1"] = &domain.Venue{ID: "venue-1", Description: "Main Stage", Latitude: venueLat, Longitude: venueLng}
	eventRepo.byID["event-1"] = &domain.Event{
		ID: "event-1", Title: "Show", VenueID: "venue-1",
		StartsAt:        time.Date(2026, 9, 1, 20, 0, 0, 0, time.Local),
		DurationMinutes: 60,
	}

	userRepo := newFakeUserRepo()
	userRepo.add(&domain.User{ID: "alice", DisplayName: "Alice", FriendCode: "AAAA2222"})
	userRepo.add(&domain.User{ID: "bob", DisplayName: "Bob", FriendCode: "BBBB3333"})
	userRepo.add(&domain.User{ID: "carol", DisplayName: "Carol", FriendCode: "CCCC4444"})

	friendships := NewFriendshipService(newFakeFriendshipRepo(), userRepo, time.Second)
	svc := NewPresenceService(store, eventRepo, venueRepo, friendships, userRepo, testLogger(), time.Second)
	return &presenceFixture{
		store:       store,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		friendships: friendships,
		svc:         svc,
		inWindow:    time.Date(2026, 9, 1, 20, 30, 0, 0, time.Local),
	}
}

// befriend creates an accepted friendship between a and b.
func (fx *presenceFixture) befriend(t *testing.T, a, b string) {
	t.Helper()
	code := map[string]string{"alice": "AAAA2222", "bob": "BBBB3333", "carol": "CCCC4444"}[b]
	f, err := fx.friendships.Request(context.Background(), a, code)
	require.NoError(t, err)
	_, err = fx.friendships.Accept(context.Background(), f.ID, b)
	require.NoError(t, err)
}

func TestPresenceService_Report(t *testing.T) {
	t.Run("stores position while sharing", func(t *testing.T) {
		fx := newPresenceFixture(t)
		require.NoError(t, fx.svc.SetSharing(context.Background(), "alice", true))
		require.NoError(t, fx.svc.Report(context.Background(), "alice", venueLat, venueLng, fx.inWindow))
		p := fx.store.byUserID["alice"]
		require.NotNil(t, p)
		assert.Equal(t, venueLat, p.Latitude)
		assert.Equal(t, fx.inWindow, p.ReportedAt)
	})

	t.Run("rejected while sharing disabled", func(t *testing.T) {
		fx := newPresenceFixture(t)
		err := fx.svc.Report(context.Background(), "alice", venueLat, venueLng, fx.inWindow)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		fx := newPresenceFixture(t)
		require.NoError(t, fx.svc.SetSharing(context.Background(), "alice", true))
		err := fx.svc.Report(context.Background(), "alice", 91, 0, fx.inWindow)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestPresenceService_SetSharing(t *testing.T) {
	t.Run("disabling deletes the stored record", func(t *testing.T) {
		fx := newPresenceFixture(t)
		require.NoError(t, fx.svc.SetSharing(context.Background(), "alice", true))
		require.NoError(t, fx.svc.Report(context.Background(), "alice", venueLat, venueLng, fx.inWindow))

		require.NoError(t, fx.svc.SetSharing(context.Background(), "alice", false))
		_, ok := fx.store.byUserID["alice"]
		assert.False(t, ok)
	})

	t.Run("failed delete is returned, not swallowed", func(t *testing.T) {
		fx := newPresenceFixture(t)
		fx.store.deleteErr = errors.New("redis down")
		err := fx.svc.SetSharing(context.Background(), "alice", false)
		assert.Error(t, err)
	})
}

func TestPresenceService_MyState(t *testing.T) {
	fx := newPresenceFixture(t)

	state, err := fx.svc.MyState(context.Background(), "alice", fx.inWindow)
	require.NoError(t, err)
	assert.Equal(t, domain.StateNotSharing, state)

	require.NoError(t, fx.svc.SetSharing(context.Background(), "alice", true))
	require.NoError(t, fx.svc.Report(context.Background(), "alice", venueLat, venueLng, fx.inWindow))

	state, err = fx.svc.MyState(context.Background(), "alice", fx.inWindow)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSharingAndVisible, state)

	// Outside the window the gate is closed even at the venue.
	afterWindow := time.Date(2026, 9, 1, 23, 0, 0, 0, time.Local)
	state, err = fx.svc.MyState(context.Background(), "alice", afterWindow)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSharingNoEventActive, state)

	// Far from the venue the gate is closed inside the window.
	require.NoError(t, fx.svc.Report(context.Background(), "alice", venueLat+1, venueLng, fx.inWindow))
	state, err = fx.svc.MyState(context.Background(), "alice", fx.inWindow)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSharingNoEventActive, state)
}

func TestPresenceService_VisibleFriends(t *testing.T) {
	share := func(fx *presenceFixture, userID string, lat, lng float64) {
		require.NoError(t, fx.svc.SetSharing(context.Background(), userID, true))
		require.NoError(t, fx.svc.Report(context.Background(), userID, lat, lng, fx.inWindow))
	}

	t.Run("accepted friend at the venue is visible", func(t *testing.T) {
		fx := newPresenceFixture(t)
		fx.befriend(t, "alice", "bob")
		share(fx, "bob", venueLat, venueLng)

		pins, err := fx.svc.VisibleFriends(context.Background(), "alice", fx.inWindow)
		require.NoError(t, err)
		require.Len(t, pins, 1)
		assert.Equal(t, "bob", pins[0].UserID)
		assert.Equal(t, "Bob", pins[0].DisplayName)
	})

	t.Run("friend with sharing disabled never appears", func(t *testing.T) {
		fx := newPresenceFixture(t)
		fx.befriend(t, "alice", "bob")
		share(fx, "bob", venueLat, venueLng)
		require.NoError(t, fx.svc.SetSharing(context.Background(), "bob", false))

		pins, err := fx.svc.VisibleFriends(context.Background(), "alice", fx.inWindow)
		require.NoError(t, err)
		assert.Empty(t, pins)
	})

	t.Run("non-friend never appears even when gate is open", func(t *testing.T) {
		fx := newPresenceFixture(t)
		share(fx, "carol", venueLat, venueLng)

		pins, err := fx.svc.VisibleFriends(context.Background(), "alice", fx.inWindow)
		require.NoError(t, err)
		assert.Empty(t, pins)
	})

	t.Run("pending friendship is not enough", func(t *testing.T) {
		fx := newPresenceFixture(t)
		_, err := fx.friendships.Request(context.Background(), "alice", "BBBB3333")
		require.NoError(t, err)
		share(fx, "bob", venueLat, venueLng)

		pins, err := fx.svc.VisibleFriends(context.Background(), "alice", fx.inWindow)
		require.NoError(t, err)
		assert.Empty(t, pins)
	})

	t.Run("friend outside the radius is filtered", func(t *testing.T) {
		fx := newPresenceFixture(t)
		fx.befriend(t, "alice", "bob")
		share(fx, "bob", venueLat+1, venueLng)

		pins, err := fx.svc.VisibleFriends(context.Background(), "alice", fx.inWindow)
		require.NoError(t, err)
		assert.Empty(t, pins)
	})

	t.Run("no open window means nobody is visible", func(t *testing.T) {
		fx := newPresenceFixture(t)
		fx.befriend(t, "alice", "bob")
		share(fx, "bob", venueLat, venueLng)

		beforeWindow := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
		pins, err := fx.svc.VisibleFriends(context.Background(), "alice", beforeWindow)
		require.NoError(t, err)
		assert.Empty(t, pins)
	})
}
