package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eventcompanion/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFriendshipRepo implements domain.FriendshipRepository for tests.
type fakeFriendshipRepo struct {
	byID   map[string]*domain.Friendship
	nextID int
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{byID: make(map[string]*domain.Friendship)}
}

func (f *fakeFriendshipRepo) Create(ctx context.Context, fr *domain.Friendship) error {
	for _, existing := range f.byID {
		if existing.UserAID == fr.UserAID && existing.UserBID == fr.UserBID {
			return domain.ErrAlreadyFriends
		}
	}
	f.nextID++
	fr.ID = fmt.Sprintf("friendship-%d", f.nextID)
	f.byID[fr.ID] = fr
	return nil
}

func (f *fakeFriendshipRepo) GetByID(ctx context.Context, id string) (*domain.Friendship, error) {
	if fr, ok := f.byID[id]; ok {
		cp := *fr
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFriendshipRepo) GetByPair(ctx context.Context, userAID, userBID string) (*domain.Friendship, error) {
	a, b := userAID, userBID
	if b < a {
		a, b = b, a
	}
	for _, fr := range f.byID {
		if fr.UserAID == a && fr.UserBID == b {
			cp := *fr
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFriendshipRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	var out []*domain.Friendship
	for _, fr := range f.byID {
		if fr.Involves(userID) {
			out = append(out, fr)
		}
	}
	return out, nil
}

func (f *fakeFriendshipRepo) UpdateStatus(ctx context.Context, id string, status domain.FriendshipStatus) (*domain.Friendship, error) {
	fr, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fr.Status = status
	fr.UpdatedAt = time.Now()
	cp := *fr
	return &cp, nil
}

func (f *fakeFriendshipRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func friendshipFixture(t *testing.T) (*fakeFriendshipRepo, *fakeUserRepo, domain.FriendshipService) {
	t.Helper()
	userRepo := newFakeUserRepo()
	userRepo.add(&domain.User{ID: "alice", DisplayName: "Alice", FriendCode: "AAAA2222"})
	userRepo.add(&domain.User{ID: "bob", DisplayName: "Bob", FriendCode: "BBBB3333"})
	friendshipRepo := newFakeFriendshipRepo()
	return friendshipRepo, userRepo, NewFriendshipService(friendshipRepo, userRepo, time.Second)
}

func TestFriendshipService_Request(t *testing.T) {
	t.Run("creates pending record with normalized pair", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		f, err := svc.Request(context.Background(), "bob", "AAAA2222")
		require.NoError(t, err)
		assert.Equal(t, domain.FriendshipPending, f.Status)
		assert.Equal(t, "alice", f.UserAID)
		assert.Equal(t, "bob", f.UserBID)
		assert.Equal(t, "bob", f.RequesterID)
	})

	t.Run("unknown friend code", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		_, err := svc.Request(context.Background(), "bob", "ZZZZ9999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("cannot befriend yourself", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		_, err := svc.Request(context.Background(), "alice", "AAAA2222")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate request in either direction", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		_, err := svc.Request(context.Background(), "bob", "AAAA2222")
		require.NoError(t, err)
		_, err = svc.Request(context.Background(), "bob", "AAAA2222")
		assert.ErrorIs(t, err, domain.ErrAlreadyFriends)
		_, err = svc.Request(context.Background(), "alice", "BBBB3333")
		assert.ErrorIs(t, err, domain.ErrAlreadyFriends)
	})

	t.Run("rejected pair can be re-requested", func(t *testing.T) {
		repo, _, svc := friendshipFixture(t)
		f, err := svc.Request(context.Background(), "bob", "AAAA2222")
		require.NoError(t, err)
		_, err = svc.Reject(context.Background(), f.ID, "alice")
		require.NoError(t, err)

		again, err := svc.Request(context.Background(), "alice", "BBBB3333")
		require.NoError(t, err)
		assert.Equal(t, domain.FriendshipPending, again.Status)
		assert.Equal(t, "alice", again.RequesterID)
		assert.Len(t, repo.byID, 1)
	})
}

func TestFriendshipService_Decide(t *testing.T) {
	t.Run("recipient accepts", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		f, err := svc.Request(context.Background(), "bob", "AAAA2222")
		require.NoError(t, err)
		accepted, err := svc.Accept(context.Background(), f.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.FriendshipAccepted, accepted.Status)
	})

	t.Run("requester cannot decide", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		f, err := svc.Request(context.Background(), "bob", "AAAA2222")
		require.NoError(t, err)
		_, err = svc.Accept(context.Background(), f.ID, "bob")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("outsider cannot decide", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		f, err := svc.Request(context.Background(), "bob", "AAAA2222")
		require.NoError(t, err)
		_, err = svc.Reject(context.Background(), f.ID, "mallory")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("decided record cannot be decided again", func(t *testing.T) {
		_, _, svc := friendshipFixture(t)
		f, err := svc.Request(context.Background(), "bob", "AAAA2222")
		require.NoError(t, err)
		_, err = svc.Accept(context.Background(), f.ID, "alice")
		require.NoError(t, err)
		_, err = svc.Reject(context.Background(), f.ID, "alice")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestFriendshipService_Remove(t *testing.T) {
	repo, _, svc := friendshipFixture(t)
	f, err := svc.Request(context.Background(), "bob", "AAAA2222")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(context.Background(), f.ID, "mallory"), domain.ErrForbidden)
	require.NoError(t, svc.Remove(context.Background(), f.ID, "alice"))
	assert.Empty(t, repo.byID)
	assert.ErrorIs(t, svc.Remove(context.Background(), f.ID, "alice"), domain.ErrNotFound)
}

func TestFriendshipService_List(t *testing.T) {
	_, userRepo, svc := friendshipFixture(t)
	userRepo.add(&domain.User{ID: "carol", DisplayName: "Carol", FriendCode: "CCCC4444"})

	f1, err := svc.Request(context.Background(), "bob", "AAAA2222")
	require.NoError(t, err)
	_, err = svc.Request(context.Background(), "carol", "BBBB3333")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, item := range list {
		assert.NotEqual(t, "bob", item.Friend.ID)
	}

	_, err = svc.Accept(context.Background(), f1.ID, "alice")
	require.NoError(t, err)

	ids, err := svc.AcceptedFriendIDs(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, ids)
}
