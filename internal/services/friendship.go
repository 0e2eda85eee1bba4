package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventcompanion/internal/domain"
)

type friendshipService struct {
	friendshipRepo domain.FriendshipRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewFriendshipService creates a FriendshipService backed by the given repositories.
func NewFriendshipService(friendshipRepo domain.FriendshipRepository, userRepo domain.UserRepository, timeout time.Duration) domain.FriendshipService {
	return &friendshipService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *friendshipService) Request(ctx context.Context, requesterID, targetFriendCode string) (*domain.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	target, err := s.userRepo.GetByFriendCode(ctx, targetFriendCode)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get target user: %w", err)
	}
	if target.ID == requesterID {
		return nil, domain.ErrInvalidInput
	}
	existing, err := s.friendshipRepo.GetByPair(ctx, requesterID, target.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get friendship: %w", err)
	}
	if existing != nil {
		if existing.Status == domain.FriendshipRejected {
			// A rejected pair may try again; the old record is replaced.
			if err := s.friendshipRepo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("delete rejected friendship: %w", err)
			}
		} else {
			return nil, domain.ErrAlreadyFriends
		}
	}
	f := domain.NewFriendship(requesterID, target.ID, time.Now())
	if err := s.friendshipRepo.Create(ctx, f); err != nil {
		if errors.Is(err, domain.ErrAlreadyFriends) {
			return nil, domain.ErrAlreadyFriends
		}
		return nil, fmt.Errorf("create friendship: %w", err)
	}
	return f, nil
}

// decide applies an accept/reject decision. Only the non-requesting side may
// decide, and only while the record is pending.
func (s *friendshipService) decide(ctx context.Context, friendshipID, callerID string, status domain.FriendshipStatus) (*domain.Friendship, error) {
	f, err := s.friendshipRepo.GetByID(ctx, friendshipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get friendship: %w", err)
	}
	if !f.Involves(callerID) || f.RequesterID == callerID {
		return nil, domain.ErrForbidden
	}
	if f.Status != domain.FriendshipPending {
		return nil, domain.ErrInvalidInput
	}
	updated, err := s.friendshipRepo.UpdateStatus(ctx, friendshipID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update friendship status: %w", err)
	}
	return updated, nil
}

func (s *friendshipService) Accept(ctx context.Context, friendshipID, callerID string) (*domain.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.decide(ctx, friendshipID, callerID, domain.FriendshipAccepted)
}

func (s *friendshipService) Reject(ctx context.Context, friendshipID, callerID string) (*domain.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.decide(ctx, friendshipID, callerID, domain.FriendshipRejected)
}

func (s *friendshipService) Remove(ctx context.Context, friendshipID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	f, err := s.friendshipRepo.GetByID(ctx, friendshipID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get friendship: %w", err)
	}
	if !f.Involves(callerID) {
		return domain.ErrForbidden
	}
	if err := s.friendshipRepo.Delete(ctx, friendshipID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete friendship: %w", err)
	}
	return nil
}

func (s *friendshipService) List(ctx context.Context, userID string) ([]*domain.FriendshipWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	friendships, err := s.friendshipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}
	out := make([]*domain.FriendshipWithUser, 0, len(friendships))
	for _, f := range friendships {
		friend, err := s.userRepo.GetByID(ctx, f.Other(userID))
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, fmt.Errorf("get friend: %w", err)
		}
		out = append(out, &domain.FriendshipWithUser{Friendship: f, Friend: friend})
	}
	return out, nil
}

func (s *friendshipService) AcceptedFriendIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	friendships, err := s.friendshipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}
	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		if f.Status != domain.FriendshipAccepted {
			continue
		}
		ids = append(ids, f.Other(userID))
	}
	return ids, nil
}
