package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyFriends is returned when a friend request targets a pair that
// already has a friendship record.
var ErrAlreadyFriends = errors.New("friendship already exists")

// FriendshipStatus is the lifecycle state of a friendship record.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship is a single owned relationship record between two users.
// UserAID and UserBID are stored in normalized order (UserAID < UserBID) so
// the pair has exactly one row; RequesterID records which side asked. Status
// transitions happen in one transaction, so there is no window where the two
// sides of the relationship disagree.
// swagger:model Friendship
type Friendship struct {
	ID          string           `json:"id"`
	UserAID     string           `json:"user_a_id"`
	UserBID     string           `json:"user_b_id"`
	RequesterID string           `json:"requester_id"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewFriendship returns a pending Friendship between requester and target,
// with the pair normalized. ID is typically set by the repository on create.
func NewFriendship(requesterID, targetID string, createdAt time.Time) *Friendship {
	a, b := requesterID, targetID
	if b < a {
		a, b = b, a
	}
	return &Friendship{
		UserAID:     a,
		UserBID:     b,
		RequesterID: requesterID,
		Status:      FriendshipPending,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// Involves reports whether userID is one of the two sides of the record.
func (f *Friendship) Involves(userID string) bool {
	return f.UserAID == userID || f.UserBID == userID
}

// Other returns the counterpart of userID in the pair, or "" if userID is not
// part of the record.
func (f *Friendship) Other(userID string) string {
	switch userID {
	case f.UserAID:
		return f.UserBID
	case f.UserBID:
		return f.UserAID
	}
	return ""
}

// FriendshipRepository defines storage operations for friendship records.
// UpdateStatus must be atomic: a single statement or transaction.
type FriendshipRepository interface {
	Create(ctx context.Context, f *Friendship) error
	GetByID(ctx context.Context, id string) (*Friendship, error)
	GetByPair(ctx context.Context, userAID, userBID string) (*Friendship, error)
	ListByUserID(ctx context.Context, userID string) ([]*Friendship, error)
	UpdateStatus(ctx context.Context, id string, status FriendshipStatus) (*Friendship, error)
	Delete(ctx context.Context, id string) error
}

// FriendshipWithUser bundles a friendship with the counterpart's profile.
type FriendshipWithUser struct {
	Friendship *Friendship `json:"friendship"`
	Friend     *User       `json:"friend"`
}

// FriendshipService defines the request/accept/reject workflow.
type FriendshipService interface {
	Request(ctx context.Context, requesterID, targetFriendCode string) (*Friendship, error)
	Accept(ctx context.Context, friendshipID, callerID string) (*Friendship, error)
	Reject(ctx context.Context, friendshipID, callerID string) (*Friendship, error)
	Remove(ctx context.Context, friendshipID, callerID string) error
	List(ctx context.Context, userID string) ([]*FriendshipWithUser, error)
	// AcceptedFriendIDs returns the IDs of users whose friendship with userID
	// has status accepted.
	AcceptedFriendIDs(ctx context.Context, userID string) ([]string, error)
}
