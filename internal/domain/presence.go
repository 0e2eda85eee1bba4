package domain

import (
	"context"
	"errors"
	"time"
)

// SharingState is the presence state of a user session, derived server-side
// from the sharing flag and the proximity gate.
type SharingState string

const (
	// StateNotSharing means the user has location sharing disabled.
	StateNotSharing SharingState = "not_sharing"
	// StateSharingNoEventActive means sharing is on but no event window and
	// proximity check currently passes, so the user is not visible to friends.
	StateSharingNoEventActive SharingState = "sharing_no_event_active"
	// StateSharingAndVisible means sharing is on and the gate is open.
	StateSharingAndVisible SharingState = "sharing_and_visible"
)

// UserPresence is a user's last broadcast position and sharing flag.
// swagger:model UserPresence
type UserPresence struct {
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	SharingEnabled bool      `json:"sharing_enabled"`
	ReportedAt     time.Time `json:"reported_at"`
}

// FriendPin is a renderable map pin for a friend whose position is currently visible.
// swagger:model FriendPin
type FriendPin struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ReportedAt  time.Time `json:"reported_at"`
}

// PresenceStore holds last-known presence records keyed by user ID.
// Records expire on their own; Delete makes revocation immediate and its
// error observable to the caller.
type PresenceStore interface {
	Set(ctx context.Context, p *UserPresence) error
	Get(ctx context.Context, userID string) (*UserPresence, error)
	GetMany(ctx context.Context, userIDs []string) ([]*UserPresence, error)
	Delete(ctx context.Context, userID string) error
	// DeleteOlderThan removes records whose ReportedAt is before cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// ErrPresenceNotFound is returned by PresenceStore.Get when no record exists.
// Separate from ErrNotFound so "never reported" is distinguishable from store
// failures in the service layer.
var ErrPresenceNotFound = errors.New("presence record not found")

// PresenceService governs location reporting and proximity-gated visibility.
type PresenceService interface {
	// Report stores the caller's current position. Reporting while sharing is
	// disabled is rejected with ErrInvalidInput.
	Report(ctx context.Context, userID string, latitude, longitude float64, reportedAt time.Time) error
	// SetSharing enables or disables location sharing. Disabling deletes the
	// stored presence record; a failed delete is returned, not swallowed.
	SetSharing(ctx context.Context, userID string, enabled bool) error
	// MyState returns the caller's derived sharing state at now.
	MyState(ctx context.Context, userID string, now time.Time) (SharingState, error)
	// VisibleFriends returns map pins for the caller's accepted friends whose
	// presence currently passes the proximity gate.
	VisibleFriends(ctx context.Context, userID string, now time.Time) ([]*FriendPin, error)
}
