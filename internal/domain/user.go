package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrNotApproved        = errors.New("account not approved by an administrator")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ApprovalStatus is the administrator review state of a user or company account.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is one of the known approval statuses.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// User represents a registered user
// swagger:model User
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	LastName     string         `json:"last_name"`
	DisplayName  string         `json:"display_name"`
	FriendCode   string         `json:"friend_code"`
	AvatarURL    string         `json:"avatar_url,omitempty"`
	Status       ApprovalStatus `json:"status"`
	PasswordHash string         `json:"-"`
	PasswordSalt string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewUser returns a new pending User. ID is typically set by the repository on create.
func NewUser(email, name, lastName, displayName, friendCode string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:       email,
		Name:        name,
		LastName:    lastName,
		DisplayName: displayName,
		FriendCode:  friendCode,
		Status:      ApprovalPending,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Role represents an application role (e.g. admin, attendee)
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID and role codes.
type TokenVerifier interface {
	Verify(token string) (userID string, roles []string, err error)
}

// FederatedIdentity is the profile returned by a federated sign-in provider
// after exchanging an authorization code.
type FederatedIdentity struct {
	Email string
	Name  string
}

// FederatedExchanger exchanges a provider authorization code for the identity
// behind it (e.g. Google OAuth).
type FederatedExchanger interface {
	Exchange(ctx context.Context, code string) (*FederatedIdentity, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByFriendCode(ctx context.Context, friendCode string) (*User, error)
	Update(ctx context.Context, user *User) error
	SetStatus(ctx context.Context, userID string, status ApprovalStatus) error
	ListByStatus(ctx context.Context, status ApprovalStatus) ([]*User, error)
	AssignRole(ctx context.Context, userID, roleID string) error
}

// RoleRepository defines the interface for role storage
type RoleRepository interface {
	GetByCode(ctx context.Context, code string) (*Role, error)
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
}

// UserService defines the business logic for accounts and authentication.
type UserService interface {
	SignUp(ctx context.Context, email, password, name, lastName, displayName string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	LoginWithGoogle(ctx context.Context, code string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByFriendCode(ctx context.Context, friendCode string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, displayName, avatarURL *string) (*User, error)
	ListByStatus(ctx context.Context, status ApprovalStatus) ([]*User, error)
	Review(ctx context.Context, userID string, status ApprovalStatus) error
}
