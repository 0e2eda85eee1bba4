package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventcompanion/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultRole      = "attendee"
	friendCodeLength = 8
)

const friendCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo       domain.UserRepository
	roleRepo       domain.RoleRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	google         domain.FederatedExchanger
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repositories and auth ports.
func NewUserService(userRepo domain.UserRepository, roleRepo domain.RoleRepository, hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, google domain.FederatedExchanger,
	emailService domain.EmailService, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		google:         google,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// generateFriendCode produces a short code users exchange to find each other.
// The alphabet drops 0/O/1/I to keep codes readable off a phone screen.
func generateFriendCode() (string, error) {
	return gonanoid.Generate(friendCodeAlphabet, friendCodeLength)
}

func (s *userService) SignUp(ctx context.Context, email, password, name, lastName, displayName string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := generateFriendCode()
	if err != nil {
		return nil, fmt.Errorf("generate friend code: %w", err)
	}
	if displayName == "" {
		displayName = strings.TrimSpace(name + " " + lastName)
	}
	now := time.Now()
	user := domain.NewUser(email, name, lastName, displayName, code, now, now)
	user.PasswordHash = hash
	user.PasswordSalt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	role, err := s.roleRepo.GetByCode(ctx, defaultRole)
	if err != nil {
		return nil, fmt.Errorf("get role %q: %w", defaultRole, err)
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a wrong password, so the endpoint does not leak
			// which emails are registered.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if user.PasswordHash == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, user.PasswordSalt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	return s.issueToken(ctx, user)
}

func (s *userService) LoginWithGoogle(ctx context.Context, code string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.google == nil {
		return "", nil, domain.ErrInvalidInput
	}
	identity, err := s.google.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("exchange google code: %w", err)
	}
	email := strings.TrimSpace(strings.ToLower(identity.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, fmt.Errorf("get user: %w", err)
		}
		// First federated sign-in: create the account, pending approval like
		// any other signup. No password is set; the provider owns identity.
		friendCode, err := generateFriendCode()
		if err != nil {
			return "", nil, fmt.Errorf("generate friend code: %w", err)
		}
		now := time.Now()
		user = domain.NewUser(email, identity.Name, "", identity.Name, friendCode, now, now)
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, fmt.Errorf("create user: %w", err)
		}
		role, err := s.roleRepo.GetByCode(ctx, defaultRole)
		if err != nil {
			return "", nil, fmt.Errorf("get role %q: %w", defaultRole, err)
		}
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return "", nil, fmt.Errorf("assign role: %w", err)
		}
	}
	return s.issueToken(ctx, user)
}

func (s *userService) issueToken(ctx context.Context, user *domain.User) (string, *domain.User, error) {
	if user.Status == domain.ApprovalRejected {
		return "", nil, domain.ErrNotApproved
	}
	roles, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("load roles: %w", err)
	}
	roleCodes := make([]string, len(roles))
	for i, r := range roles {
		roleCodes[i] = r.Code
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, roleCodes, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetByFriendCode(ctx context.Context, friendCode string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	friendCode = strings.ToUpper(strings.TrimSpace(friendCode))
	if friendCode == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.userRepo.GetByFriendCode(ctx, friendCode)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, displayName, avatarURL *string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if displayName != nil {
		trimmed := strings.TrimSpace(*displayName)
		if trimmed == "" {
			return nil, domain.ErrInvalidInput
		}
		user.DisplayName = trimmed
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return s.userRepo.ListByStatus(ctx, status)
}

func (s *userService) Review(ctx context.Context, userID string, status domain.ApprovalStatus) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		return domain.ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if s.emailService != nil {
		data := &domain.ApprovalEmailData{
			Email:       user.Email,
			Name:        user.DisplayName,
			AccountKind: "account",
			Approved:    status == domain.ApprovalApproved,
		}
		// Notification failure does not undo the decision.
		_ = s.emailService.SendApprovalDecision(ctx, data)
	}
	return nil
}
