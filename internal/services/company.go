package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventcompanion/internal/domain"
)

type companyService struct {
	companyRepo    domain.CompanyRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewCompanyService creates a CompanyService backed by the given repositories.
func NewCompanyService(companyRepo domain.CompanyRepository, userRepo domain.UserRepository, emailService domain.EmailService, timeout time.Duration) domain.CompanyService {
	return &companyService{
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *companyService) Register(ctx context.Context, ownerUserID, name, description, logoURL string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	// One company per owner.
	existing, err := s.companyRepo.GetByOwnerID(ctx, ownerUserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get company by owner: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := domain.NewCompany(name, ownerUserID, description, logoURL, now, now)
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.companyRepo.GetByID(ctx, id)
}

func (s *companyService) GetMine(ctx context.Context, ownerUserID string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.companyRepo.GetByOwnerID(ctx, ownerUserID)
}

func (s *companyService) UpdateProfile(ctx context.Context, companyID, callerID string, description, logoURL *string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	if company.OwnerUserID != callerID {
		return nil, domain.ErrForbidden
	}
	updated, err := s.companyRepo.Update(ctx, companyID, description, logoURL)
	if err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return updated, nil
}

func (s *companyService) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return s.companyRepo.ListByStatus(ctx, status)
}

func (s *companyService) Review(ctx context.Context, companyID string, status domain.ApprovalStatus) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		return domain.ErrInvalidInput
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get company: %w", err)
	}
	if err := s.companyRepo.SetStatus(ctx, companyID, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if s.emailService != nil {
		owner, err := s.userRepo.GetByID(ctx, company.OwnerUserID)
		if err == nil && owner != nil {
			data := &domain.ApprovalEmailData{
				Email:       owner.Email,
				Name:        company.Name,
				AccountKind: "company",
				Approved:    status == domain.ApprovalApproved,
			}
			_ = s.emailService.SendApprovalDecision(ctx, data)
		}
	}
	return nil
}
