package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventcompanion/internal/domain"
)

type sponsorService struct {
	bannerRepo     domain.SponsorBannerRepository
	companyRepo    domain.CompanyRepository
	contextTimeout time.Duration
}

// NewSponsorService creates a SponsorService backed by the given repositories.
func NewSponsorService(bannerRepo domain.SponsorBannerRepository, companyRepo domain.CompanyRepository, timeout time.Duration) domain.SponsorService {
	return &sponsorService{
		bannerRepo:     bannerRepo,
		companyRepo:    companyRepo,
		contextTimeout: timeout,
	}
}

// ownedApprovedCompany loads companyID and checks callerID owns it and it has
// been approved by an administrator.
func (s *sponsorService) ownedApprovedCompany(ctx context.Context, companyID, callerID string) (*domain.Company, error) {
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
	if company.Status != domain.ApprovalApproved {
		return nil, domain.ErrForbidden
	}
	return company, nil
}

func (s *sponsorService) Publish(ctx context.Context, companyID, callerID, imageURL, linkURL string) (*domain.SponsorBanner, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if imageURL == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.ownedApprovedCompany(ctx, companyID, callerID); err != nil {
		return nil, err
	}
	now := time.Now()
	banner := domain.NewSponsorBanner(companyID, imageURL, linkURL, now, now)
	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return banner, nil
}

func (s *sponsorService) ListActive(ctx context.Context) ([]*domain.SponsorBanner, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.bannerRepo.ListActive(ctx)
}

func (s *sponsorService) ListByCompany(ctx context.Context, companyID, callerID string) ([]*domain.SponsorBanner, error) {
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
	return s.bannerRepo.ListByCompanyID(ctx, companyID)
}

// bannerForOwner loads a banner and checks the caller owns its company.
func (s *sponsorService) bannerForOwner(ctx context.Context, bannerID, callerID string) (*domain.SponsorBanner, error) {
	banner, err := s.bannerRepo.GetByID(ctx, bannerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}
	company, err := s.companyRepo.GetByID(ctx, banner.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	if company.OwnerUserID != callerID {
		return nil, domain.ErrForbidden
	}
	return banner, nil
}

func (s *sponsorService) SetActive(ctx context.Context, bannerID, callerID string, active bool) (*domain.SponsorBanner, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.bannerForOwner(ctx, bannerID, callerID); err != nil {
		return nil, err
	}
	updated, err := s.bannerRepo.SetActive(ctx, bannerID, active)
	if err != nil {
		return nil, fmt.Errorf("set banner active: %w", err)
	}
	return updated, nil
}

func (s *sponsorService) Delete(ctx context.Context, bannerID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.bannerForOwner(ctx, bannerID, callerID); err != nil {
		return err
	}
	if err := s.bannerRepo.Delete(ctx, bannerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}
