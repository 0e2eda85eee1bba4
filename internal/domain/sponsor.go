package domain

import (
	"context"
	"time"
)

// SponsorBanner is a promotional banner shown in the app's carousel.
// Only approved companies may publish banners.
// swagger:model SponsorBanner
type SponsorBanner struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSponsorBanner returns a new active SponsorBanner. ID is typically set by the repository on create.
func NewSponsorBanner(companyID, imageURL, linkURL string, createdAt, updatedAt time.Time) *SponsorBanner {
	return &SponsorBanner{
		CompanyID: companyID,
		ImageURL:  imageURL,
		LinkURL:   linkURL,
		Active:    true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SponsorBannerRepository defines storage operations for sponsor banners.
type SponsorBannerRepository interface {
	Create(ctx context.Context, banner *SponsorBanner) error
	GetByID(ctx context.Context, id string) (*SponsorBanner, error)
	ListActive(ctx context.Context) ([]*SponsorBanner, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]*SponsorBanner, error)
	SetActive(ctx context.Context, id string, active bool) (*SponsorBanner, error)
	Delete(ctx context.Context, id string) error
}

// SponsorService defines banner publishing for approved companies.
type SponsorService interface {
	Publish(ctx context.Context, companyID, callerID, imageURL, linkURL string) (*SponsorBanner, error)
	ListActive(ctx context.Context) ([]*SponsorBanner, error)
	ListByCompany(ctx context.Context, companyID, callerID string) ([]*SponsorBanner, error)
	SetActive(ctx context.Context, bannerID, callerID string, active bool) (*SponsorBanner, error)
	Delete(ctx context.Context, bannerID, callerID string) error
}
