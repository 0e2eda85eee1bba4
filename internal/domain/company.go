package domain

import (
	"context"
	"time"
)

// Company represents a company account awaiting or holding administrator approval.
// swagger:model Company
type Company struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	OwnerUserID string         `json:"owner_user_id"`
	Description string         `json:"description"`
	LogoURL     string         `json:"logo_url,omitempty"`
	Status      ApprovalStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewCompany returns a new pending Company. ID is typically set by the repository on create.
func NewCompany(name, ownerUserID, description, logoURL string, createdAt, updatedAt time.Time) *Company {
	return &Company{
		Name:        name,
		OwnerUserID: ownerUserID,
		Description: description,
		LogoURL:     logoURL,
		Status:      ApprovalPending,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// CompanyRepository defines the interface for company storage
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	GetByOwnerID(ctx context.Context, ownerUserID string) (*Company, error)
	ListByStatus(ctx context.Context, status ApprovalStatus) ([]*Company, error)
	Update(ctx context.Context, id string, description, logoURL *string) (*Company, error)
	SetStatus(ctx context.Context, id string, status ApprovalStatus) error
}

// CompanyService defines company registration and the admin review workflow.
type CompanyService interface {
	Register(ctx context.Context, ownerUserID, name, description, logoURL string) (*Company, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	GetMine(ctx context.Context, ownerUserID string) (*Company, error)
	UpdateProfile(ctx context.Context, companyID, callerID string, description, logoURL *string) (*Company, error)
	ListByStatus(ctx context.Context, status ApprovalStatus) ([]*Company, error)
	Review(ctx context.Context, companyID string, status ApprovalStatus) error
}
