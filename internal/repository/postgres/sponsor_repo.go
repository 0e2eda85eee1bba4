package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcompanion/internal/domain"
)

type sponsorBannerRepository struct {
	DB *sql.DB
}

func NewSponsorBannerRepository(db *sql.DB) domain.SponsorBannerRepository {
	return &sponsorBannerRepository{DB: db}
}

const bannerColumns = `id, company_id, image_url, link_url, active, created_at, updated_at`

func scanBanner(row *sql.Row) (*domain.SponsorBanner, error) {
	b := &domain.SponsorBanner{}
	var linkNull sql.NullString
	err := row.Scan(&b.ID, &b.CompanyID, &b.ImageURL, &linkNull, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if linkNull.Valid {
		b.LinkURL = linkNull.String
	}
	return b, nil
}

func (r *sponsorBannerRepository) Create(ctx context.Context, b *domain.SponsorBanner) error {
	query := `
		INSERT INTO sponsor_banners (company_id, image_url, link_url, active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, b.CompanyID, b.ImageURL, b.LinkURL, b.Active, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
}

func (r *sponsorBannerRepository) GetByID(ctx context.Context, id string) (*domain.SponsorBanner, error) {
	query := `SELECT ` + bannerColumns + ` FROM sponsor_banners WHERE id = $1`
	return scanBanner(r.DB.QueryRowContext(ctx, query, id))
}

func (r *sponsorBannerRepository) listQuery(ctx context.Context, query string, args ...any) ([]*domain.SponsorBanner, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banners := make([]*domain.SponsorBanner, 0)
	for rows.Next() {
		b := &domain.SponsorBanner{}
		var linkNull sql.NullString
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.ImageURL, &linkNull, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		if linkNull.Valid {
			b.LinkURL = linkNull.String
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *sponsorBannerRepository) ListActive(ctx context.Context) ([]*domain.SponsorBanner, error) {
	query := `SELECT ` + bannerColumns + ` FROM sponsor_banners WHERE active ORDER BY created_at DESC`
	return r.listQuery(ctx, query)
}

func (r *sponsorBannerRepository) ListByCompanyID(ctx context.Context, companyID string) ([]*domain.SponsorBanner, error) {
	query := `SELECT ` + bannerColumns + ` FROM sponsor_banners WHERE company_id = $1 ORDER BY created_at DESC`
	return r.listQuery(ctx, query, companyID)
}

func (r *sponsorBannerRepository) SetActive(ctx context.Context, id string, active bool) (*domain.SponsorBanner, error) {
	query := `
		UPDATE sponsor_banners
		SET active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bannerColumns + `
	`
	return scanBanner(r.DB.QueryRowContext(ctx, query, id, active))
}

func (r *sponsorBannerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sponsor_banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
