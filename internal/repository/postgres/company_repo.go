package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcompanion/internal/domain"
)

type companyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) domain.CompanyRepository {
	return &companyRepository{DB: db}
}

const companyColumns = `id, name, owner_user_id, description, logo_url, status, created_at, updated_at`

func scanCompany(row *sql.Row) (*domain.Company, error) {
	c := &domain.Company{}
	var logoNull sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.OwnerUserID, &c.Description, &logoNull, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if logoNull.Valid {
		c.LogoURL = logoNull.String
	}
	return c, nil
}

func (r *companyRepository) Create(ctx context.Context, c *domain.Company) error {
	query := `
		INSERT INTO companies (name, owner_user_id, description, logo_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.Name, c.OwnerUserID, c.Description, c.LogoURL, c.Status, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.DB.QueryRowContext(ctx, query, id))
}

func (r *companyRepository) GetByOwnerID(ctx context.Context, ownerUserID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE owner_user_id = $1`
	return scanCompany(r.DB.QueryRowContext(ctx, query, ownerUserID))
}

func (r *companyRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE status = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		c := &domain.Company{}
		var logoNull sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerUserID, &c.Description, &logoNull, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if logoNull.Valid {
			c.LogoURL = logoNull.String
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepository) Update(ctx context.Context, id string, description, logoURL *string) (*domain.Company, error) {
	query := `
		UPDATE companies
		SET description = COALESCE($2, description),
		    logo_url = COALESCE(NULLIF($3, ''), logo_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + companyColumns + `
	`
	return scanCompany(r.DB.QueryRowContext(ctx, query, id, description, logoURL))
}

func (r *companyRepository) SetStatus(ctx context.Context, id string, status domain.ApprovalStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE companies SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
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
