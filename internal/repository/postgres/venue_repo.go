package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcompanion/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (description, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, v.Description, v.Latitude, v.Longitude, v.CreatedAt, v.UpdatedAt).Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, description, latitude, longitude, created_at, updated_at
		FROM venues
		WHERE id = $1
	`
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Description, &v.Latitude, &v.Longitude, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	query := `
		SELECT id, description, latitude, longitude, created_at, updated_at
		FROM venues
		ORDER BY description ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		if err := rows.Scan(&v.ID, &v.Description, &v.Latitude, &v.Longitude, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) Update(ctx context.Context, id string, description *string, latitude, longitude *float64) (*domain.Venue, error) {
	query := `
		UPDATE venues
		SET description = COALESCE($2, description),
		    latitude = COALESCE($3, latitude),
		    longitude = COALESCE($4, longitude),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, description, latitude, longitude, created_at, updated_at
	`
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, query, id, description, latitude, longitude).
		Scan(&v.ID, &v.Description, &v.Latitude, &v.Longitude, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
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
