package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventcompanion/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, venue_id, starts_at, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.Title, e.VenueID, e.StartsAt, e.DurationMinutes, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, venue_id, starts_at, duration_minutes, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Title, &e.VenueID, &e.StartsAt, &e.DurationMinutes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	query := `
		SELECT id, title, venue_id, starts_at, duration_minutes, created_at, updated_at
		FROM events
		WHERE starts_at >= $1 AND starts_at < $2
		ORDER BY starts_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.VenueID, &e.StartsAt, &e.DurationMinutes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, title *string, venueID *string, startsAt *time.Time, durationMinutes *int) (*domain.Event, error) {
	query := `
		UPDATE events
		SET title = COALESCE($2, title),
		    venue_id = COALESCE($3, venue_id),
		    starts_at = COALESCE($4, starts_at),
		    duration_minutes = COALESCE($5, duration_minutes),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, venue_id, starts_at, duration_minutes, created_at, updated_at
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id, title, venueID, startsAt, durationMinutes).
		Scan(&e.ID, &e.Title, &e.VenueID, &e.StartsAt, &e.DurationMinutes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
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
