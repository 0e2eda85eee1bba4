package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcompanion/internal/domain"

	"github.com/lib/pq"
)

type friendshipRepository struct {
	DB *sql.DB
}

func NewFriendshipRepository(db *sql.DB) domain.FriendshipRepository {
	return &friendshipRepository{DB: db}
}

const friendshipColumns = `id, user_a_id, user_b_id, requester_id, status, created_at, updated_at`

func scanFriendship(row *sql.Row) (*domain.Friendship, error) {
	f := &domain.Friendship{}
	err := row.Scan(&f.ID, &f.UserAID, &f.UserBID, &f.RequesterID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *friendshipRepository) Create(ctx context.Context, f *domain.Friendship) error {
	// (user_a_id, user_b_id) carries a unique constraint; the pair is
	// normalized by the caller, so one row exists per pair.
	query := `
		INSERT INTO friendships (user_a_id, user_b_id, requester_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, f.UserAID, f.UserBID, f.RequesterID, f.Status, f.CreatedAt, f.UpdatedAt).Scan(&f.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyFriends
		}
		return err
	}
	return nil
}

func (r *friendshipRepository) GetByID(ctx context.Context, id string) (*domain.Friendship, error) {
	query := `SELECT ` + friendshipColumns + ` FROM friendships WHERE id = $1`
	return scanFriendship(r.DB.QueryRowContext(ctx, query, id))
}

func (r *friendshipRepository) GetByPair(ctx context.Context, userAID, userBID string) (*domain.Friendship, error) {
	if userBID < userAID {
		userAID, userBID = userBID, userAID
	}
	query := `SELECT ` + friendshipColumns + ` FROM friendships WHERE user_a_id = $1 AND user_b_id = $2`
	return scanFriendship(r.DB.QueryRowContext(ctx, query, userAID, userBID))
}

func (r *friendshipRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	query := `
		SELECT ` + friendshipColumns + `
		FROM friendships
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friendships := make([]*domain.Friendship, 0)
	for rows.Next() {
		f := &domain.Friendship{}
		if err := rows.Scan(&f.ID, &f.UserAID, &f.UserBID, &f.RequesterID, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		friendships = append(friendships, f)
	}
	return friendships, rows.Err()
}

func (r *friendshipRepository) UpdateStatus(ctx context.Context, id string, status domain.FriendshipStatus) (*domain.Friendship, error) {
	// Single-statement update: both sides of the relationship change together
	// or not at all.
	query := `
		UPDATE friendships
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + friendshipColumns + `
	`
	return scanFriendship(r.DB.QueryRowContext(ctx, query, id, status))
}

func (r *friendshipRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM friendships WHERE id = $1`, id)
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
