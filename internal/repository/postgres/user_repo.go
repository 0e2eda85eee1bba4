package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcompanion/internal/domain"

	"github.com/lib/pq"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, email, password_hash, salt, name, last_name, display_name, friend_code, avatar_url, status, created_at, updated_at`

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var avatarNull sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.PasswordSalt, &u.Name, &u.LastName,
		&u.DisplayName, &u.FriendCode, &avatarNull, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if avatarNull.Valid {
		u.AvatarURL = avatarNull.String
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, salt, name, last_name, display_name, friend_code, avatar_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.PasswordSalt, u.Name, u.LastName,
		u.DisplayName, u.FriendCode, u.AvatarURL, u.Status, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByFriendCode(ctx context.Context, friendCode string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE friend_code = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, friendCode))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET display_name = $2, avatar_url = NULLIF($3, ''), updated_at = $4
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, u.ID, u.DisplayName, u.AvatarURL, u.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetStatus(ctx context.Context, userID string, status domain.ApprovalStatus) error {
	query := `
		UPDATE users
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, userID, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ListByStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u := &domain.User{}
		var avatarNull sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.PasswordSalt, &u.Name, &u.LastName,
			&u.DisplayName, &u.FriendCode, &avatarNull, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if avatarNull.Valid {
			u.AvatarURL = avatarNull.String
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) AssignRole(ctx context.Context, userID, roleID string) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, roleID)
	return err
}
