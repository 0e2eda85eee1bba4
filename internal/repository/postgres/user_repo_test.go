package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"eventcompanion/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success assigns returned id",
			user: &domain.User{
				Email:       "alice@example.com",
				Name:        "Alice",
				DisplayName: "Alice",
				FriendCode:  "AAAA2222",
				Status:      domain.ApprovalPending,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("alice@example.com", "", "", "Alice", "", "Alice", "AAAA2222", "", domain.ApprovalPending, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))
			},
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			user: &domain.User{Email: "taken@example.com", Status: domain.ApprovalPending},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			user: &domain.User{Email: "a@b.com", Status: domain.ApprovalPending},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Create(ctx, tt.user)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "user-uuid-1", tt.user.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByFriendCode(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "email", "password_hash", "salt", "name", "last_name", "display_name", "friend_code", "avatar_url", "status", "created_at", "updated_at"}

	t.Run("success with null avatar", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE friend_code`).
			WithArgs("AAAA2222").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("user-uuid-1", "alice@example.com", "hash", "salt", "Alice", "Silva", "Alice", "AAAA2222", nil, "approved", now, now))

		repo := NewUserRepository(db)
		user, err := repo.GetByFriendCode(ctx, "AAAA2222")
		require.NoError(t, err)
		require.Equal(t, "user-uuid-1", user.ID)
		require.Empty(t, user.AvatarURL)
		require.Equal(t, domain.ApprovalApproved, user.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE friend_code`).
			WithArgs("ZZZZ9999").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByFriendCode(ctx, "ZZZZ9999")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_SetStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("user-uuid-1", domain.ApprovalApproved).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found zero rows affected",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("user-uuid-1", domain.ApprovalApproved).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.SetStatus(ctx, "user-uuid-1", domain.ApprovalApproved)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
