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

var friendshipTestColumns = []string{"id", "user_a_id", "user_b_id", "requester_id", "status", "created_at", "updated_at"}

func TestFriendshipRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success assigns returned id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		f := domain.NewFriendship("bob", "alice", now)
		mock.ExpectQuery(`INSERT INTO friendships`).
			WithArgs("alice", "bob", "bob", domain.FriendshipPending, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("friendship-uuid-1"))

		repo := NewFriendshipRepository(db)
		require.NoError(t, repo.Create(ctx, f))
		require.Equal(t, "friendship-uuid-1", f.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique pair violation returns ErrAlreadyFriends", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO friendships`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewFriendshipRepository(db)
		err = repo.Create(ctx, domain.NewFriendship("bob", "alice", now))
		require.ErrorIs(t, err, domain.ErrAlreadyFriends)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFriendshipRepository_GetByPair(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("arguments are normalized", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// Called with (bob, alice); the query must see (alice, bob).
		mock.ExpectQuery(`SELECT (.+) FROM friendships WHERE user_a_id = \$1 AND user_b_id = \$2`).
			WithArgs("alice", "bob").
			WillReturnRows(sqlmock.NewRows(friendshipTestColumns).
				AddRow("friendship-uuid-1", "alice", "bob", "bob", "pending", now, now))

		repo := NewFriendshipRepository(db)
		f, err := repo.GetByPair(ctx, "bob", "alice")
		require.NoError(t, err)
		require.Equal(t, "alice", f.UserAID)
		require.Equal(t, "bob", f.UserBID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM friendships WHERE user_a_id`).
			WithArgs("alice", "bob").
			WillReturnError(sql.ErrNoRows)

		repo := NewFriendshipRepository(db)
		_, err = repo.GetByPair(ctx, "alice", "bob")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFriendshipRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns the updated record", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE friendships`).
			WithArgs("friendship-uuid-1", domain.FriendshipAccepted).
			WillReturnRows(sqlmock.NewRows(friendshipTestColumns).
				AddRow("friendship-uuid-1", "alice", "bob", "bob", "accepted", now, now))

		repo := NewFriendshipRepository(db)
		f, err := repo.UpdateStatus(ctx, "friendship-uuid-1", domain.FriendshipAccepted)
		require.NoError(t, err)
		require.Equal(t, domain.FriendshipAccepted, f.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE friendships`).
			WithArgs("ghost", domain.FriendshipAccepted).
			WillReturnError(sql.ErrNoRows)

		repo := NewFriendshipRepository(db)
		_, err = repo.UpdateStatus(ctx, "ghost", domain.FriendshipAccepted)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFriendshipRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM friendships`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(friendshipTestColumns).
			AddRow("f-1", "alice", "bob", "bob", "accepted", now, now).
			AddRow("f-2", "bob", "carol", "carol", "pending", now, now))

	repo := NewFriendshipRepository(db)
	list, err := repo.ListByUserID(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "alice", list[0].Other("bob"))
	require.Equal(t, "carol", list[1].Other("bob"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendshipRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM friendships`).
			WithArgs("friendship-uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewFriendshipRepository(db)
		require.NoError(t, repo.Delete(ctx, "friendship-uuid-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found zero rows affected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM friendships`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewFriendshipRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "ghost"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
