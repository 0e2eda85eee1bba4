package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"eventcompanion/internal/domain"

	"github.com/stretchr/testify/require"
)

var eventTestColumns = []string{"id", "title", "venue_id", "starts_at", "duration_minutes", "created_at", "updated_at"}

func TestEventRepository_ListBetween(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	t.Run("returns events ordered by start", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows(eventTestColumns).
				AddRow("event-1", "Opening", "venue-1", from.Add(18*time.Hour), 60, from, from).
				AddRow("event-2", "Headline", "venue-1", from.Add(20*time.Hour), 90, from, from))

		repo := NewEventRepository(db)
		events, err := repo.ListBetween(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Equal(t, "Opening", events[0].Title)
		require.Equal(t, from.Add(21*time.Hour+30*time.Minute), events[1].EndsAt())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty day returns empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows(eventTestColumns))

		repo := NewEventRepository(db)
		events, err := repo.ListBetween(ctx, from, to)
		require.NoError(t, err)
		require.Empty(t, events)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("partial update returns the updated row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "Renamed"
		mock.ExpectQuery(`UPDATE events`).
			WithArgs("event-1", "Renamed", nil, nil, nil).
			WillReturnRows(sqlmock.NewRows(eventTestColumns).
				AddRow("event-1", "Renamed", "venue-1", now, 60, now, now))

		repo := NewEventRepository(db)
		updated, err := repo.Update(ctx, "event-1", &title, nil, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "Renamed", updated.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, "ghost", nil, nil, nil, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM events`).
		WithArgs("event-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM events`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEventRepository(db)
	require.NoError(t, repo.Delete(ctx, "event-1"))
	require.ErrorIs(t, repo.Delete(ctx, "ghost"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
