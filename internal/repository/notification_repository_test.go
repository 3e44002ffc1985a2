package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/repository"
)

// The update must be scoped by both the notification and its recipient.
const markAsReadPattern = `UPDATE notifications SET is_read = true, read_at = NOW\(\)\s+` +
	`WHERE notification_id = \$1 AND user_id = \$2 AND is_read = false`

func newNotificationRepo(t *testing.T) (repository.NotificationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return repository.NewNotificationRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Recipient updates the row", func(t *testing.T) {
		repo, mock := newNotificationRepo(t)
		mock.ExpectExec(markAsReadPattern).
			WithArgs(int64(50), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkAsRead(ctx, 50, 9)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Other user matches no row", func(t *testing.T) {
		repo, mock := newNotificationRepo(t)
		mock.ExpectExec(markAsReadPattern).
			WithArgs(int64(50), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkAsRead(ctx, 50, 42)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock := newNotificationRepo(t)
		mock.ExpectExec(markAsReadPattern).
			WithArgs(int64(50), int64(9)).
			WillReturnError(errors.New("connection reset"))

		ok, err := repo.MarkAsRead(ctx, 50, 9)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestNotificationRepository_MarkAllAsReadIsScopedToRecipient(t *testing.T) {
	repo, mock := newNotificationRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`WHERE user_id = $1 AND is_read = false`)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.MarkAllAsRead(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
