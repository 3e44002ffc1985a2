package notification_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/repository/mocks"
	"newshub/internal/service/notification"
)

func newCachedEngine(t *testing.T) (notification.Service, *mocks.NotificationRepository) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	notifRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(notifRepo, new(mocks.FollowRepository), new(mocks.UserRepository), nil, client)
	return svc, notifRepo
}

func TestNotificationService_UnreadCountCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Second read is served from cache", func(t *testing.T) {
		svc, notifRepo := newCachedEngine(t)
		notifRepo.On("CountUnread", ctx, int64(9)).Return(int64(3), nil).Once()

		first, err := svc.GetUnreadCount(ctx, 9)
		require.NoError(t, err)
		second, err := svc.GetUnreadCount(ctx, 9)
		require.NoError(t, err)

		assert.Equal(t, int64(3), first)
		assert.Equal(t, int64(3), second)
		notifRepo.AssertNumberOfCalls(t, "CountUnread", 1)
	})

	t.Run("Write invalidates the cached count", func(t *testing.T) {
		svc, notifRepo := newCachedEngine(t)
		notifRepo.On("CountUnread", ctx, int64(9)).Return(int64(3), nil).Once()
		notifRepo.On("CountUnread", ctx, int64(9)).Return(int64(0), nil).Once()
		notifRepo.On("MarkAllAsRead", ctx, int64(9)).Return(int64(3), nil).Once()

		before, err := svc.GetUnreadCount(ctx, 9)
		require.NoError(t, err)
		_, err = svc.MarkAllAsRead(ctx, 9)
		require.NoError(t, err)
		after, err := svc.GetUnreadCount(ctx, 9)
		require.NoError(t, err)

		assert.Equal(t, int64(3), before)
		assert.Equal(t, int64(0), after)
	})

	t.Run("Write during the fill keeps the stale count out of the cache", func(t *testing.T) {
		svc, notifRepo := newCachedEngine(t)
		notifRepo.On("MarkAllAsRead", ctx, int64(42)).Return(int64(3), nil).Once()
		notifRepo.On("CountUnread", ctx, int64(42)).
			Run(func(mock.Arguments) {
				_, err := svc.MarkAllAsRead(ctx, 42)
				require.NoError(t, err)
			}).
			Return(int64(3), nil).Once()
		notifRepo.On("CountUnread", ctx, int64(42)).Return(int64(0), nil).Once()

		racing, err := svc.GetUnreadCount(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(3), racing)

		fresh, err := svc.GetUnreadCount(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(0), fresh)
		notifRepo.AssertNumberOfCalls(t, "CountUnread", 2)
	})
}
