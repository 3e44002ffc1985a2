package repost_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	repomocks "newshub/internal/repository/mocks"
	"newshub/internal/service/mocks"
	"newshub/internal/service/repost"
)

func TestRepostService_Toggle(t *testing.T) {
	ctx := context.Background()
	owner := int64(9)

	t.Run("Repost then remove notifies once", func(t *testing.T) {
		repostRepo := new(repomocks.RepostRepository)
		articleRepo := new(repomocks.ArticleRepository)
		userRepo := new(repomocks.UserRepository)
		notifSvc := new(mocks.NotificationService)
		svc := repost.NewService(repostRepo, articleRepo, userRepo, notifSvc)

		articleRepo.On("GetByID", ctx, int64(7)).Return(&domain.Article{ID: 7, AuthorID: &owner}, nil)
		repostRepo.On("Toggle", ctx, int64(7), int64(42), (*string)(nil)).Return(&domain.Repost{ID: 1, ArticleID: 7, UserID: 42}, nil).Once()
		repostRepo.On("Toggle", ctx, int64(7), int64(42), (*string)(nil)).Return(nil, nil).Once()
		repostRepo.On("CountByArticle", ctx, int64(7)).Return(int64(1), nil).Once()
		repostRepo.On("CountByArticle", ctx, int64(7)).Return(int64(0), nil).Once()
		userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Name: "Alice"}, nil)
		notifSvc.On("CreateShare", ctx, int64(7), int64(42), int64(9), "Alice").Return(int64(3), nil).Once()

		first, err := svc.Toggle(ctx, 7, 42, domain.RepostInput{})
		require.NoError(t, err)
		assert.Equal(t, "reposted", first.Status)
		assert.Equal(t, int64(1), first.Count)

		second, err := svc.Toggle(ctx, 7, 42, domain.RepostInput{})
		require.NoError(t, err)
		assert.Equal(t, "removed", second.Status)

		notifSvc.AssertNumberOfCalls(t, "CreateShare", 1)
	})

	t.Run("Engine failure does not fail the repost", func(t *testing.T) {
		repostRepo := new(repomocks.RepostRepository)
		articleRepo := new(repomocks.ArticleRepository)
		userRepo := new(repomocks.UserRepository)
		notifSvc := new(mocks.NotificationService)
		svc := repost.NewService(repostRepo, articleRepo, userRepo, notifSvc)

		note := "  worth reading "
		articleRepo.On("GetByID", ctx, int64(7)).Return(&domain.Article{ID: 7, AuthorID: &owner}, nil)
		repostRepo.On("Toggle", ctx, int64(7), int64(42), mock.MatchedBy(func(n *string) bool {
			return n != nil && *n == "worth reading"
		})).Return(&domain.Repost{ID: 1}, nil)
		repostRepo.On("CountByArticle", ctx, int64(7)).Return(int64(4), nil)
		userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Name: "Alice"}, nil)
		notifSvc.On("CreateShare", ctx, int64(7), int64(42), int64(9), "Alice").Return(int64(0), errors.New("db down"))

		result, err := svc.Toggle(ctx, 7, 42, domain.RepostInput{Note: &note})

		require.NoError(t, err)
		assert.True(t, result.Active)
		assert.Equal(t, int64(4), result.Count)
	})

	t.Run("Count failure after a saved repost still notifies", func(t *testing.T) {
		repostRepo := new(repomocks.RepostRepository)
		articleRepo := new(repomocks.ArticleRepository)
		userRepo := new(repomocks.UserRepository)
		notifSvc := new(mocks.NotificationService)
		svc := repost.NewService(repostRepo, articleRepo, userRepo, notifSvc)

		articleRepo.On("GetByID", ctx, int64(7)).Return(&domain.Article{ID: 7, AuthorID: &owner}, nil)
		repostRepo.On("Toggle", ctx, int64(7), int64(42), (*string)(nil)).Return(&domain.Repost{ID: 1, ArticleID: 7, UserID: 42}, nil)
		repostRepo.On("CountByArticle", ctx, int64(7)).Return(int64(0), errors.New("connection reset"))
		userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, Name: "Alice"}, nil)
		notifSvc.On("CreateShare", ctx, int64(7), int64(42), int64(9), "Alice").Return(int64(3), nil)

		result, err := svc.Toggle(ctx, 7, 42, domain.RepostInput{})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "reposted", result.Status)
		assert.Equal(t, int64(0), result.Count)
		notifSvc.AssertNumberOfCalls(t, "CreateShare", 1)
	})

	t.Run("Synced article has nobody to notify", func(t *testing.T) {
		repostRepo := new(repomocks.RepostRepository)
		articleRepo := new(repomocks.ArticleRepository)
		notifSvc := new(mocks.NotificationService)
		svc := repost.NewService(repostRepo, articleRepo, new(repomocks.UserRepository), notifSvc)

		articleRepo.On("GetByID", ctx, int64(8)).Return(&domain.Article{ID: 8, IsExternal: true}, nil)
		repostRepo.On("Toggle", ctx, int64(8), int64(42), (*string)(nil)).Return(&domain.Repost{ID: 2}, nil)
		repostRepo.On("CountByArticle", ctx, int64(8)).Return(int64(1), nil)

		result, err := svc.Toggle(ctx, 8, 42, domain.RepostInput{})

		require.NoError(t, err)
		assert.True(t, result.Active)
		notifSvc.AssertNotCalled(t, "CreateShare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
