package newssync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	"newshub/internal/repository"
	repomocks "newshub/internal/repository/mocks"
	"newshub/internal/service/newssync"
)

type fakeFetcher struct {
	byCategory map[string][]newssync.Headline
	err        error
}

func (f *fakeFetcher) TopHeadlines(ctx context.Context, category string) ([]newssync.Headline, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCategory[category], nil
}

var intervals = newssync.Intervals{Run: 24 * time.Hour, Recheck: 30 * time.Minute, Retry: 30 * time.Minute}

func TestNewsSync_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled setting schedules a recheck", func(t *testing.T) {
		settingRepo := new(repomocks.SettingRepository)
		articleRepo := new(repomocks.ArticleRepository)
		settingRepo.On("GetBool", ctx, repository.SettingNewsSyncEnabled, true).Return(false, nil)
		svc := newssync.NewService(&fakeFetcher{}, articleRepo, settingRepo, intervals)

		next, err := svc.Tick(ctx)

		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, next)
		articleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Imports unseen headlines only", func(t *testing.T) {
		settingRepo := new(repomocks.SettingRepository)
		articleRepo := new(repomocks.ArticleRepository)
		settingRepo.On("GetBool", ctx, repository.SettingNewsSyncEnabled, true).Return(true, nil)
		fetcher := &fakeFetcher{byCategory: map[string][]newssync.Headline{
			"technology": {
				{Title: "Chip launch", URL: "https://a.example/1", Description: "A new chip"},
				{Title: "Old story", URL: "https://a.example/2"},
				{Title: "[Removed]", URL: "https://a.example/3"},
			},
		}}
		articleRepo.On("ExistsBySourceURL", ctx, "https://a.example/1").Return(false, nil)
		articleRepo.On("ExistsBySourceURL", ctx, "https://a.example/2").Return(true, nil)
		articleRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Article) bool {
			return a.Title == "Chip launch" && a.IsExternal && a.AuthorID == nil &&
				a.Category == "technology" && a.Content == "A new chip"
		})).Return(nil).Once()
		svc := newssync.NewService(fetcher, articleRepo, settingRepo, intervals)

		next, err := svc.Tick(ctx)

		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, next)
		articleRepo.AssertExpectations(t)
	})

	t.Run("Every fetch failing schedules a retry", func(t *testing.T) {
		settingRepo := new(repomocks.SettingRepository)
		settingRepo.On("GetBool", ctx, repository.SettingNewsSyncEnabled, true).Return(true, nil)
		svc := newssync.NewService(&fakeFetcher{err: errors.New("timeout")}, new(repomocks.ArticleRepository), settingRepo, intervals)

		next, err := svc.Tick(ctx)

		require.Error(t, err)
		assert.Equal(t, 30*time.Minute, next)
	})
}
