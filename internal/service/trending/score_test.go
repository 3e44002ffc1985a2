package trending_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	repomocks "newshub/internal/repository/mocks"
	"newshub/internal/service/trending"
)

func TestScoreTopics(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	articles := []domain.Article{
		{Title: "Election results are in", Category: "politics", LikesCount: 4, PublishedAt: now},
		{Title: "Election turnout hits record", Category: "politics", PublishedAt: now.Add(-24 * time.Hour)},
		{Title: "New phone with better camera", Category: "technology", PublishedAt: now},
	}

	topics := trending.ScoreTopics(articles, now, 3)

	require.Len(t, topics, 3)
	assert.Equal(t, "election", topics[0].Topic)
	assert.Equal(t, "politics", topics[1].Topic)
	assert.Equal(t, 5.5, topics[0].Score)
	assert.Equal(t, int64(2), topics[0].ArticleCount)
	for _, topic := range topics {
		assert.NotEqual(t, "with", topic.Topic)
		assert.Equal(t, now, topic.CalculatedAt)
	}
}

func TestScoreTopics_Empty(t *testing.T) {
	assert.Empty(t, trending.ScoreTopics(nil, time.Now(), 10))
}

func TestTrending_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the ranking", func(t *testing.T) {
		articleRepo := new(repomocks.ArticleRepository)
		trendingRepo := new(repomocks.TrendingRepository)
		articleRepo.On("ListSince", ctx, mock.AnythingOfType("time.Time")).
			Return([]domain.Article{{Title: "Storm warning issued", Category: "weather", PublishedAt: time.Now()}}, nil)
		trendingRepo.On("ReplaceAll", ctx, mock.MatchedBy(func(topics []domain.TrendingTopic) bool {
			return len(topics) == 4
		})).Return(nil).Once()
		svc := trending.NewService(articleRepo, trendingRepo, nil, 30*time.Minute, 5*time.Minute)

		next, err := svc.Tick(ctx)

		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, next)
		trendingRepo.AssertExpectations(t)
	})

	t.Run("Failure backs off", func(t *testing.T) {
		articleRepo := new(repomocks.ArticleRepository)
		articleRepo.On("ListSince", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Article(nil), errors.New("db down"))
		svc := trending.NewService(articleRepo, new(repomocks.TrendingRepository), nil, 30*time.Minute, 5*time.Minute)

		next, err := svc.Tick(ctx)

		require.Error(t, err)
		assert.Equal(t, 5*time.Minute, next)
	})
}
