package trending

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"newshub/internal/domain"
	"newshub/internal/repository"
)

const (
	redisScoresKey = "trending:topics"
	redisCountsKey = "trending:counts"
	window         = 48 * time.Hour
	maxTopics      = 20
)

type Service interface {
	Recalculate(ctx context.Context) ([]domain.TrendingTopic, error)
	Top(ctx context.Context, limit int) ([]domain.TrendingTopic, error)
	// Tick is one iteration of the background loop.
	Tick(ctx context.Context) (time.Duration, error)
}

type service struct {
	articleRepo   repository.ArticleRepository
	trendingRepo  repository.TrendingRepository
	redis         *redis.Client
	interval      time.Duration
	retryInterval time.Duration
	now           func() time.Time
}

func NewService(
	articleRepo repository.ArticleRepository,
	trendingRepo repository.TrendingRepository,
	redisClient *redis.Client,
	interval, retryInterval time.Duration,
) Service {
	return &service{
		articleRepo:   articleRepo,
		trendingRepo:  trendingRepo,
		redis:         redisClient,
		interval:      interval,
		retryInterval: retryInterval,
		now:           time.Now,
	}
}

func (s *service) Tick(ctx context.Context) (time.Duration, error) {
	topics, err := s.Recalculate(ctx)
	if err != nil {
		return s.retryInterval, err
	}
	log.Printf("[Trending] recalculated %d topics", len(topics))
	return s.interval, nil
}

func (s *service) Recalculate(ctx context.Context) ([]domain.TrendingTopic, error) {
	now := s.now().UTC()

	articles, err := s.articleRepo.ListSince(ctx, now.Add(-window))
	if err != nil {
		return nil, fmt.Errorf("failed to load recent articles: %w", err)
	}

	topics := ScoreTopics(articles, now, maxTopics)
	if err := s.trendingRepo.ReplaceAll(ctx, topics); err != nil {
		return nil, fmt.Errorf("failed to store trending topics: %w", err)
	}

	if s.redis != nil {
		if err := s.cache(ctx, topics); err != nil {
			log.Printf("[Trending] failed to cache topics: %v", err)
		}
	}
	return topics, nil
}

func (s *service) cache(ctx context.Context, topics []domain.TrendingTopic) error {
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, redisScoresKey, redisCountsKey)
	if len(topics) > 0 {
		members := make([]redis.Z, 0, len(topics))
		counts := make(map[string]any, len(topics))
		for _, t := range topics {
			members = append(members, redis.Z{Score: t.Score, Member: t.Topic})
			counts[t.Topic] = t.ArticleCount
		}
		pipe.ZAdd(ctx, redisScoresKey, members...)
		pipe.HSet(ctx, redisCountsKey, counts)
		pipe.Expire(ctx, redisScoresKey, 2*window)
		pipe.Expire(ctx, redisCountsKey, 2*window)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Top serves from redis when it holds topics and falls back to the database.
func (s *service) Top(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	if limit < 1 || limit > maxTopics {
		limit = maxTopics
	}

	if s.redis != nil {
		if topics, err := s.fromCache(ctx, limit); err == nil && len(topics) > 0 {
			return topics, nil
		}
	}

	topics, err := s.trendingRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []domain.TrendingTopic{}
	}
	return topics, nil
}

func (s *service) fromCache(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	members, err := s.redis.ZRevRangeWithScores(ctx, redisScoresKey, 0, int64(limit-1)).Result()
	if err != nil || len(members) == 0 {
		return nil, err
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = fmt.Sprint(m.Member)
	}
	counts, err := s.redis.HMGet(ctx, redisCountsKey, names...).Result()
	if err != nil {
		return nil, err
	}

	topics := make([]domain.TrendingTopic, len(members))
	for i, m := range members {
		topics[i] = domain.TrendingTopic{Topic: names[i], Score: m.Score}
		if raw, ok := counts[i].(string); ok {
			topics[i].ArticleCount, _ = strconv.ParseInt(raw, 10, 64)
		}
	}
	return topics, nil
}
