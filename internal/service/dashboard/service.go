package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"newshub/internal/domain"
	"newshub/internal/repository"
)

const statsCacheKey = "admin:stats"

type Service interface {
	GetStats(ctx context.Context) (*domain.AdminStats, error)
	Invalidate(ctx context.Context)
}

type service struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	reportRepo  repository.ReportRepository
	settingRepo repository.SettingRepository
	redis       *redis.Client
}

func NewService(
	userRepo repository.UserRepository,
	articleRepo repository.ArticleRepository,
	reportRepo repository.ReportRepository,
	settingRepo repository.SettingRepository,
	redis *redis.Client,
) Service {
	return &service{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		reportRepo:  reportRepo,
		settingRepo: settingRepo,
		redis:       redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.AdminStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	bannedUsers, err := s.userRepo.CountBanned(ctx)
	if err != nil {
		return nil, err
	}

	totalArticles, err := s.articleRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	externalArticles, err := s.articleRepo.CountExternal(ctx)
	if err != nil {
		return nil, err
	}

	pendingReports, err := s.reportRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	syncEnabled, err := s.settingRepo.GetBool(ctx, repository.SettingNewsSyncEnabled, true)
	if err != nil {
		return nil, err
	}

	stats := &domain.AdminStats{
		TotalUsers:       totalUsers,
		BannedUsers:      bannedUsers,
		TotalArticles:    totalArticles,
		ExternalArticles: externalArticles,
		PendingReports:   pendingReports,
		NewsSyncEnabled:  syncEnabled,
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, statsJSON, 5*time.Minute).Err()
		}
	}

	return stats, nil
}

func (s *service) Invalidate(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, statsCacheKey).Err()
	}
}
