package newssync

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"newshub/internal/domain"
	"newshub/internal/repository"
)

var Categories = []string{"business", "entertainment", "general", "health", "science", "sports", "technology"}

const maxContentLength = 10000

type Intervals struct {
	Run     time.Duration
	Recheck time.Duration
	Retry   time.Duration
}

type Service interface {
	// Sync imports unseen headlines from every category and returns how many were stored.
	Sync(ctx context.Context) (int, error)
	// Tick is one iteration of the background loop.
	Tick(ctx context.Context) (time.Duration, error)
}

type service struct {
	fetcher     Fetcher
	articleRepo repository.ArticleRepository
	settingRepo repository.SettingRepository
	intervals   Intervals
}

func NewService(fetcher Fetcher, articleRepo repository.ArticleRepository, settingRepo repository.SettingRepository, intervals Intervals) Service {
	return &service{
		fetcher:     fetcher,
		articleRepo: articleRepo,
		settingRepo: settingRepo,
		intervals:   intervals,
	}
}

func (s *service) Tick(ctx context.Context) (time.Duration, error) {
	enabled, err := s.settingRepo.GetBool(ctx, repository.SettingNewsSyncEnabled, true)
	if err != nil {
		return s.intervals.Retry, fmt.Errorf("failed to read sync setting: %w", err)
	}
	if !enabled {
		log.Printf("[NewsSync] disabled, checking again in %s", s.intervals.Recheck)
		return s.intervals.Recheck, nil
	}

	imported, err := s.Sync(ctx)
	if err != nil {
		return s.intervals.Retry, err
	}
	log.Printf("[NewsSync] imported %d articles", imported)
	return s.intervals.Run, nil
}

func (s *service) Sync(ctx context.Context) (int, error) {
	imported := 0
	failed := 0

	for _, category := range Categories {
		headlines, err := s.fetcher.TopHeadlines(ctx, category)
		if err != nil {
			log.Printf("[NewsSync] failed to fetch %s headlines: %v", category, err)
			failed++
			continue
		}

		for _, h := range headlines {
			stored, err := s.store(ctx, category, h)
			if err != nil {
				log.Printf("[NewsSync] failed to store %q: %v", h.URL, err)
				continue
			}
			if stored {
				imported++
			}
		}
	}

	if failed == len(Categories) {
		return 0, fmt.Errorf("all %d category fetches failed", failed)
	}
	return imported, nil
}

func (s *service) store(ctx context.Context, category string, h Headline) (bool, error) {
	title := strings.TrimSpace(h.Title)
	sourceURL := strings.TrimSpace(h.URL)
	if title == "" || sourceURL == "" || title == "[Removed]" {
		return false, nil
	}

	exists, err := s.articleRepo.ExistsBySourceURL(ctx, sourceURL)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	article := &domain.Article{
		Title:       title,
		Content:     articleContent(h),
		SourceURL:   &sourceURL,
		Category:    category,
		IsExternal:  true,
		PublishedAt: h.PublishedAt,
	}
	if name := strings.TrimSpace(h.Source.Name); name != "" {
		article.SourceName = &name
	}
	if img := strings.TrimSpace(h.URLToImage); img != "" {
		article.ImageURL = &img
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return false, err
	}
	return true, nil
}

func articleContent(h Headline) string {
	content := strings.TrimSpace(h.Content)
	if content == "" {
		content = strings.TrimSpace(h.Description)
	}
	if content == "" {
		content = strings.TrimSpace(h.Title)
	}
	if runes := []rune(content); len(runes) > maxContentLength {
		content = string(runes[:maxContentLength])
	}
	return content
}
