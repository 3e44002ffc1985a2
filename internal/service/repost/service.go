package repost

import (
	"context"
	"fmt"
	"log"
	"strings"

	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/helpers"
	"newshub/internal/service/notification"
)

type Service interface {
	Toggle(ctx context.Context, articleID, userID int64, input domain.RepostInput) (*domain.ToggleResult, error)
	ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Repost], error)
	CountByArticle(ctx context.Context, articleID int64) (int64, error)
}

type service struct {
	repostRepo  repository.RepostRepository
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	notifSvc    notification.Service
}

func NewService(
	repostRepo repository.RepostRepository,
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	notifSvc notification.Service,
) Service {
	return &service{
		repostRepo:  repostRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		notifSvc:    notifSvc,
	}
}

func (s *service) Toggle(ctx context.Context, articleID, userID int64, input domain.RepostInput) (*domain.ToggleResult, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	article, err := helpers.RequireArticle(ctx, s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	var note *string
	if input.Note != nil {
		if trimmed := strings.TrimSpace(*input.Note); trimmed != "" {
			note = &trimmed
		}
	}

	repost, err := s.repostRepo.Toggle(ctx, articleID, userID, note)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle repost: %w", err)
	}
	active := repost != nil

	// The repost is committed; a failed count must not report it as failed.
	count, err := s.repostRepo.CountByArticle(ctx, articleID)
	if err != nil {
		log.Printf("[RepostService] failed to count reposts for article %d: %v", articleID, err)
		count = 0
	}

	if active && article.AuthorID != nil {
		ownerID := *article.AuthorID
		notification.BestEffort("share", func() (int64, error) {
			name, err := helpers.ActorName(ctx, s.userRepo, userID)
			if err != nil {
				return notification.NotCreated, err
			}
			return s.notifSvc.CreateShare(ctx, articleID, userID, ownerID, name)
		})
	}

	return domain.NewToggleResult(domain.ToggleRepost, active, count), nil
}

func (s *service) ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Repost], error) {
	params.Validate()
	reposts, total, err := s.repostRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Repost]{}, err
	}
	return domain.NewPaginatedResponse(reposts, params.Page, params.PageSize, total), nil
}

func (s *service) CountByArticle(ctx context.Context, articleID int64) (int64, error) {
	return s.repostRepo.CountByArticle(ctx, articleID)
}
