package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/helpers"
	"newshub/internal/service/notification"
)

const listCacheTTL = 5 * time.Minute

type Service interface {
	Create(ctx context.Context, articleID, userID int64, input domain.CreateCommentInput) (*domain.Comment, error)
	Update(ctx context.Context, userID, id int64, input domain.UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, actor domain.Identity, id int64) error
	ListByArticle(ctx context.Context, articleID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
	ToggleLike(ctx context.Context, commentID, userID int64) (*domain.ToggleResult, error)
}

type service struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	blockRepo   repository.BlockRepository
	notifSvc    notification.Service
	redis       *redis.Client
	editWindow  time.Duration
	now         func() time.Time
}

func NewService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	blockRepo repository.BlockRepository,
	notifSvc notification.Service,
	redisClient *redis.Client,
	editWindow time.Duration,
) Service {
	return &service{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		blockRepo:   blockRepo,
		notifSvc:    notifSvc,
		redis:       redisClient,
		editWindow:  editWindow,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, articleID, userID int64, input domain.CreateCommentInput) (*domain.Comment, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	article, err := helpers.RequireArticle(ctx, s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != nil && *article.AuthorID != userID {
		blocked, err := s.blockRepo.IsBlockedEither(ctx, userID, *article.AuthorID)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, domain.NewBusinessRuleError("you cannot comment on this article")
		}
	}

	comment := &domain.Comment{
		ArticleID: articleID,
		UserID:    userID,
		Content:   strings.TrimSpace(input.Content),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	s.invalidate(ctx, articleID)

	if article.AuthorID != nil {
		ownerID := *article.AuthorID
		notification.BestEffort("comment", func() (int64, error) {
			name, err := helpers.ActorName(ctx, s.userRepo, userID)
			if err != nil {
				return notification.NotCreated, err
			}
			comment.AuthorName = name
			return s.notifSvc.CreateComment(ctx, articleID, comment.ID, userID, ownerID, name)
		})
	}

	return comment, nil
}

func (s *service) Update(ctx context.Context, userID, id int64, input domain.UpdateCommentInput) (*domain.Comment, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	comment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, domain.NewAuthorizationError("only the author can edit this comment")
	}
	if s.now().Sub(comment.CreatedAt) > s.editWindow {
		return nil, domain.NewBusinessRuleError("comments can only be edited within %s of posting", s.editWindow)
	}

	comment.Content = strings.TrimSpace(input.Content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	s.invalidate(ctx, comment.ArticleID)

	return comment, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	comment, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != actor.UserID && !actor.IsAdmin {
		return domain.NewAuthorizationError("only the author can delete this comment")
	}

	if err := s.commentRepo.Delete(ctx, comment); err != nil {
		return err
	}
	s.invalidate(ctx, comment.ArticleID)
	return nil
}

func (s *service) ListByArticle(ctx context.Context, articleID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	params.Validate()
	cacheKey := fmt.Sprintf("comments:%d:page:%d:size:%d", articleID, params.Page, params.PageSize)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.Comment]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	comments, total, err := s.commentRepo.ListByArticle(ctx, articleID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	result := domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total)

	if s.redis != nil {
		if resultJSON, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, resultJSON, listCacheTTL).Err()
		}
	}

	return result, nil
}

func (s *service) ToggleLike(ctx context.Context, commentID, userID int64) (*domain.ToggleResult, error) {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return nil, err
	}

	active, count, err := s.commentRepo.ToggleLike(ctx, commentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle comment like: %w", err)
	}
	s.invalidate(ctx, comment.ArticleID)

	if active {
		notification.BestEffort("comment like", func() (int64, error) {
			name, err := helpers.ActorName(ctx, s.userRepo, userID)
			if err != nil {
				return notification.NotCreated, err
			}
			return s.notifSvc.CreateCommentLike(ctx, commentID, comment.ArticleID, userID, comment.UserID, name)
		})
	}

	return domain.NewToggleResult(domain.ToggleLike, active, count), nil
}

func (s *service) get(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.NewNotFoundError("comment %d not found", id)
	}
	return comment, nil
}

func (s *service) invalidate(ctx context.Context, articleID int64) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, fmt.Sprintf("comments:%d:*", articleID)).Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}
