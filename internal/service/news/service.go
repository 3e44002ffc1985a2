package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/helpers"
	"newshub/internal/service/media"
	"newshub/internal/service/notification"
)

var ErrUploadsDisabled = errors.New("image uploads are not configured")

type Service interface {
	Create(ctx context.Context, authorID int64, input domain.CreateArticleInput) (*domain.Article, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	Update(ctx context.Context, actor domain.Identity, id int64, input domain.UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, actor domain.Identity, id int64) error
	List(ctx context.Context, category string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error)
	Feed(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error)
	Search(ctx context.Context, query string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error)
	ListByAuthor(ctx context.Context, authorID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error)
	ToggleLike(ctx context.Context, articleID, userID int64) (*domain.ToggleResult, error)
	ToggleSave(ctx context.Context, articleID, userID int64) (*domain.ToggleResult, error)
	ListSaved(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error)
	Report(ctx context.Context, articleID, reporterID int64, input domain.CreateReportInput) (*domain.Report, error)
	UploadImage(ctx context.Context, userID int64, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.UploadedImage, error)
}

type service struct {
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	reportRepo  repository.ReportRepository
	notifSvc    notification.Service
	mediaSvc    media.Service
}

func NewService(
	articleRepo repository.ArticleRepository,
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	notifSvc notification.Service,
	mediaSvc media.Service,
) Service {
	return &service{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		reportRepo:  reportRepo,
		notifSvc:    notifSvc,
		mediaSvc:    mediaSvc,
	}
}

func (s *service) Create(ctx context.Context, authorID int64, input domain.CreateArticleInput) (*domain.Article, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	author, err := helpers.RequireUser(ctx, s.userRepo, authorID)
	if err != nil {
		return nil, err
	}
	if !author.CanSignIn() {
		return nil, domain.NewBusinessRuleError("suspended accounts cannot publish")
	}

	article := &domain.Article{
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		SourceURL: input.SourceURL,
		Category:  strings.ToLower(strings.TrimSpace(input.Category)),
		Tags:      input.Tags,
		AuthorID:  &authorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	article.AuthorName = &author.Name

	notification.BestEffort("new post fan-out", func() (int, error) {
		return s.notifSvc.NotifyFollowersOfNewPost(ctx, article.ID, authorID, author.Name, article.Title)
	})

	return article, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return helpers.RequireArticle(ctx, s.articleRepo, id)
}

func (s *service) Update(ctx context.Context, actor domain.Identity, id int64, input domain.UpdateArticleInput) (*domain.Article, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	article, err := helpers.RequireArticle(ctx, s.articleRepo, id)
	if err != nil {
		return nil, err
	}
	if !article.OwnedBy(actor.UserID) && !actor.IsAdmin {
		return nil, domain.NewAuthorizationError("only the author can edit this article")
	}

	if input.Title != nil {
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.ImageURL != nil {
		article.ImageURL = input.ImageURL
	}
	if input.Category != nil {
		article.Category = strings.ToLower(strings.TrimSpace(*input.Category))
	}
	if input.Tags != nil {
		article.Tags = input.Tags
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	article, err := helpers.RequireArticle(ctx, s.articleRepo, id)
	if err != nil {
		return err
	}
	if !article.OwnedBy(actor.UserID) && !actor.IsAdmin {
		return domain.NewAuthorizationError("only the author can delete this article")
	}
	return s.articleRepo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, category string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error) {
	filter := domain.ArticleFilter{Category: strings.ToLower(strings.TrimSpace(category))}
	return s.list(ctx, filter, params)
}

func (s *service) Search(ctx context.Context, query string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return domain.PaginatedResponse[domain.Article]{}, domain.NewValidationError("search query must be at least 2 characters")
	}
	return s.list(ctx, domain.ArticleFilter{Query: query}, params)
}

func (s *service) ListByAuthor(ctx context.Context, authorID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error) {
	return s.list(ctx, domain.ArticleFilter{AuthorID: &authorID}, params)
}

func (s *service) list(ctx context.Context, filter domain.ArticleFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error) {
	params.Validate()
	articles, total, err := s.articleRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Article]{}, err
	}
	return domain.NewPaginatedResponse(articles, params.Page, params.PageSize, total), nil
}

func (s *service) Feed(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error) {
	params.Validate()
	articles, total, err := s.articleRepo.Feed(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Article]{}, err
	}
	return domain.NewPaginatedResponse(articles, params.Page, params.PageSize, total), nil
}

func (s *service) ToggleLike(ctx context.Context, articleID, userID int64) (*domain.ToggleResult, error) {
	article, err := helpers.RequireArticle(ctx, s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}

	active, count, err := s.articleRepo.ToggleLike(ctx, articleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	if active && article.AuthorID != nil {
		ownerID := *article.AuthorID
		notification.BestEffort("like", func() (int64, error) {
			name, err := helpers.ActorName(ctx, s.userRepo, userID)
			if err != nil {
				return notification.NotCreated, err
			}
			return s.notifSvc.CreateLike(ctx, articleID, userID, ownerID, name)
		})
	}

	return domain.NewToggleResult(domain.ToggleLike, active, count), nil
}

func (s *service) ToggleSave(ctx context.Context, articleID, userID int64) (*domain.ToggleResult, error) {
	if _, err := helpers.RequireArticle(ctx, s.articleRepo, articleID); err != nil {
		return nil, err
	}

	active, err := s.articleRepo.ToggleSave(ctx, articleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle save: %w", err)
	}
	return domain.NewToggleResult(domain.ToggleSave, active, 0), nil
}

func (s *service) ListSaved(ctx context.Context, userID int64, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error) {
	params.Validate()
	articles, total, err := s.articleRepo.ListSaved(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Article]{}, err
	}
	return domain.NewPaginatedResponse(articles, params.Page, params.PageSize, total), nil
}

func (s *service) Report(ctx context.Context, articleID, reporterID int64, input domain.CreateReportInput) (*domain.Report, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	article, err := helpers.RequireArticle(ctx, s.articleRepo, articleID)
	if err != nil {
		return nil, err
	}
	if article.OwnedBy(reporterID) {
		return nil, domain.NewBusinessRuleError("you cannot report your own article")
	}

	report := &domain.Report{
		ArticleID:  articleID,
		ReporterID: reporterID,
		Reason:     strings.TrimSpace(input.Reason),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *service) UploadImage(ctx context.Context, userID int64, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.UploadedImage, error) {
	if s.mediaSvc == nil {
		return nil, ErrUploadsDisabled
	}
	return s.mediaSvc.UploadArticleImage(ctx, userID, fileName, fileSize, mimeType, reader)
}
