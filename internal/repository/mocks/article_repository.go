package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type ArticleRepository struct {
	mock.Mock
}

func (m *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *ArticleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ArticleRepository) List(ctx context.Context, filter domain.ArticleFilter, params domain.PaginationParams) ([]domain.Article, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *ArticleRepository) Feed(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Article, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *ArticleRepository) ToggleLike(ctx context.Context, articleID, userID int64) (bool, int64, error) {
	args := m.Called(ctx, articleID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *ArticleRepository) ToggleSave(ctx context.Context, articleID, userID int64) (bool, error) {
	args := m.Called(ctx, articleID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ArticleRepository) ListSaved(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Article, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *ArticleRepository) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	args := m.Called(ctx, sourceURL)
	return args.Bool(0), args.Error(1)
}

func (m *ArticleRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Article, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ArticleRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ArticleRepository) CountExternal(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
