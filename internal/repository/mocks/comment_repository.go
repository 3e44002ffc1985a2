package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) Delete(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) ListByArticle(ctx context.Context, articleID int64, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, articleID, params)
	return args.Get(0).([]domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *CommentRepository) ToggleLike(ctx context.Context, commentID, userID int64) (bool, int64, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
