package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type RepostRepository struct {
	mock.Mock
}

func (m *RepostRepository) Toggle(ctx context.Context, articleID, userID int64, note *string) (*domain.Repost, error) {
	args := m.Called(ctx, articleID, userID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repost), args.Error(1)
}

func (m *RepostRepository) ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Repost, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Repost), args.Get(1).(int64), args.Error(2)
}

func (m *RepostRepository) CountByArticle(ctx context.Context, articleID int64) (int64, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).(int64), args.Error(1)
}
