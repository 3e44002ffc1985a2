package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type FollowRepository struct {
	mock.Mock
}

func (m *FollowRepository) Toggle(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *FollowRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *FollowRepository) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *FollowRepository) ListFollowers(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.UserSummary), args.Get(1).(int64), args.Error(2)
}

func (m *FollowRepository) ListFollowing(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.UserSummary), args.Get(1).(int64), args.Error(2)
}

func (m *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FollowRepository) RemoveBetween(ctx context.Context, a, b int64) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}
