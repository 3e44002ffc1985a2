package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type BlockRepository struct {
	mock.Mock
}

func (m *BlockRepository) Block(ctx context.Context, blockerID, blockedID int64) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

func (m *BlockRepository) Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Bool(0), args.Error(1)
}

func (m *BlockRepository) IsBlockedEither(ctx context.Context, a, b int64) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *BlockRepository) HasBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Bool(0), args.Error(1)
}

func (m *BlockRepository) ListBlocked(ctx context.Context, blockerID int64) ([]domain.UserBlock, error) {
	args := m.Called(ctx, blockerID)
	return args.Get(0).([]domain.UserBlock), args.Error(1)
}
