package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *SessionRepository) Touch(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *SessionRepository) End(ctx context.Context, token string, reason domain.LogoutReason) (bool, error) {
	args := m.Called(ctx, token, reason)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepository) EndAllForUser(ctx context.Context, userID int64, reason domain.LogoutReason) (int64, error) {
	args := m.Called(ctx, userID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SessionRepository) ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Session, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Session), args.Get(1).(int64), args.Error(2)
}

func (m *SessionRepository) Stats(ctx context.Context, userID int64) (*domain.SessionStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionStats), args.Error(1)
}

func (m *SessionRepository) ExpireStale(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
