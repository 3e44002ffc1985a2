package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type OAuthTokenRepository struct {
	mock.Mock
}

func (m *OAuthTokenRepository) Save(ctx context.Context, token *domain.OAuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type SettingRepository struct {
	mock.Mock
}

func (m *SettingRepository) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	args := m.Called(ctx, key, defaultValue)
	return args.Bool(0), args.Error(1)
}

func (m *SettingRepository) SetBool(ctx context.Context, key string, value bool) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type TrendingRepository struct {
	mock.Mock
}

func (m *TrendingRepository) ReplaceAll(ctx context.Context, topics []domain.TrendingTopic) error {
	args := m.Called(ctx, topics)
	return args.Error(0)
}

func (m *TrendingRepository) List(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.TrendingTopic), args.Error(1)
}

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int64), args.Error(2)
}
