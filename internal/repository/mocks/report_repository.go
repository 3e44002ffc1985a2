package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
)

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportRepository) List(ctx context.Context, status domain.ReportStatus, params domain.PaginationParams) ([]domain.Report, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.Report), args.Get(1).(int64), args.Error(2)
}

func (m *ReportRepository) Resolve(ctx context.Context, id int64, status domain.ReportStatus, reviewerID int64) error {
	args := m.Called(ctx, id, status, reviewerID)
	return args.Error(0)
}

func (m *ReportRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
