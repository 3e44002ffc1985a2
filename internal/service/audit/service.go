package audit

import (
	"context"
	"log"

	"newshub/internal/domain"
	"newshub/internal/repository"
)

type Service interface {
	// Record writes an audit row. Failures are logged, never returned.
	Record(ctx context.Context, adminID int64, action, entityType string, entityID int64, details any)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) Record(ctx context.Context, adminID int64, action, entityType string, entityID int64, details any) {
	if err := repository.RecordAudit(ctx, s.auditRepo, adminID, action, entityType, entityID, details); err != nil {
		log.Printf("[Audit] failed to record %s on %s %d by admin %d: %v", action, entityType, entityID, adminID, err)
	}
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	params.Validate()
	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}

func (s *service) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	params := domain.PaginationParams{
		Page:     1,
		PageSize: limit,
	}

	logs, _, err := s.auditRepo.List(ctx, params)
	return logs, err
}
