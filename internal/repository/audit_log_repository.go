package repository

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO admin_audit_logs (admin_id, action, entity_type, entity_id, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING audit_id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.AdminID, log.Action, log.EntityType, log.EntityID, log.Details,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *auditLogRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM admin_audit_logs`); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT al.audit_id, al.admin_id, u.name AS admin_name, al.action,
			al.entity_type, al.entity_id, al.details, al.created_at
		FROM admin_audit_logs al
		LEFT JOIN users u ON al.admin_id = u.user_id
		ORDER BY al.created_at DESC
		LIMIT $1 OFFSET $2`

	var logs []domain.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, params.PageSize, params.Offset())
	return logs, total, err
}

// RecordAudit marshals details and writes one audit row.
func RecordAudit(ctx context.Context, repo AuditLogRepository, adminID int64, action, entityType string, entityID int64, details any) error {
	var raw json.RawMessage
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return err
		}
		raw = data
	}

	return repo.Create(ctx, &domain.AuditLog{
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    raw,
	})
}
