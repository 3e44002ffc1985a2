package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context, status domain.ReportStatus, params domain.PaginationParams) ([]domain.Report, int64, error)
	Resolve(ctx context.Context, id int64, status domain.ReportStatus, reviewerID int64) error
	CountPending(ctx context.Context) (int64, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO article_reports (article_id, reporter_id, reason, status)
		VALUES ($1, $2, $3, $4)
		RETURNING report_id, created_at`

	report.Status = domain.ReportPending
	return r.db.QueryRowxContext(ctx, query, report.ArticleID, report.ReporterID, report.Reason, report.Status).
		Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	var report domain.Report
	err := r.db.GetContext(ctx, &report, `SELECT * FROM article_reports WHERE report_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, status domain.ReportStatus, params domain.PaginationParams) ([]domain.Report, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM article_reports WHERE status = $1`, status); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM article_reports
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	var reports []domain.Report
	err := r.db.SelectContext(ctx, &reports, query, status, params.PageSize, params.Offset())
	return reports, total, err
}

func (r *reportRepository) Resolve(ctx context.Context, id int64, status domain.ReportStatus, reviewerID int64) error {
	query := `
		UPDATE article_reports
		SET status = $2, reviewed_by = $3, reviewed_at = NOW()
		WHERE report_id = $1 AND status = 'pending'`
	_, err := r.db.ExecContext(ctx, query, id, status, reviewerID)
	return err
}

func (r *reportRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM article_reports WHERE status = 'pending'`)
	return count, err
}
