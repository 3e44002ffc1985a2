package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

// SessionRepository keeps the login audit trail. Rows are deactivated, never deleted.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Touch(ctx context.Context, token string) error
	End(ctx context.Context, token string, reason domain.LogoutReason) (bool, error)
	EndAllForUser(ctx context.Context, userID int64, reason domain.LogoutReason) (int64, error)
	ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Session, int64, error)
	Stats(ctx context.Context, userID int64) (*domain.SessionStats, error)
	ExpireStale(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO user_sessions (session_token, user_id, device, ip_address, user_agent, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING session_id, login_at, last_activity_at`

	session.IsActive = true
	return r.db.QueryRowxContext(ctx, query,
		session.Token, session.UserID, session.Device, session.IPAddress, session.UserAgent, session.ExpiresAt,
	).Scan(&session.ID, &session.LoginAt, &session.LastActivityAt)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.GetContext(ctx, &session, `SELECT * FROM user_sessions WHERE session_token = $1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Touch(ctx context.Context, token string) error {
	query := `UPDATE user_sessions SET last_activity_at = NOW() WHERE session_token = $1 AND is_active`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

func (r *sessionRepository) End(ctx context.Context, token string, reason domain.LogoutReason) (bool, error) {
	query := `
		UPDATE user_sessions SET is_active = false, logout_at = NOW(), logout_reason = $2
		WHERE session_token = $1 AND is_active`
	res, err := r.db.ExecContext(ctx, query, token, reason)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *sessionRepository) EndAllForUser(ctx context.Context, userID int64, reason domain.LogoutReason) (int64, error) {
	query := `
		UPDATE user_sessions SET is_active = false, logout_at = NOW(), logout_reason = $2
		WHERE user_id = $1 AND is_active`
	res, err := r.db.ExecContext(ctx, query, userID, reason)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Session, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM user_sessions WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM user_sessions
		WHERE user_id = $1
		ORDER BY login_at DESC
		LIMIT $2 OFFSET $3`

	var sessions []domain.Session
	err := r.db.SelectContext(ctx, &sessions, query, userID, params.PageSize, params.Offset())
	return sessions, total, err
}

func (r *sessionRepository) Stats(ctx context.Context, userID int64) (*domain.SessionStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_logins,
			COUNT(*) FILTER (WHERE is_active AND expires_at > NOW()) AS active_sessions,
			COUNT(DISTINCT device) AS unique_devices,
			COUNT(DISTINCT ip_address) AS unique_ips,
			MAX(login_at) AS last_login_at
		FROM user_sessions
		WHERE user_id = $1`

	var stats domain.SessionStats
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *sessionRepository) ExpireStale(ctx context.Context) (int64, error) {
	query := `
		UPDATE user_sessions SET is_active = false, logout_at = expires_at, logout_reason = 'Expired'
		WHERE is_active AND expires_at <= NOW()`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
