package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, req *domain.NotificationRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	// MarkAsRead only touches the row when userID is its recipient.
	MarkAsRead(ctx context.Context, id, userID int64) (bool, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	CountAll(ctx context.Context, userID int64) (int64, error)
	CountUnreadByType(ctx context.Context, userID int64) ([]domain.TypeCount, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationSelect = `
	SELECT n.notification_id, n.user_id, n.type, n.title, n.message,
		n.related_entity_type, n.related_entity_id, n.from_user_id, u.name AS from_user_name,
		n.action_url, n.is_read, n.read_at, n.created_at
	FROM notifications n
	LEFT JOIN users u ON u.user_id = n.from_user_id`

func (r *notificationRepository) Create(ctx context.Context, req *domain.NotificationRequest) (int64, error) {
	query := `
		INSERT INTO notifications (user_id, type, title, message, related_entity_type, related_entity_id, from_user_id, action_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING notification_id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		req.UserID, req.Type, req.Title, req.Message,
		req.RelatedEntityType, req.RelatedEntityID, req.FromUserID, req.ActionURL,
	).Scan(&id)
	return id, err
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var notif domain.Notification
	err := r.db.GetContext(ctx, &notif, notificationSelect+` WHERE n.notification_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := ` WHERE n.user_id = $1`
	if unreadOnly {
		where += ` AND n.is_read = false`
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications n`+where, userID); err != nil {
		return nil, 0, err
	}

	query := notificationSelect + where + `
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3`

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int64) (bool, error) {
	query := `
		UPDATE notifications SET is_read = true, read_at = NOW()
		WHERE notification_id = $1 AND user_id = $2 AND is_read = false`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE user_id = $1 AND is_read = false`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) CountAll(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID)
	return count, err
}

func (r *notificationRepository) CountUnreadByType(ctx context.Context, userID int64) ([]domain.TypeCount, error) {
	query := `
		SELECT type, COUNT(*) AS count FROM notifications
		WHERE user_id = $1 AND is_read = false
		GROUP BY type`
	var counts []domain.TypeCount
	err := r.db.SelectContext(ctx, &counts, query, userID)
	return counts, err
}
