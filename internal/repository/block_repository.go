package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type BlockRepository interface {
	Block(ctx context.Context, blockerID, blockedID int64) error
	Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error)
	// IsBlockedEither reports a block in either direction between a and b.
	IsBlockedEither(ctx context.Context, a, b int64) (bool, error)
	HasBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error)
	ListBlocked(ctx context.Context, blockerID int64) ([]domain.UserBlock, error)
}

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Block(ctx context.Context, blockerID, blockedID int64) error {
	query := `
		INSERT INTO user_blocks (blocker_id, blocked_id) VALUES ($1, $2)
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *blockRepository) Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2`, blockerID, blockedID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *blockRepository) IsBlockedEither(ctx context.Context, a, b int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_blocks
			WHERE (blocker_id = $1 AND blocked_id = $2) OR (blocker_id = $2 AND blocked_id = $1)
		)`
	err := r.db.GetContext(ctx, &exists, query, a, b)
	return exists, err
}

func (r *blockRepository) HasBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, blockerID, blockedID)
	return exists, err
}

func (r *blockRepository) ListBlocked(ctx context.Context, blockerID int64) ([]domain.UserBlock, error) {
	query := `
		SELECT b.blocker_id, b.blocked_id, u.name, b.created_at
		FROM user_blocks b
		INNER JOIN users u ON u.user_id = b.blocked_id
		WHERE b.blocker_id = $1
		ORDER BY b.created_at DESC`

	var blocks []domain.UserBlock
	err := r.db.SelectContext(ctx, &blocks, query, blockerID)
	return blocks, err
}
