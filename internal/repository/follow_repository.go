package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type FollowRepository interface {
	// Toggle flips the follower -> followed edge and reports whether it now exists.
	Toggle(ctx context.Context, followerID, followedID int64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	ListFollowers(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.UserSummary, int64, error)
	ListFollowing(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.UserSummary, int64, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
	RemoveBetween(ctx context.Context, a, b int64) error
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Toggle(ctx context.Context, followerID, followedID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`, followerID, followedID)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if removed == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2)`, followerID, followedID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return removed == 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	return exists, err
}

func (r *followRepository) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	query := `
		SELECT f.follower_id FROM follows f
		INNER JOIN users u ON u.user_id = f.follower_id
		WHERE f.followed_id = $1 AND u.is_active AND NOT u.is_banned
		ORDER BY f.created_at`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *followRepository) ListFollowers(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	params.Validate()

	total, err := r.CountFollowers(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT u.user_id, u.name, u.profile_image FROM follows f
		INNER JOIN users u ON u.user_id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	var users []domain.UserSummary
	err = r.db.SelectContext(ctx, &users, query, userID, params.PageSize, params.Offset())
	return users, total, err
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	params.Validate()

	total, err := r.CountFollowing(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT u.user_id, u.name, u.profile_image FROM follows f
		INNER JOIN users u ON u.user_id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	var users []domain.UserSummary
	err = r.db.SelectContext(ctx, &users, query, userID, params.PageSize, params.Offset())
	return users, total, err
}

func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	return count, err
}

func (r *followRepository) RemoveBetween(ctx context.Context, a, b int64) error {
	query := `
		DELETE FROM follows
		WHERE (follower_id = $1 AND followed_id = $2) OR (follower_id = $2 AND followed_id = $1)`
	_, err := r.db.ExecContext(ctx, query, a, b)
	return err
}
