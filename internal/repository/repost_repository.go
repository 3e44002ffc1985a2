package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type RepostRepository interface {
	// Toggle removes the user's repost of the article if present, creates it
	// otherwise. It returns the repost when one now exists.
	Toggle(ctx context.Context, articleID, userID int64, note *string) (*domain.Repost, error)
	ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Repost, int64, error)
	CountByArticle(ctx context.Context, articleID int64) (int64, error)
}

type repostRepository struct {
	db *sqlx.DB
}

func NewRepostRepository(db *sqlx.DB) RepostRepository {
	return &repostRepository{db: db}
}

func (r *repostRepository) Toggle(ctx context.Context, articleID, userID int64, note *string) (*domain.Repost, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM reposts WHERE article_id = $1 AND user_id = $2`, articleID, userID)
	if err != nil {
		return nil, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	var repost *domain.Repost
	delta := -1
	if removed == 0 {
		repost = &domain.Repost{ArticleID: articleID, UserID: userID, Note: note}
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO reposts (article_id, user_id, note) VALUES ($1, $2, $3)
			RETURNING repost_id, created_at`, articleID, userID, note).Scan(&repost.ID, &repost.CreatedAt)
		if err != nil {
			return nil, err
		}
		delta = 1
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE articles SET reposts_count = GREATEST(reposts_count + $2, 0) WHERE article_id = $1`,
		articleID, delta); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return repost, nil
}

func (r *repostRepository) ListByUser(ctx context.Context, userID int64, params domain.PaginationParams) ([]domain.Repost, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reposts WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT repost_id, article_id, user_id, note, created_at FROM reposts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var reposts []domain.Repost
	err := r.db.SelectContext(ctx, &reposts, query, userID, params.PageSize, params.Offset())
	return reposts, total, err
}

func (r *repostRepository) CountByArticle(ctx context.Context, articleID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reposts WHERE article_id = $1`, articleID)
	return count, err
}
