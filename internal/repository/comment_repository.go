package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"newshub/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, comment *domain.Comment) error
	ListByArticle(ctx context.Context, articleID int64, params domain.PaginationParams) ([]domain.Comment, int64, error)
	ToggleLike(ctx context.Context, commentID, userID int64) (bool, int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentSelect = `
	SELECT c.comment_id, c.article_id, c.user_id, u.name AS author_name, c.content,
		c.likes_count, c.created_at, c.updated_at, c.deleted_at
	FROM comments c
	INNER JOIN users u ON u.user_id = c.user_id`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO comments (article_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING comment_id, created_at, updated_at`
	err = tx.QueryRowxContext(ctx, query, comment.ArticleID, comment.UserID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE articles SET comments_count = comments_count + 1 WHERE article_id = $1`, comment.ArticleID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	query := commentSelect + ` WHERE c.comment_id = $1 AND c.deleted_at IS NULL`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE comment_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
}

func (r *commentRepository) Delete(ctx context.Context, comment *domain.Comment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE comments SET deleted_at = NOW() WHERE comment_id = $1 AND deleted_at IS NULL`, comment.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE articles SET comments_count = GREATEST(comments_count - 1, 0) WHERE article_id = $1`, comment.ArticleID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID int64, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM comments WHERE article_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, articleID); err != nil {
		return nil, 0, err
	}

	query := commentSelect + `
		WHERE c.article_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3`

	var comments []domain.Comment
	err := r.db.SelectContext(ctx, &comments, query, articleID, params.PageSize, params.Offset())
	return comments, total, err
}

func (r *commentRepository) ToggleLike(ctx context.Context, commentID, userID int64) (bool, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	active, err := toggleRow(ctx, tx, "comment_likes", "comment_id", commentID, userID)
	if err != nil {
		return false, 0, err
	}

	delta := -1
	if active {
		delta = 1
	}
	var count int64
	err = tx.QueryRowxContext(ctx, `
		UPDATE comments SET likes_count = GREATEST(likes_count + $2, 0)
		WHERE comment_id = $1
		RETURNING likes_count`, commentID, delta).Scan(&count)
	if err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return active, count, nil
}
